package models

import "time"

type ContributionStatus string

const (
	ContributionCompleted ContributionStatus = "completed"
	ContributionPending   ContributionStatus = "pending"
	ContributionFailed    ContributionStatus = "failed"
)

// Contribution is a recorded payment into a circle's pool. The API only
// surfaces completed rows; there is no write path here.
type Contribution struct {
	ID            string             `json:"id"`
	CircleID      string             `json:"circle_id"`
	UserID        string             `json:"user_id"`
	Amount        int64              `json:"amount"`
	Status        ContributionStatus `json:"status"`
	PaymentMethod string             `json:"payment_method"`
	ContributedAt time.Time          `json:"contributed_at"`
}
