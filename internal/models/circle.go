package models

import (
	"errors"
	"strings"
	"time"
)

type CircleFrequency string

const (
	FreqWeekly   CircleFrequency = "weekly"
	FreqBiWeekly CircleFrequency = "bi-weekly"
	FreqMonthly  CircleFrequency = "monthly"
)

type CircleStatus string

const (
	CircleActive    CircleStatus = "active"
	CirclePending   CircleStatus = "pending"
	CircleCompleted CircleStatus = "completed"
)

// Circle is a group savings pool with a fixed contribution schedule.
// Amounts are whole NGN.
type Circle struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ContributionAmount int64           `json:"contribution_amount"`
	MaxMembers         int             `json:"max_members"`
	Frequency          CircleFrequency `json:"frequency"`
	StartDate          time.Time       `json:"start_date"`
	Status             CircleStatus    `json:"status"`
	CreatedBy          string          `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
}

func (c *Circle) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name required")
	}
	if c.ContributionAmount <= 0 {
		return errors.New("contribution amount must be > 0")
	}
	if c.MaxMembers <= 0 {
		return errors.New("max members must be > 0")
	}
	switch c.Frequency {
	case FreqWeekly, FreqBiWeekly, FreqMonthly:
	default:
		return errors.New("invalid frequency")
	}
	if c.StartDate.IsZero() {
		return errors.New("start date required")
	}
	return nil
}

// CircleSummary is the subset of circle fields embedded in a pending
// invitation so the invitee can see what they are joining.
type CircleSummary struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ContributionAmount int64           `json:"contribution_amount"`
	Frequency          CircleFrequency `json:"frequency"`
	MaxMembers         int             `json:"max_members"`
}
