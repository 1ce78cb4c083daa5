package models

import "time"

type MemberStatus string

const (
	MemberActive     MemberStatus = "active"
	MemberNewRequest MemberStatus = "new-request"
)

// CircleMember joins a user to a circle. Position is the member's rank in
// the payout rotation, nil until assigned.
type CircleMember struct {
	ID       string       `json:"id"`
	CircleID string       `json:"circle_id"`
	UserID   string       `json:"user_id"`
	Position *int         `json:"position"`
	Status   MemberStatus `json:"status"`
	JoinedAt time.Time    `json:"joined_at"`

	// Joined from profiles; nil when the related row is missing.
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// DisplayName falls back to a fixed label when the profile row is missing.
func (m CircleMember) DisplayName() string {
	if m.FullName != nil && *m.FullName != "" {
		return *m.FullName
	}
	return "Unknown User"
}
