package models

import "time"

type InvitationStatus string

const (
	InviteStatusPending  InvitationStatus = "pending"
	InviteStatusAccepted InvitationStatus = "accepted"
	InviteStatusDeclined InvitationStatus = "declined"
)

// Invitation is an offer, addressed by email, to join a circle.
// Status only moves pending -> accepted or pending -> declined; expiry is a
// query-time predicate, never a stored transition.
type Invitation struct {
	ID         string           `json:"id"`
	CircleID   string           `json:"circle_id"`
	InvitedBy  string           `json:"invited_by"`
	Email      string           `json:"email"`
	Status     InvitationStatus `json:"status"`
	InvitedAt  time.Time        `json:"invited_at"`
	ExpiresAt  time.Time        `json:"expires_at"`
	AcceptedAt *time.Time       `json:"accepted_at,omitempty"`

	// Joined from circles and the inviter's profile; nil when missing.
	Circle      *CircleSummary `json:"circle,omitempty"`
	InviterName *string        `json:"inviter_name,omitempty"`
}

// Expired reports whether the invitation is past its expiry at the given time.
func (i Invitation) Expired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}

// InviterDisplayName falls back when the inviter's profile row is missing.
func (i Invitation) InviterDisplayName() string {
	if i.InviterName != nil && *i.InviterName != "" {
		return *i.InviterName
	}
	return "Unknown"
}
