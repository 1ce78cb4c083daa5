package repository

import (
	"errors"
	"time"

	"github.com/ajoroapp/ajoro-backend/internal/models"
)

// ErrNotFound is returned by point lookups when no row matches.
var ErrNotFound = errors.New("not found")

type Users interface {
	Create(email, passwordHash string) (models.User, error)
	GetByID(id string) (models.User, error)
	GetByEmail(email string) (models.User, error)
}

type Profiles interface {
	GetByUserID(userID string) (models.Profile, error)
	Upsert(p models.Profile) (models.Profile, error)
}

type Circles interface {
	Create(c models.Circle) (models.Circle, error)
	GetByID(id string) (models.Circle, error)
	ListOwnedBy(userID string) ([]models.Circle, error)
	ListJoinedBy(userID string) ([]models.Circle, error)
}

type Members interface {
	Create(m models.CircleMember) (models.CircleMember, error)
	Find(circleID, userID string) (models.CircleMember, error)
	ListByCircle(circleID string) ([]models.CircleMember, error)
	UpdatePosition(memberID string, position int) error
	CountByCircle(circleID string) (int, error)
}

type Contributions interface {
	ListCompleted(circleID string) ([]models.Contribution, error)
	TotalCompleted(circleID string) (int64, error)
}

type Invitations interface {
	Create(inv models.Invitation) (models.Invitation, error)
	GetByID(id string) (models.Invitation, error)
	// ListPending returns pending, unexpired invitations addressed to the
	// email, most recent first, with the circle summary and inviter name
	// joined in.
	ListPending(email string, now time.Time) ([]models.Invitation, error)
	CountPending(email string, now time.Time) (int, error)
	MarkAccepted(id string, at time.Time) error
	MarkDeclined(id string) error
}
