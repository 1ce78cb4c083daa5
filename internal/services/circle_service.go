package services

import (
	"fmt"

	"github.com/ajoroapp/ajoro-backend/internal/metrics"
	"github.com/ajoroapp/ajoro-backend/internal/models"
	repo "github.com/ajoroapp/ajoro-backend/internal/repository"
	"github.com/ajoroapp/ajoro-backend/internal/rotation"
)

type CircleService struct {
	circles       repo.Circles
	members       repo.Members
	contributions repo.Contributions
}

func NewCircleService(c repo.Circles, m repo.Members, ct repo.Contributions) *CircleService {
	return &CircleService{circles: c, members: m, contributions: ct}
}

// CircleWithMeta is a list row: the circle plus the viewer-relative flags
// and the current member count.
type CircleWithMeta struct {
	models.Circle
	MemberCount int  `json:"member_count"`
	IsHost      bool `json:"is_host"`
	IsMember    bool `json:"is_member"`
}

// CircleDetail is the aggregate read model for the detail view.
type CircleDetail struct {
	Circle        models.Circle         `json:"circle"`
	Members       []models.CircleMember `json:"members"`
	Contributions []models.Contribution `json:"contributions"`
	WalletTotal   int64                 `json:"wallet_total"`
	MemberCount   int                   `json:"member_count"`
}

// Create inserts the circle and auto-enrolls the creator at position 1.
// The two writes are independent: if the auto-join fails the circle row
// stays behind and the error is surfaced.
func (s *CircleService) Create(ownerID string, c models.Circle) (models.Circle, error) {
	c.CreatedBy = ownerID
	c.Status = models.CircleActive
	if err := c.Validate(); err != nil {
		return models.Circle{}, err
	}

	created, err := s.circles.Create(c)
	if err != nil {
		return models.Circle{}, err
	}
	metrics.CirclesCreated.Inc()

	pos := 1
	if _, err := s.members.Create(models.CircleMember{
		CircleID: created.ID,
		UserID:   ownerID,
		Position: &pos,
		Status:   models.MemberActive,
	}); err != nil {
		return created, fmt.Errorf("auto-join creator: %w", err)
	}
	return created, nil
}

// ListForUser returns circles the user hosts or has joined, deduplicated,
// each with its member count.
func (s *CircleService) ListForUser(userID string) ([]CircleWithMeta, error) {
	owned, err := s.circles.ListOwnedBy(userID)
	if err != nil {
		return nil, err
	}
	joined, err := s.circles.ListJoinedBy(userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(owned))
	all := make([]models.Circle, 0, len(owned)+len(joined))
	for _, c := range owned {
		seen[c.ID] = true
		all = append(all, c)
	}
	joinedIDs := make(map[string]bool, len(joined))
	for _, c := range joined {
		joinedIDs[c.ID] = true
		if !seen[c.ID] {
			seen[c.ID] = true
			all = append(all, c)
		}
	}

	out := make([]CircleWithMeta, 0, len(all))
	for _, c := range all {
		count, err := s.members.CountByCircle(c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, CircleWithMeta{
			Circle:      c,
			MemberCount: count,
			IsHost:      c.CreatedBy == userID,
			IsMember:    joinedIDs[c.ID] || c.CreatedBy == userID,
		})
	}
	return out, nil
}

// Detail composes the circle, its members in rotation order, and the
// completed contribution history with the pooled total.
func (s *CircleService) Detail(circleID string) (CircleDetail, error) {
	c, err := s.circles.GetByID(circleID)
	if err != nil {
		return CircleDetail{}, err
	}
	members, err := s.members.ListByCircle(circleID)
	if err != nil {
		return CircleDetail{}, err
	}
	contribs, err := s.contributions.ListCompleted(circleID)
	if err != nil {
		return CircleDetail{}, err
	}
	total, err := s.contributions.TotalCompleted(circleID)
	if err != nil {
		return CircleDetail{}, err
	}
	return CircleDetail{
		Circle:        c,
		Members:       rotation.Order(members),
		Contributions: contribs,
		WalletTotal:   total,
		MemberCount:   len(members),
	}, nil
}
