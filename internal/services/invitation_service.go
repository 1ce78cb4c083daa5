package services

import (
	"errors"
	"time"

	"github.com/ajoroapp/ajoro-backend/internal/api/validate"
	"github.com/ajoroapp/ajoro-backend/internal/metrics"
	"github.com/ajoroapp/ajoro-backend/internal/models"
	repo "github.com/ajoroapp/ajoro-backend/internal/repository"
	"github.com/ajoroapp/ajoro-backend/internal/worker"
)

type InvitationService struct {
	invitations repo.Invitations
	circles     repo.Circles
	members     repo.Members
	wp          *worker.Pool
	now         func() time.Time
}

func NewInvitationService(i repo.Invitations, c repo.Circles, m repo.Members, wp *worker.Pool) *InvitationService {
	return &InvitationService{invitations: i, circles: c, members: m, wp: wp, now: time.Now}
}

// CreateBatch stages the emails, rejects the whole batch on any validation
// or in-batch duplicate error, then dispatches one independent insert per
// email. Duplicates across separate calls are allowed. A failing insert does
// not roll back the ones that landed; the first error is returned.
func (s *InvitationService) CreateBatch(circleID, inviterID string, emails []string) (int, error) {
	circle, err := s.circles.GetByID(circleID)
	if err != nil {
		return 0, err
	}
	if circle.CreatedBy != inviterID {
		return 0, ErrNotHost
	}

	var errs validate.Errs
	staged := make([]string, 0, len(emails))
	seen := make(map[string]bool, len(emails))
	for _, raw := range emails {
		email := models.NormalizeEmail(raw)
		if ef := validate.Email("email", email); ef != nil {
			errs = append(errs, validate.ErrField{Field: email, Msg: "invalid email"})
			continue
		}
		if seen[email] {
			errs = append(errs, validate.ErrField{Field: email, Msg: "duplicate in batch"})
			continue
		}
		seen[email] = true
		staged = append(staged, email)
	}
	if len(errs) > 0 {
		return 0, errs
	}
	if len(staged) == 0 {
		return 0, errors.New("no emails to invite")
	}

	fns := make([]func() error, len(staged))
	for i, email := range staged {
		email := email
		fns[i] = func() error {
			_, err := s.invitations.Create(models.Invitation{
				CircleID:  circleID,
				InvitedBy: inviterID,
				Email:     email,
				Status:    models.InviteStatusPending,
			})
			if err == nil {
				metrics.InvitationsSent.Inc()
			}
			return err
		}
	}
	if err := s.wp.Batch(fns); err != nil {
		return 0, err
	}
	return len(staged), nil
}

// ListPending recomputes the viewer's open invitations fresh on every call:
// exact email match, still pending, not yet expired, most recent first.
func (s *InvitationService) ListPending(viewerEmail string) ([]models.Invitation, error) {
	return s.invitations.ListPending(models.NormalizeEmail(viewerEmail), s.now())
}

func (s *InvitationService) CountPending(viewerEmail string) (int, error) {
	return s.invitations.CountPending(models.NormalizeEmail(viewerEmail), s.now())
}

// Accept enrolls the viewer and marks the invitation accepted. The member
// insert and the status update are independent writes; a failure in the
// second leaves the first in place. When the viewer is already an active
// member, nothing is written and the invitation stays pending.
func (s *InvitationService) Accept(invitationID, viewerID, viewerEmail string) error {
	inv, err := s.invitations.GetByID(invitationID)
	if err != nil {
		return err
	}
	if inv.Status != models.InviteStatusPending {
		return ErrInviteResolved
	}
	if inv.Email != models.NormalizeEmail(viewerEmail) {
		return ErrNotInvitee
	}

	if _, err := s.members.Find(inv.CircleID, viewerID); err == nil {
		return ErrAlreadyMember
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	if _, err := s.members.Create(models.CircleMember{
		CircleID: inv.CircleID,
		UserID:   viewerID,
		Position: nil,
		Status:   models.MemberActive,
	}); err != nil {
		return err
	}
	if err := s.invitations.MarkAccepted(inv.ID, s.now()); err != nil {
		return err
	}
	metrics.InvitationsResolved.WithLabelValues("accepted").Inc()
	return nil
}

// Decline is a single status update with no member-table side effects.
func (s *InvitationService) Decline(invitationID, viewerEmail string) error {
	inv, err := s.invitations.GetByID(invitationID)
	if err != nil {
		return err
	}
	if inv.Status != models.InviteStatusPending {
		return ErrInviteResolved
	}
	if inv.Email != models.NormalizeEmail(viewerEmail) {
		return ErrNotInvitee
	}
	if err := s.invitations.MarkDeclined(inv.ID); err != nil {
		return err
	}
	metrics.InvitationsResolved.WithLabelValues("declined").Inc()
	return nil
}
