package services

import (
	"github.com/ajoroapp/ajoro-backend/internal/metrics"
	repo "github.com/ajoroapp/ajoro-backend/internal/repository"
	"github.com/ajoroapp/ajoro-backend/internal/worker"
)

type MemberService struct {
	circles repo.Circles
	members repo.Members
	wp      *worker.Pool
}

func NewMemberService(c repo.Circles, m repo.Members, wp *worker.Pool) *MemberService {
	return &MemberService{circles: c, members: m, wp: wp}
}

// CommitOrder persists a full reordering: member i in orderedIDs gets
// position i+1. The ids must be exactly the circle's member set. Each update
// is an independent write dispatched concurrently and collectively awaited;
// a partial failure leaves earlier updates in place and reports the first
// error. Re-committing the same order is idempotent since every position is
// overwritten.
func (s *MemberService) CommitOrder(circleID, requesterID string, orderedIDs []string) error {
	circle, err := s.circles.GetByID(circleID)
	if err != nil {
		return err
	}
	if circle.CreatedBy != requesterID {
		return ErrNotHost
	}

	current, err := s.members.ListByCircle(circleID)
	if err != nil {
		return err
	}
	if len(orderedIDs) != len(current) {
		return ErrOrderMismatch
	}
	known := make(map[string]bool, len(current))
	for _, m := range current {
		known[m.ID] = true
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !known[id] || seen[id] {
			return ErrOrderMismatch
		}
		seen[id] = true
	}

	fns := make([]func() error, len(orderedIDs))
	for i, id := range orderedIDs {
		i, id := i, id
		fns[i] = func() error { return s.members.UpdatePosition(id, i+1) }
	}
	if err := s.wp.Batch(fns); err != nil {
		return err
	}
	metrics.RotationCommits.Inc()
	return nil
}
