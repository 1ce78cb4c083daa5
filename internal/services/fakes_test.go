package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ajoroapp/ajoro-backend/internal/models"
	repo "github.com/ajoroapp/ajoro-backend/internal/repository"
)

// In-memory repositories for service tests. They mirror the store's
// behavior closely enough to exercise the services' state transitions,
// including expiry-as-a-query-predicate and the (circle_id, user_id)
// uniqueness of members.

type fakeUsers struct {
	mu   sync.Mutex
	byID map[string]models.User
	seq  int
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]models.User{}} }

func (f *fakeUsers) Create(email, hash string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	u := models.User{ID: fmt.Sprintf("user-%d", f.seq), Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsers) GetByEmail(email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

type fakeProfiles struct {
	mu     sync.Mutex
	byUser map[string]models.Profile
}

func newFakeProfiles() *fakeProfiles { return &fakeProfiles{byUser: map[string]models.Profile{}} }

func (f *fakeProfiles) GetByUserID(userID string) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byUser[userID]; ok {
		return p, nil
	}
	return models.Profile{}, repo.ErrNotFound
}

func (f *fakeProfiles) Upsert(p models.Profile) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byUser[p.UserID]; ok {
		p.ID = existing.ID
	} else if p.ID == "" {
		p.ID = "profile-" + p.UserID
	}
	p.UpdatedAt = time.Now()
	f.byUser[p.UserID] = p
	return p, nil
}

type fakeCircles struct {
	mu   sync.Mutex
	byID map[string]models.Circle
	seq  int

	members *fakeMembers // for ListJoinedBy
}

func newFakeCircles(members *fakeMembers) *fakeCircles {
	return &fakeCircles{byID: map[string]models.Circle{}, members: members}
}

func (f *fakeCircles) Create(c models.Circle) (models.Circle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	if c.ID == "" {
		c.ID = fmt.Sprintf("circle-%d", f.seq)
	}
	if c.Status == "" {
		c.Status = models.CircleActive
	}
	c.CreatedAt = time.Now()
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeCircles) GetByID(id string) (models.Circle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return models.Circle{}, repo.ErrNotFound
}

func (f *fakeCircles) ListOwnedBy(userID string) ([]models.Circle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Circle
	for _, c := range f.byID {
		if c.CreatedBy == userID && c.Status == models.CircleActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeCircles) ListJoinedBy(userID string) ([]models.Circle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Circle
	for _, m := range f.members.all() {
		if m.UserID == userID {
			if c, ok := f.byID[m.CircleID]; ok {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

type fakeMembers struct {
	mu   sync.Mutex
	rows []models.CircleMember
	seq  int

	createErr  error            // injected failure for the next Create
	updateErrs map[string]error // memberID -> error on UpdatePosition
}

func newFakeMembers() *fakeMembers { return &fakeMembers{updateErrs: map[string]error{}} }

func (f *fakeMembers) all() []models.CircleMember {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.CircleMember, len(f.rows))
	copy(out, f.rows)
	return out
}

func (f *fakeMembers) Create(m models.CircleMember) (models.CircleMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		return models.CircleMember{}, err
	}
	for _, existing := range f.rows {
		if existing.CircleID == m.CircleID && existing.UserID == m.UserID {
			return models.CircleMember{}, fmt.Errorf("duplicate key (circle_id, user_id)")
		}
	}
	f.seq++
	if m.ID == "" {
		m.ID = fmt.Sprintf("member-%d", f.seq)
	}
	if m.Status == "" {
		m.Status = models.MemberActive
	}
	m.JoinedAt = time.Now()
	f.rows = append(f.rows, m)
	return m, nil
}

func (f *fakeMembers) Find(circleID, userID string) (models.CircleMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.rows {
		if m.CircleID == circleID && m.UserID == userID {
			return m, nil
		}
	}
	return models.CircleMember{}, repo.ErrNotFound
}

func (f *fakeMembers) ListByCircle(circleID string) ([]models.CircleMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CircleMember
	for _, m := range f.rows {
		if m.CircleID == circleID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMembers) UpdatePosition(memberID string, position int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.updateErrs[memberID]; ok {
		return err
	}
	for i := range f.rows {
		if f.rows[i].ID == memberID {
			pos := position
			f.rows[i].Position = &pos
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeMembers) CountByCircle(circleID string) (int, error) {
	members, _ := f.ListByCircle(circleID)
	return len(members), nil
}

type fakeContributions struct {
	rows []models.Contribution
}

func (f *fakeContributions) ListCompleted(circleID string) ([]models.Contribution, error) {
	var out []models.Contribution
	for _, c := range f.rows {
		if c.CircleID == circleID && c.Status == models.ContributionCompleted {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContributedAt.After(out[j].ContributedAt) })
	return out, nil
}

func (f *fakeContributions) TotalCompleted(circleID string) (int64, error) {
	var total int64
	for _, c := range f.rows {
		if c.CircleID == circleID && c.Status == models.ContributionCompleted {
			total += c.Amount
		}
	}
	return total, nil
}

type fakeInvitations struct {
	mu   sync.Mutex
	byID map[string]*models.Invitation
	seq  int

	ttl       time.Duration    // simulates the store's expires_at default
	createErr map[string]error // email -> injected insert failure
}

func newFakeInvitations() *fakeInvitations {
	return &fakeInvitations{byID: map[string]*models.Invitation{}, ttl: 7 * 24 * time.Hour, createErr: map[string]error{}}
}

func (f *fakeInvitations) Create(inv models.Invitation) (models.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.createErr[inv.Email]; ok {
		return models.Invitation{}, err
	}
	f.seq++
	if inv.ID == "" {
		inv.ID = fmt.Sprintf("invite-%d", f.seq)
	}
	if inv.Status == "" {
		inv.Status = models.InviteStatusPending
	}
	inv.InvitedAt = time.Now()
	inv.ExpiresAt = inv.InvitedAt.Add(f.ttl)
	stored := inv
	f.byID[inv.ID] = &stored
	return inv, nil
}

func (f *fakeInvitations) GetByID(id string) (models.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if inv, ok := f.byID[id]; ok {
		return *inv, nil
	}
	return models.Invitation{}, repo.ErrNotFound
}

func (f *fakeInvitations) ListPending(email string, now time.Time) ([]models.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Invitation
	for _, inv := range f.byID {
		if inv.Email == email && inv.Status == models.InviteStatusPending && inv.ExpiresAt.After(now) {
			out = append(out, *inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvitedAt.After(out[j].InvitedAt) })
	return out, nil
}

func (f *fakeInvitations) CountPending(email string, now time.Time) (int, error) {
	pending, _ := f.ListPending(email, now)
	return len(pending), nil
}

func (f *fakeInvitations) MarkAccepted(id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	inv.Status = models.InviteStatusAccepted
	inv.AcceptedAt = &at
	return nil
}

func (f *fakeInvitations) MarkDeclined(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	inv.Status = models.InviteStatusDeclined
	return nil
}
