package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ajoroapp/ajoro-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCircleFixture() (*CircleService, *fakeCircles, *fakeMembers, *fakeContributions) {
	members := newFakeMembers()
	circles := newFakeCircles(members)
	contribs := &fakeContributions{}
	return NewCircleService(circles, members, contribs), circles, members, contribs
}

func validCircle() models.Circle {
	return models.Circle{
		Name:               "1k to Pack 20k",
		Description:        "Weekly savings pool",
		ContributionAmount: 1000,
		MaxMembers:         10,
		Frequency:          models.FreqMonthly,
		StartDate:          time.Now().AddDate(0, 0, 1),
	}
}

func TestCreate_AutoEnrollsCreatorAtPositionOne(t *testing.T) {
	svc, _, members, _ := newCircleFixture()

	c, err := svc.Create("host-1", validCircle())
	require.NoError(t, err)
	assert.Equal(t, models.CircleActive, c.Status)
	assert.Equal(t, "host-1", c.CreatedBy)

	m, err := members.Find(c.ID, "host-1")
	require.NoError(t, err)
	require.NotNil(t, m.Position)
	assert.Equal(t, 1, *m.Position)

	count, _ := members.CountByCircle(c.ID)
	assert.Equal(t, 1, count, "member count reads 1 of max 10")
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _, _ := newCircleFixture()

	for name, mutate := range map[string]func(*models.Circle){
		"empty name":      func(c *models.Circle) { c.Name = " " },
		"zero amount":     func(c *models.Circle) { c.ContributionAmount = 0 },
		"zero members":    func(c *models.Circle) { c.MaxMembers = 0 },
		"bad frequency":   func(c *models.Circle) { c.Frequency = "hourly" },
		"zero start date": func(c *models.Circle) { c.StartDate = time.Time{} },
	} {
		t.Run(name, func(t *testing.T) {
			c := validCircle()
			mutate(&c)
			_, err := svc.Create("host-1", c)
			assert.Error(t, err)
		})
	}
}

func TestCreate_AutoJoinFailureLeavesCircleBehind(t *testing.T) {
	// The circle insert and the auto-join are independent writes; the
	// second failing surfaces an error but does not undo the first.
	svc, circles, members, _ := newCircleFixture()
	members.createErr = errors.New("insert failed")

	c, err := svc.Create("host-1", validCircle())
	require.Error(t, err)
	assert.NotEmpty(t, c.ID)

	_, err = circles.GetByID(c.ID)
	assert.NoError(t, err, "circle row stays after partial failure")
	count, _ := members.CountByCircle(c.ID)
	assert.Zero(t, count)
}

func TestListForUser_DeduplicatesAndFlags(t *testing.T) {
	svc, _, members, _ := newCircleFixture()

	hosted, err := svc.Create("host-1", validCircle())
	require.NoError(t, err)

	other := validCircle()
	other.Name = "Other Pool"
	joined, err := svc.Create("host-2", other)
	require.NoError(t, err)
	_, err = members.Create(models.CircleMember{CircleID: joined.ID, UserID: "host-1"})
	require.NoError(t, err)

	out, err := svc.ListForUser("host-1")
	require.NoError(t, err)
	require.Len(t, out, 2)

	byID := map[string]CircleWithMeta{}
	for _, c := range out {
		byID[c.ID] = c
	}
	assert.True(t, byID[hosted.ID].IsHost)
	assert.True(t, byID[hosted.ID].IsMember)
	assert.Equal(t, 1, byID[hosted.ID].MemberCount)

	assert.False(t, byID[joined.ID].IsHost)
	assert.True(t, byID[joined.ID].IsMember)
	assert.Equal(t, 2, byID[joined.ID].MemberCount)
}

func TestDetail_AggregatesMembersAndWallet(t *testing.T) {
	svc, _, members, contribs := newCircleFixture()

	c, err := svc.Create("host-1", validCircle())
	require.NoError(t, err)
	_, err = members.Create(models.CircleMember{CircleID: c.ID, UserID: "user-2"})
	require.NoError(t, err)

	contribs.rows = []models.Contribution{
		{ID: "t1", CircleID: c.ID, UserID: "host-1", Amount: 1000, Status: models.ContributionCompleted, ContributedAt: time.Now().Add(-time.Hour)},
		{ID: "t2", CircleID: c.ID, UserID: "user-2", Amount: 1000, Status: models.ContributionCompleted, ContributedAt: time.Now()},
		{ID: "t3", CircleID: c.ID, UserID: "user-2", Amount: 500, Status: models.ContributionPending, ContributedAt: time.Now()},
	}

	d, err := svc.Detail(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, d.Circle.ID)
	assert.Equal(t, 2, d.MemberCount)
	assert.Equal(t, int64(2000), d.WalletTotal, "only completed rows count")
	require.Len(t, d.Contributions, 2)
	assert.Equal(t, "t2", d.Contributions[0].ID, "newest first")

	// Members come back in rotation order: position 1 host, then the
	// unpositioned joiner.
	require.Len(t, d.Members, 2)
	assert.Equal(t, "host-1", d.Members[0].UserID)
	assert.Equal(t, "user-2", d.Members[1].UserID)
}
