package goals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerodivida/zerodivida/internal/shared"
)

type fakeRepo struct {
	rows   map[int64]Goal
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]Goal{}, nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, goal Goal) (int64, error) {
	goal.ID = f.nextID
	f.nextID++
	f.rows[goal.ID] = goal
	return goal.ID, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID int64) ([]Goal, error) {
	out := []Goal{}
	for _, g := range f.rows {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id, userID int64) error {
	g, ok := f.rows[id]
	if !ok || g.UserID != userID {
		return shared.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeRepo) AddProgress(ctx context.Context, id, userID int64, amount float64) error {
	g, ok := f.rows[id]
	if !ok || g.UserID != userID {
		return shared.ErrNotFound
	}
	g.CurrentAmount += amount
	f.rows[id] = g
	return nil
}

func validGoal() Goal {
	return Goal{
		UserID:       1,
		Title:        "Reserva",
		TargetAmount: 10000,
		Deadline:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	noUser := validGoal()
	noUser.UserID = 0
	noTitle := validGoal()
	noTitle.Title = ""
	noTarget := validGoal()
	noTarget.TargetAmount = 0
	noDeadline := validGoal()
	noDeadline.Deadline = time.Time{}
	negative := validGoal()
	negative.CurrentAmount = -1

	for _, g := range []Goal{noUser, noTitle, noTarget, noDeadline, negative} {
		_, err := svc.Create(context.Background(), g)
		assert.ErrorIs(t, err, shared.ErrMissingField, "goal %+v", g)
	}
}

func TestDeleteChecksOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), validGoal())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), id, 99)
	assert.ErrorIs(t, err, shared.ErrNotFound, "another user's delete must not succeed")
	assert.Len(t, repo.rows, 1)

	require.NoError(t, svc.Delete(context.Background(), id, 1))
	assert.Empty(t, repo.rows)
}

func TestAddProgress(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), validGoal())
	require.NoError(t, err)

	require.NoError(t, svc.AddProgress(context.Background(), id, 1, 250))
	require.NoError(t, svc.AddProgress(context.Background(), id, 1, 100))
	assert.Equal(t, 350.0, repo.rows[id].CurrentAmount)

	err = svc.AddProgress(context.Background(), id, 1, 0)
	assert.ErrorIs(t, err, shared.ErrMissingField)

	err = svc.AddProgress(context.Background(), id, 99, 10)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, 350.0, repo.rows[id].CurrentAmount)
}

func TestListByUser(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), validGoal())
	require.NoError(t, err)
	other := validGoal()
	other.UserID = 2
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	list, err := svc.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListByUser(context.Background(), 0)
	assert.ErrorIs(t, err, shared.ErrMissingField)
}
