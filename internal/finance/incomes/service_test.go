package incomes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerodivida/zerodivida/internal/shared"
)

type fakeRepo struct {
	rows   map[int64]Income
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]Income{}, nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, income Income) (int64, error) {
	income.ID = f.nextID
	f.nextID++
	f.rows[income.ID] = income
	return income.ID, nil
}

func (f *fakeRepo) ListByMonth(ctx context.Context, userID int64, month string) ([]Income, error) {
	out := []Income{}
	for _, row := range f.rows {
		if row.UserID == userID && row.Month == month {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.calls++
	return nil
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	cases := []Income{
		{UserID: 0, Amount: 100, Month: "2026-08"},
		{UserID: 1, Amount: 0, Month: "2026-08"},
		{UserID: 1, Amount: -5, Month: "2026-08"},
		{UserID: 1, Amount: 100, Month: ""},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, shared.ErrMissingField, "input %+v", in)
	}
}

func TestCreateAndList(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	id, err := svc.Create(context.Background(), Income{UserID: 1, Amount: 3500, Month: "2026-08"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	_, err = svc.Create(context.Background(), Income{UserID: 2, Amount: 900, Month: "2026-08"})
	require.NoError(t, err)

	list, err := svc.ListByMonth(context.Background(), 1, "2026-08")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3500.0, list[0].Amount)

	_, err = svc.ListByMonth(context.Background(), 1, "")
	assert.ErrorIs(t, err, shared.ErrMissingField)
}

func TestDeleteUnknown(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)
	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestWritesBumpInvalidator(t *testing.T) {
	repo := newFakeRepo()
	inv := &countingInvalidator{}
	svc := NewService(repo, inv)

	id, err := svc.Create(context.Background(), Income{UserID: 1, Amount: 100, Month: "2026-08"})
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls, "create must invalidate")

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, 2, inv.calls, "delete must invalidate")

	// Failed writes leave the cache alone.
	_, err = svc.Create(context.Background(), Income{UserID: 0})
	require.Error(t, err)
	assert.Equal(t, 2, inv.calls)
}
