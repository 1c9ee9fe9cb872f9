package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())
	return db
}

func TestOrderRepository_InsertAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	first := &Order{
		ID:            "o1",
		PayPalOrderID: "PAYPAL-1",
		Status:        "COMPLETED",
		Amount:        42.5,
		Currency:      "CAD",
		CreatedAt:     time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	second := &Order{
		ID:            "o2",
		PayPalOrderID: "PAYPAL-2",
		Status:        "COMPLETED",
		Amount:        19.99,
		Currency:      "CAD",
		CreatedAt:     time.Date(2026, 5, 2, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, second))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "o2", orders[0].ID)
	require.Equal(t, "o1", orders[1].ID)
	require.InDelta(t, 19.99, orders[0].Amount, 0.001)
}

func TestContactRepository_InsertAndList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewContactRepository(db)

	sub := &Submission{
		ID:        "c1",
		Name:      "Pat",
		Email:     "pat@example.org",
		Subject:   "Booking question",
		Message:   "Do you run sessions in the spring?",
		CreatedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Insert(ctx, sub))

	subs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, "Pat", subs[0].Name)
	require.Equal(t, "Do you run sessions in the spring?", subs[0].Message)
}
