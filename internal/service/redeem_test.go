package service

import (
	"context"
	"testing"

	"loyalty-hub/internal/model"

	"github.com/stretchr/testify/require"
)

func TestRedeem(t *testing.T) {
	ctx := context.Background()

	t.Run("debits cost and records REDEEMED entry", func(t *testing.T) {
		m := newMemDB()
		u := m.addUser(model.User{Points: 1000})
		r := m.addReward(model.Reward{Name: "Mug", PointsCost: 800, Available: true})

		entry, err := Redeem(ctx, m.DB(), u.ID, r.ID)
		require.NoError(t, err)
		require.Equal(t, -800, entry.Points)
		require.Equal(t, model.TransactionRedeemed, entry.Type)
		require.NotNil(t, entry.RewardID)
		require.Equal(t, r.ID, *entry.RewardID)
		require.Equal(t, 200, m.balance(u.ID))
	})

	t.Run("insufficient balance leaves no ledger entry", func(t *testing.T) {
		m := newMemDB()
		u := m.addUser(model.User{Points: 500})
		r := m.addReward(model.Reward{Name: "Headphones", PointsCost: 800, Available: true})

		_, err := Redeem(ctx, m.DB(), u.ID, r.ID)
		require.ErrorIs(t, err, ErrInsufficientBalance)
		require.Equal(t, 500, m.balance(u.ID))
		require.Empty(t, m.ledger(u.ID))
	})

	t.Run("unknown reward", func(t *testing.T) {
		m := newMemDB()
		u := m.addUser(model.User{Points: 1000})

		_, err := Redeem(ctx, m.DB(), u.ID, 99)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unavailable reward rejected before any mutation", func(t *testing.T) {
		m := newMemDB()
		u := m.addUser(model.User{Points: 1000})
		r := m.addReward(model.Reward{Name: "Retired", PointsCost: 100, Available: false})

		_, err := Redeem(ctx, m.DB(), u.ID, r.ID)
		require.ErrorIs(t, err, ErrRewardUnavailable)
		require.Equal(t, 1000, m.balance(u.ID))
		require.Empty(t, m.ledger(u.ID))
	})

	t.Run("ledger append failure rolls back the debit", func(t *testing.T) {
		m := newMemDB()
		u := m.addUser(model.User{Points: 1000})
		r := m.addReward(model.Reward{Name: "Mug", PointsCost: 800, Available: true})
		m.failOn = "INSERT INTO transactions"

		_, err := Redeem(ctx, m.DB(), u.ID, r.ID)
		require.ErrorIs(t, err, errInjected)
		require.Equal(t, 1000, m.balance(u.ID))
		require.Empty(t, m.ledger(u.ID))
	})
}
