package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"loyalty-hub/internal/model"

	"github.com/stretchr/testify/require"
)

func TestApplyDelta(t *testing.T) {
	ctx := context.Background()

	t.Run("credit updates balance and appends ledger entry", func(t *testing.T) {
		m := newMemDB()
		u := m.addUser(model.User{Points: 1000})

		balance, entry, err := ApplyDelta(ctx, m.DB(), u.ID, 250, model.TransactionEarned, "activity", nil)
		require.NoError(t, err)
		require.Equal(t, 1250, balance)
		require.Equal(t, 250, entry.Points)
		require.Equal(t, model.TransactionEarned, entry.Type)
		require.Equal(t, 1250, m.balance(u.ID))
		require.Len(t, m.ledger(u.ID), 1)
	})

	t.Run("debit below zero rejected with no state change", func(t *testing.T) {
		m := newMemDB()
		u := m.addUser(model.User{Points: 500})

		_, _, err := ApplyDelta(ctx, m.DB(), u.ID, -800, model.TransactionRedeemed, "too much", nil)
		require.ErrorIs(t, err, ErrInsufficientBalance)
		require.Equal(t, 500, m.balance(u.ID))
		require.Empty(t, m.ledger(u.ID))
	})

	t.Run("debit to exactly zero allowed", func(t *testing.T) {
		m := newMemDB()
		u := m.addUser(model.User{Points: 300})

		balance, _, err := ApplyDelta(ctx, m.DB(), u.ID, -300, model.TransactionRedeemed, "all in", nil)
		require.NoError(t, err)
		require.Equal(t, 0, balance)
	})

	t.Run("unknown user", func(t *testing.T) {
		m := newMemDB()
		_, _, err := ApplyDelta(ctx, m.DB(), 42, 10, model.TransactionEarned, "", nil)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("failure between balance write and ledger append rolls back both", func(t *testing.T) {
		m := newMemDB()
		u := m.addUser(model.User{Points: 1000})
		m.failOn = "INSERT INTO transactions"

		_, _, err := ApplyDelta(ctx, m.DB(), u.ID, 100, model.TransactionEarned, "crash", nil)
		require.ErrorIs(t, err, errInjected)
		require.Equal(t, 1000, m.balance(u.ID))
		require.Empty(t, m.ledger(u.ID))
	})

	t.Run("failure on balance write leaves no ledger entry", func(t *testing.T) {
		m := newMemDB()
		u := m.addUser(model.User{Points: 1000})
		m.failOn = "UPDATE users SET points"

		_, _, err := ApplyDelta(ctx, m.DB(), u.ID, 100, model.TransactionEarned, "crash", nil)
		require.ErrorIs(t, err, errInjected)
		require.Equal(t, 1000, m.balance(u.ID))
		require.Empty(t, m.ledger(u.ID))
	})

	t.Run("begin error", func(t *testing.T) {
		m := newMemDB()
		m.beginErr = errors.New("pool exhausted")
		_, _, err := ApplyDelta(ctx, m.DB(), 1, 10, model.TransactionEarned, "", nil)
		require.Error(t, err)
	})

	t.Run("commit error surfaces and leaves state intact", func(t *testing.T) {
		m := newMemDB()
		u := m.addUser(model.User{Points: 1000})
		m.commitErr = errors.New("connection reset")

		_, _, err := ApplyDelta(ctx, m.DB(), u.ID, 100, model.TransactionEarned, "", nil)
		require.Error(t, err)
		require.Equal(t, 1000, m.balance(u.ID))
	})
}

// 同一使用者的並發異動必須序列化：最終餘額等於初始值加上所有 delta，
// 且帳本筆數等於異動次數。
func TestApplyDeltaConcurrent(t *testing.T) {
	m := newMemDB()
	u := m.addUser(model.User{Points: 1000})
	deltas := []int{100, -50, 200, -100, 25, 300, -75, 10}

	var wg sync.WaitGroup
	for _, d := range deltas {
		wg.Add(1)
		go func(d int) {
			defer wg.Done()
			_, _, err := ApplyDelta(context.Background(), m.DB(), u.ID, d, model.TransactionAdminAdjustment, "concurrent", nil)
			require.NoError(t, err)
		}(d)
	}
	wg.Wait()

	want := 1000
	for _, d := range deltas {
		want += d
	}
	require.Equal(t, want, m.balance(u.ID))
	require.Len(t, m.ledger(u.ID), len(deltas))

	sum := 0
	for _, entry := range m.ledger(u.ID) {
		sum += entry.Points
	}
	require.Equal(t, want-1000, sum)
}
