package service

import (
	"context"
	"errors"
	"fmt"

	"loyalty-hub/internal/database"
	"loyalty-hub/internal/model"
	"loyalty-hub/internal/store"

	"github.com/jackc/pgx/v5"
)

// ApplyDelta 是 users.points 唯一的寫入路徑：在單一交易內鎖定使用者列、
// 檢查餘額、更新餘額並附加對應的帳本紀錄。餘額更新與帳本寫入要麼一起提交，
// 要麼一起回滾。同一使用者的並發呼叫由 row lock 序列化，不同使用者互不阻塞。
func ApplyDelta(ctx context.Context, db database.DB, userID, delta int, txType model.TransactionType, description string, rewardID *int) (int, *model.Transaction, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("ApplyDelta: %w", err)
	}
	defer tx.Rollback(ctx)

	balance, entry, err := ApplyDeltaIn(ctx, tx, userID, delta, txType, description, rewardID)
	if err != nil {
		return 0, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, nil, fmt.Errorf("ApplyDelta: commit: %w", err)
	}
	return balance, entry, nil
}

// ApplyDeltaIn 在呼叫端既有的交易內執行同一組異動，
// 供註冊（推薦獎勵）與管理調整（稽核紀錄）把額外的寫入併進同一原子單位。
func ApplyDeltaIn(ctx context.Context, q database.Querier, userID, delta int, txType model.TransactionType, description string, rewardID *int) (int, *model.Transaction, error) {
	current, err := store.GetUserPointsForUpdate(ctx, q, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return 0, nil, err
	}

	newBalance := current + delta
	if newBalance < 0 {
		return 0, nil, fmt.Errorf("balance %d, delta %d: %w", current, delta, ErrInsufficientBalance)
	}

	if err := store.UpdateUserPoints(ctx, q, userID, newBalance); err != nil {
		return 0, nil, err
	}

	entry, err := store.CreateTransaction(ctx, q, &model.Transaction{
		UserID:      userID,
		Points:      delta,
		Type:        txType,
		Description: description,
		RewardID:    rewardID,
	})
	if err != nil {
		return 0, nil, err
	}
	return newBalance, entry, nil
}
