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

// Redeem 兌換獎勵：獎勵必須存在且上架，餘額足夠時在單一交易內
// 扣除點數並附加 REDEEMED 帳本紀錄。失敗不留任何狀態變更。
// 獎勵的上下架只由管理員控制，兌換不自動扣庫存。
func Redeem(ctx context.Context, db database.DB, userID, rewardID int) (*model.Transaction, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("Redeem: %w", err)
	}
	defer tx.Rollback(ctx)

	reward, err := store.GetRewardByID(ctx, tx, rewardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("reward %d: %w", rewardID, ErrNotFound)
		}
		return nil, err
	}
	if !reward.Available {
		return nil, fmt.Errorf("reward %d: %w", rewardID, ErrRewardUnavailable)
	}

	desc := fmt.Sprintf("Redeemed reward: %s", reward.Name)
	_, entry, err := ApplyDeltaIn(ctx, tx, userID, -reward.PointsCost, model.TransactionRedeemed, desc, &reward.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("Redeem: commit: %w", err)
	}
	return entry, nil
}
