package service

import (
	"context"
	"fmt"

	"loyalty-hub/internal/database"
	"loyalty-hub/internal/model"
	"loyalty-hub/internal/store"
)

// AdjustPoints 由管理員對目標使用者做正負點數調整。
// 餘額異動與 POINT_ADJUSTMENT 稽核紀錄寫在同一交易：
// 稽核寫入失敗時調整一併回滾，調整失敗時不留稽核紀錄。
func AdjustPoints(ctx context.Context, db database.DB, adminID, targetUserID, delta int, description string) (*model.Transaction, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("AdjustPoints: %w", err)
	}
	defer tx.Rollback(ctx)

	newBalance, entry, err := ApplyDeltaIn(ctx, tx, targetUserID, delta, model.TransactionAdminAdjustment, description, nil)
	if err != nil {
		return nil, err
	}

	if _, err := store.CreateAdminLog(ctx, tx, &model.AdminLog{
		AdminID:      adminID,
		TargetUserID: &targetUserID,
		Action:       model.ActionPointAdjustment,
		Details:      fmt.Sprintf("adjusted points by %+d (new balance %d): %s", delta, newBalance, description),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("AdjustPoints: commit: %w", err)
	}
	return entry, nil
}

// WithAdminLog 把任一管理操作與它的稽核紀錄包進同一交易。
// fn 失敗或稽核寫入失敗都會整體回滾。
func WithAdminLog(ctx context.Context, db database.DB, entry model.AdminLog, fn func(q database.Querier) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("WithAdminLog: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	if _, err := store.CreateAdminLog(ctx, tx, &entry); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("WithAdminLog: commit: %w", err)
	}
	return nil
}
