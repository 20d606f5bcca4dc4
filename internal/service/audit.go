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

// BalanceAudit 比對實體餘額欄位與帳本總和的診斷結果
type BalanceAudit struct {
	UserID    int  `json:"user_id"`
	Stored    int  `json:"stored"`
	LedgerSum int  `json:"ledger_sum"`
	Repaired  bool `json:"repaired"`
}

func (a BalanceAudit) Consistent() bool {
	return a.Stored == a.LedgerSum
}

// CheckBalance 回傳使用者的餘額欄位與帳本總和。兩者在任何提交後應相等；
// 不等代表有繞過 balance mutator 的寫入或資料毀損。
func CheckBalance(ctx context.Context, db database.DB, userID int) (*BalanceAudit, error) {
	user, err := store.GetUserByID(ctx, db, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	sum, err := store.SumTransactionsByUser(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	return &BalanceAudit{UserID: userID, Stored: user.Points, LedgerSum: sum}, nil
}

// RepairBalance 以帳本總和重寫餘額欄位，並記一筆 BALANCE_REPAIRED 稽核。
// 鎖定使用者列後重新計算，避免和進行中的異動交錯。
// 這是唯一允許不經 ApplyDelta 改動餘額的路徑，且不產生帳本紀錄
// （產生了反而會讓總和偏移）。
func RepairBalance(ctx context.Context, db database.DB, adminID, userID int) (*BalanceAudit, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("RepairBalance: %w", err)
	}
	defer tx.Rollback(ctx)

	stored, err := store.GetUserPointsForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, err
	}
	sum, err := store.SumTransactionsByUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	audit := &BalanceAudit{UserID: userID, Stored: stored, LedgerSum: sum}
	if audit.Consistent() {
		return audit, tx.Rollback(ctx)
	}

	if err := store.UpdateUserPoints(ctx, tx, userID, sum); err != nil {
		return nil, err
	}
	if _, err := store.CreateAdminLog(ctx, tx, &model.AdminLog{
		AdminID:      adminID,
		TargetUserID: &userID,
		Action:       model.ActionBalanceRepaired,
		Details:      fmt.Sprintf("stored balance %d rewritten to ledger sum %d", stored, sum),
	}); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("RepairBalance: commit: %w", err)
	}
	audit.Repaired = true
	return audit, nil
}
