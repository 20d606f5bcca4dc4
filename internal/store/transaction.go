package store

import (
	"context"
	"fmt"

	"loyalty-hub/internal/database"
	"loyalty-hub/internal/model"
)

// CreateTransaction 附加一筆帳本紀錄。帳本只進不改：
// 這個 package 不提供任何 UPDATE/DELETE transactions 的操作。
func CreateTransaction(ctx context.Context, q database.Querier, t *model.Transaction) (*model.Transaction, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO transactions (user_id, points, type, description, reward_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		t.UserID,
		t.Points,
		t.Type,
		t.Description,
		t.RewardID,
	)
	if err := row.Scan(&t.ID, &t.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateTransaction: %w", err)
	}
	return t, nil
}

// ListTransactionsByUser 回傳該使用者的帳本紀錄，最新在前。
func ListTransactionsByUser(ctx context.Context, q database.Querier, userID int) ([]model.Transaction, error) {
	rows, err := q.Query(ctx,
		`SELECT id, user_id, points, type, description, reward_id, created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTransactionsByUser: %w", err)
	}
	defer rows.Close()

	var txs []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Points,
			&t.Type,
			&t.Description,
			&t.RewardID,
			&t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListTransactionsByUser: %w", err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTransactionsByUser: %w", err)
	}
	return txs, nil
}

// SumTransactionsByUser 回傳帶正負號的點數總和。
// 在任何交易提交後，這個總和必須等於 users.points。
func SumTransactionsByUser(ctx context.Context, q database.Querier, userID int) (int, error) {
	var sum int
	if err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(points), 0) FROM transactions WHERE user_id = $1`,
		userID,
	).Scan(&sum); err != nil {
		return 0, fmt.Errorf("SumTransactionsByUser: %w", err)
	}
	return sum, nil
}
