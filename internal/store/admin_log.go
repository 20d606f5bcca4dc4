package store

import (
	"context"
	"fmt"

	"loyalty-hub/internal/database"
	"loyalty-hub/internal/model"
)

// CreateAdminLog 附加一筆稽核紀錄，與觸發它的管理操作必須在同一交易內。
// 寫入失敗時呼叫端的交易必須整體回滾。
func CreateAdminLog(ctx context.Context, q database.Querier, l *model.AdminLog) (*model.AdminLog, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO admin_logs (admin_id, target_user_id, action, details)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		l.AdminID,
		l.TargetUserID,
		l.Action,
		l.Details,
	)
	if err := row.Scan(&l.ID, &l.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateAdminLog: %w", err)
	}
	return l, nil
}

func ListAdminLogs(ctx context.Context, q database.Querier) ([]model.AdminLog, error) {
	rows, err := q.Query(ctx,
		`SELECT id, admin_id, target_user_id, action, details, created_at
		 FROM admin_logs
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListAdminLogs: %w", err)
	}
	defer rows.Close()

	var logs []model.AdminLog
	for rows.Next() {
		var l model.AdminLog
		if err := rows.Scan(
			&l.ID,
			&l.AdminID,
			&l.TargetUserID,
			&l.Action,
			&l.Details,
			&l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListAdminLogs: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAdminLogs: %w", err)
	}
	return logs, nil
}
