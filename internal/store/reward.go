package store

import (
	"context"
	"fmt"

	"loyalty-hub/internal/database"
	"loyalty-hub/internal/model"
)

const rewardColumns = `id, name, description, points_cost, image_url, available, created_at, updated_at`

func scanReward(row interface{ Scan(dest ...any) error }) (*model.Reward, error) {
	r := &model.Reward{}
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.Description,
		&r.PointsCost,
		&r.ImageURL,
		&r.Available,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func GetRewardByID(ctx context.Context, q database.Querier, rewardID int) (*model.Reward, error) {
	r, err := scanReward(q.QueryRow(ctx,
		`SELECT `+rewardColumns+` FROM rewards WHERE id = $1`,
		rewardID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetRewardByID: %w", err)
	}
	return r, nil
}

// ListRewards 列出獎勵；availableOnly 供一般使用者過濾下架項目。
func ListRewards(ctx context.Context, q database.Querier, availableOnly bool) ([]model.Reward, error) {
	sql := `SELECT ` + rewardColumns + ` FROM rewards ORDER BY id`
	if availableOnly {
		sql = `SELECT ` + rewardColumns + ` FROM rewards WHERE available ORDER BY id`
	}
	rows, err := q.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("ListRewards: %w", err)
	}
	defer rows.Close()

	var rewards []model.Reward
	for rows.Next() {
		r, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRewards: %w", err)
		}
		rewards = append(rewards, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRewards: %w", err)
	}
	return rewards, nil
}

func CreateReward(ctx context.Context, q database.Querier, r *model.Reward) (*model.Reward, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO rewards (name, description, points_cost, image_url, available)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		r.Name,
		r.Description,
		r.PointsCost,
		r.ImageURL,
		r.Available,
	)
	if err := row.Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateReward: %w", err)
	}
	return r, nil
}

func UpdateReward(ctx context.Context, q database.Querier, r *model.Reward) error {
	if _, err := q.Exec(ctx,
		`UPDATE rewards
		 SET name = $1, description = $2, points_cost = $3, image_url = $4,
		     available = $5, updated_at = now()
		 WHERE id = $6`,
		r.Name,
		r.Description,
		r.PointsCost,
		r.ImageURL,
		r.Available,
		r.ID,
	); err != nil {
		return fmt.Errorf("UpdateReward: %w", err)
	}
	return nil
}

func DeleteReward(ctx context.Context, q database.Querier, rewardID int) error {
	if _, err := q.Exec(ctx,
		`DELETE FROM rewards WHERE id = $1`,
		rewardID,
	); err != nil {
		return fmt.Errorf("DeleteReward: %w", err)
	}
	return nil
}
