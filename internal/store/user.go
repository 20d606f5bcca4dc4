package store

import (
	"context"
	"fmt"

	"loyalty-hub/internal/database"
	"loyalty-hub/internal/model"
)

const userColumns = `id, email, password_hash, first_name, last_name,
	 is_admin, is_super_admin, enabled, points, referral_code, referred_by, created_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.IsAdmin,
		&u.IsSuperAdmin,
		&u.Enabled,
		&u.Points,
		&u.ReferralCode,
		&u.ReferredBy,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func GetUserByID(ctx context.Context, q database.Querier, userID int) (*model.User, error) {
	u, err := scanUser(q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, q database.Querier, email string) (*model.User, error) {
	u, err := scanUser(q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func GetUserByReferralCode(ctx context.Context, q database.Querier, code string) (*model.User, error) {
	u, err := scanUser(q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE referral_code = $1`,
		code,
	))
	if err != nil {
		return nil, fmt.Errorf("GetUserByReferralCode: %w", err)
	}
	return u, nil
}

func EmailExists(ctx context.Context, q database.Querier, email string) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`,
		email,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("EmailExists: %w", err)
	}
	return exists, nil
}

func ReferralCodeExists(ctx context.Context, q database.Querier, code string) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE referral_code = $1)`,
		code,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("ReferralCodeExists: %w", err)
	}
	return exists, nil
}

func CreateUser(ctx context.Context, q database.Querier, u *model.User) (*model.User, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, first_name, last_name,
		  is_admin, is_super_admin, enabled, points, referral_code, referred_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		u.Email,
		u.PasswordHash,
		u.FirstName,
		u.LastName,
		u.IsAdmin,
		u.IsSuperAdmin,
		u.Enabled,
		u.Points,
		u.ReferralCode,
		u.ReferredBy,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// GetUserPointsForUpdate 以 row lock 讀取餘額，讓同一使用者的
// 並發異動在交易層序列化。必須在交易內呼叫。
func GetUserPointsForUpdate(ctx context.Context, q database.Querier, userID int) (int, error) {
	var points int
	if err := q.QueryRow(ctx,
		`SELECT points FROM users WHERE id = $1 FOR UPDATE`,
		userID,
	).Scan(&points); err != nil {
		return 0, fmt.Errorf("GetUserPointsForUpdate: %w", err)
	}
	return points, nil
}

// UpdateUserPoints 只允許 service 層的 balance mutator 呼叫，
// 餘額欄位沒有其他寫入路徑。
func UpdateUserPoints(ctx context.Context, q database.Querier, userID int, points int) error {
	if _, err := q.Exec(ctx,
		`UPDATE users SET points = $1 WHERE id = $2`,
		points,
		userID,
	); err != nil {
		return fmt.Errorf("UpdateUserPoints: %w", err)
	}
	return nil
}

func ListUsers(ctx context.Context, q database.Querier) ([]model.User, error) {
	rows, err := q.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func UpdateUser(ctx context.Context, q database.Querier, u *model.User) error {
	if _, err := q.Exec(ctx,
		`UPDATE users SET first_name = $1, last_name = $2, is_admin = $3, enabled = $4
		 WHERE id = $5`,
		u.FirstName,
		u.LastName,
		u.IsAdmin,
		u.Enabled,
		u.ID,
	); err != nil {
		return fmt.Errorf("UpdateUser: %w", err)
	}
	return nil
}

func UpdateUserPassword(ctx context.Context, q database.Querier, userID int, passwordHash string) error {
	if _, err := q.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`,
		passwordHash,
		userID,
	); err != nil {
		return fmt.Errorf("UpdateUserPassword: %w", err)
	}
	return nil
}

func DeleteUser(ctx context.Context, q database.Querier, userID int) error {
	if _, err := q.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	); err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}
