package model

import "time"

type User struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	IsSuperAdmin bool      `db:"is_super_admin" json:"is_super_admin"`
	Enabled      bool      `db:"enabled" json:"enabled"`
	Points       int       `db:"points" json:"points"`
	ReferralCode string    `db:"referral_code" json:"referral_code"`
	ReferredBy   *string   `db:"referred_by" json:"referred_by,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
