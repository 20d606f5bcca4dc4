package api

import (
	"time"

	"loyalty-hub/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID           int       `json:"id" example:"1"`
	Email        string    `json:"email" example:"alice@example.com"`
	FirstName    string    `json:"first_name" example:"Alice"`
	LastName     string    `json:"last_name" example:"Chen"`
	IsAdmin      bool      `json:"is_admin" example:"false"`
	IsSuperAdmin bool      `json:"is_super_admin" example:"false"`
	Enabled      bool      `json:"enabled" example:"true"`
	Points       int       `json:"points" example:"2000"`
	ReferralCode string    `json:"referral_code" example:"00112233deadbeef"`
	CreatedAt    time.Time `json:"created_at" example:"2025-05-01T15:04:05Z07:00"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsAdmin:      u.IsAdmin,
		IsSuperAdmin: u.IsSuperAdmin,
		Enabled:      u.Enabled,
		Points:       u.Points,
		ReferralCode: u.ReferralCode,
		CreatedAt:    u.CreatedAt,
	}
}
