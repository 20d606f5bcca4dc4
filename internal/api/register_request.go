package api

// swagger:model api.RegisterRequest
type RegisterRequest struct {
	Email        string `form:"email" validate:"required,email" example:"alice@example.com"`
	Password     string `form:"password" validate:"required,min=8" example:"Secret123!"`
	FirstName    string `form:"first_name" validate:"required" example:"Alice"`
	LastName     string `form:"last_name" validate:"required" example:"Chen"`
	ReferralCode string `form:"referral_code" validate:"omitempty,len=16,hexadecimal" example:"00112233deadbeef"`
}
