package api

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	FirstName string `form:"first_name" validate:"required" example:"Alice"`
	LastName  string `form:"last_name" validate:"required" example:"Chen"`
	IsAdmin   bool   `form:"is_admin" example:"false"`
	Enabled   bool   `form:"enabled" example:"true"`
}
