package api

// swagger:model api.ActivityRequest
type ActivityRequest struct {
	Name   string `form:"name" validate:"required" example:"Complete profile"`
	Points int    `form:"points" validate:"required,gt=0" example:"100"`
}
