package api

// swagger:model api.ProductRequest
type ProductRequest struct {
	Name        string `form:"name" validate:"required" example:"Onboarding Program"`
	Description string `form:"description" example:"Activities for new customers"`
}
