package api

// swagger:model api.AssignmentRequest
type AssignmentRequest struct {
	UserID    int `form:"user_id" validate:"required" example:"7"`
	ProductID int `form:"product_id" validate:"required" example:"3"`
}
