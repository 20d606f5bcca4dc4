package api

// swagger:model api.AdjustPointsRequest
type AdjustPointsRequest struct {
	Delta       int    `form:"delta" validate:"required" example:"250"`
	Description string `form:"description" validate:"required" example:"Quarterly bonus"`
}
