package api

import (
	"time"

	"loyalty-hub/internal/model"
)

// swagger:model api.AssignmentResponse
type AssignmentResponse struct {
	ID        int       `json:"id" example:"9"`
	UserID    int       `json:"user_id" example:"7"`
	ProductID int       `json:"product_id" example:"2"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAssignmentResponses(as []model.Assignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(as))
	for _, a := range as {
		out = append(out, AssignmentResponse{
			ID:        a.ID,
			UserID:    a.UserID,
			ProductID: a.ProductID,
			CreatedAt: a.CreatedAt,
		})
	}
	return out
}
