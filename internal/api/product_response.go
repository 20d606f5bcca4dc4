package api

import (
	"time"

	"loyalty-hub/internal/model"
)

// swagger:model api.ProductResponse
type ProductResponse struct {
	ID          int                `json:"id" example:"2"`
	Name        string             `json:"name" example:"Onboarding"`
	Description string             `json:"description" example:"First-month activities"`
	Activities  []ActivityResponse `json:"activities,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// swagger:model api.ActivityResponse
type ActivityResponse struct {
	ID        int    `json:"id" example:"4"`
	ProductID int    `json:"product_id" example:"2"`
	Name      string `json:"name" example:"Complete profile"`
	Points    int    `json:"points" example:"300"`
}

func NewProductResponse(p *model.Product, acts []model.Activity) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
	for _, a := range acts {
		resp.Activities = append(resp.Activities, ActivityResponse{
			ID:        a.ID,
			ProductID: a.ProductID,
			Name:      a.Name,
			Points:    a.Points,
		})
	}
	return resp
}
