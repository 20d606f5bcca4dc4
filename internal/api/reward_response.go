package api

import (
	"time"

	"loyalty-hub/internal/model"
)

// swagger:model api.RewardResponse
type RewardResponse struct {
	ID          int       `json:"id" example:"3"`
	Name        string    `json:"name" example:"Coffee Mug"`
	Description string    `json:"description" example:"Ceramic mug with logo"`
	PointsCost  int       `json:"points_cost" example:"800"`
	ImageURL    string    `json:"image_url" example:"https://cdn.example.com/mug.png"`
	Available   bool      `json:"available" example:"true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewRewardResponse(r *model.Reward) RewardResponse {
	return RewardResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		PointsCost:  r.PointsCost,
		ImageURL:    r.ImageURL,
		Available:   r.Available,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func NewRewardResponses(rs []model.Reward) []RewardResponse {
	out := make([]RewardResponse, 0, len(rs))
	for i := range rs {
		out = append(out, NewRewardResponse(&rs[i]))
	}
	return out
}
