package api

import (
	"time"

	"loyalty-hub/internal/model"
)

// swagger:model api.TransactionResponse
type TransactionResponse struct {
	ID          int       `json:"id" example:"12"`
	UserID      int       `json:"user_id" example:"1"`
	Points      int       `json:"points" example:"-800"`
	Type        string    `json:"type" example:"REDEEMED"`
	Description string    `json:"description" example:"Redeemed reward: Coffee Mug"`
	RewardID    *int      `json:"reward_id,omitempty" example:"3"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewTransactionResponse(t *model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Points:      t.Points,
		Type:        string(t.Type),
		Description: t.Description,
		RewardID:    t.RewardID,
		CreatedAt:   t.CreatedAt,
	}
}

func NewTransactionResponses(ts []model.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for i := range ts {
		out = append(out, NewTransactionResponse(&ts[i]))
	}
	return out
}
