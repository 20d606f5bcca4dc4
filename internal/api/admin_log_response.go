package api

import (
	"time"

	"loyalty-hub/internal/model"
)

// swagger:model api.AdminLogResponse
type AdminLogResponse struct {
	ID           int       `json:"id" example:"5"`
	AdminID      int       `json:"admin_id" example:"1"`
	TargetUserID *int      `json:"target_user_id,omitempty" example:"7"`
	Action       string    `json:"action" example:"POINT_ADJUSTMENT"`
	Details      string    `json:"details" example:"adjusted points by +250 (new balance 1250): bonus"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewAdminLogResponses(ls []model.AdminLog) []AdminLogResponse {
	out := make([]AdminLogResponse, 0, len(ls))
	for _, l := range ls {
		out = append(out, AdminLogResponse{
			ID:           l.ID,
			AdminID:      l.AdminID,
			TargetUserID: l.TargetUserID,
			Action:       string(l.Action),
			Details:      l.Details,
			CreatedAt:    l.CreatedAt,
		})
	}
	return out
}
