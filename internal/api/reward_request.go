package api

// swagger:model api.RewardRequest
type RewardRequest struct {
	Name        string `form:"name" validate:"required" example:"Coffee Mug"`
	Description string `form:"description" example:"Ceramic mug with logo"`
	PointsCost  int    `form:"points_cost" validate:"required,gt=0" example:"800"`
	ImageURL    string `form:"image_url" validate:"omitempty,url" example:"https://cdn.example.com/mug.png"`
	Available   bool   `form:"available" example:"true"`
}
