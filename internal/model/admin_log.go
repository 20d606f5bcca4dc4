package model

import "time"

// AdminActionType 為管理操作稽核紀錄的封閉類別集合
type AdminActionType string

const (
	ActionPointAdjustment   AdminActionType = "POINT_ADJUSTMENT"
	ActionUserUpdated       AdminActionType = "USER_UPDATED"
	ActionUserDeleted       AdminActionType = "USER_DELETED"
	ActionRewardCreated     AdminActionType = "REWARD_CREATED"
	ActionRewardUpdated     AdminActionType = "REWARD_UPDATED"
	ActionRewardDeleted     AdminActionType = "REWARD_DELETED"
	ActionProductCreated    AdminActionType = "PRODUCT_CREATED"
	ActionProductUpdated    AdminActionType = "PRODUCT_UPDATED"
	ActionProductDeleted    AdminActionType = "PRODUCT_DELETED"
	ActionAssignmentCreated AdminActionType = "ASSIGNMENT_CREATED"
	ActionAssignmentDeleted AdminActionType = "ASSIGNMENT_DELETED"
	ActionBalanceRepaired   AdminActionType = "BALANCE_REPAIRED"
)

// AdminLog 為附加式稽核軌跡，與其所屬的管理操作寫在同一交易內。
type AdminLog struct {
	ID           int             `db:"id" json:"id"`
	AdminID      int             `db:"admin_id" json:"admin_id"`
	TargetUserID *int            `db:"target_user_id" json:"target_user_id,omitempty"`
	Action       AdminActionType `db:"action" json:"action"`
	Details      string          `db:"details" json:"details"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}
