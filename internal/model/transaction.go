package model

import "time"

// TransactionType 標記點數異動的來源
type TransactionType string

const (
	TransactionEarned          TransactionType = "EARNED"
	TransactionRedeemed        TransactionType = "REDEEMED"
	TransactionAdminAdjustment TransactionType = "ADMIN_ADJUSTMENT"
	TransactionWelcomeBonus    TransactionType = "WELCOME_BONUS"
	TransactionReferralBonus   TransactionType = "REFERRAL_BONUS"
)

// Transaction 為點數帳本的一筆紀錄，寫入後不得修改或刪除。
// Points 帶正負號；使用者餘額永遠等於其所有 Transaction 的總和。
type Transaction struct {
	ID          int             `db:"id" json:"id"`
	UserID      int             `db:"user_id" json:"user_id"`
	Points      int             `db:"points" json:"points"`
	Type        TransactionType `db:"type" json:"type"`
	Description string          `db:"description" json:"description"`
	RewardID    *int            `db:"reward_id" json:"reward_id,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
