package api

// swagger:model api.BalanceAuditResponse
type BalanceAuditResponse struct {
	UserID     int  `json:"user_id" example:"7"`
	Stored     int  `json:"stored" example:"1250"`
	LedgerSum  int  `json:"ledger_sum" example:"1250"`
	Consistent bool `json:"consistent" example:"true"`
	Repaired   bool `json:"repaired" example:"false"`
}
