package service

import "errors"

// Sentinel errors 供 handler 以 errors.Is 分類回應。
// 驗證類錯誤在交易提交前偵測，乾淨中止，不留任何部分寫入；
// 其他錯誤視為儲存層失敗，呼叫端在確認 rollback 前不得假設狀態未變。
var (
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidReferralCode = errors.New("invalid referral code")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRewardUnavailable   = errors.New("reward unavailable")
	ErrNotFound            = errors.New("not found")
)
