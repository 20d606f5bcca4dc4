package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"loyalty-hub/internal/database"
	"loyalty-hub/internal/model"
	"loyalty-hub/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// WelcomeBonusPoints 為新帳號的固定入會點數
	WelcomeBonusPoints = 2000
	// ReferralBonusPoints 為推薦人獲得的固定點數
	ReferralBonusPoints = 2500

	referralCodeBytes    = 8
	referralCodeAttempts = 5
)

// randRead 可於測試時覆寫
var randRead = rand.Read

// Profile 為註冊時的個人資料欄位
type Profile struct {
	FirstName string
	LastName  string
}

// generateReferralCode 產生 8 bytes 隨機值的 16 位 hex 推薦碼，
// 碰撞時重試。
func generateReferralCode(ctx context.Context, q database.Querier) (string, error) {
	for i := 0; i < referralCodeAttempts; i++ {
		buf := make([]byte, referralCodeBytes)
		if _, err := randRead(buf); err != nil {
			return "", fmt.Errorf("generateReferralCode: %w", err)
		}
		code := hex.EncodeToString(buf)

		exists, err := store.ReferralCodeExists(ctx, q, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("generateReferralCode: exhausted %d attempts", referralCodeAttempts)
}

// Register 建立新帳號：重複 Email 檢查、推薦碼驗證、產生新推薦碼、
// 入會點數與 WELCOME_BONUS 帳本紀錄，以及推薦人的 REFERRAL_BONUS。
// 全部在同一交易內，任一步失敗則整筆註冊不留痕跡。
// 有推薦人時一併回傳，供呼叫端在 commit 之後通知。
func Register(ctx context.Context, db database.DB, email, passwordHash string, profile Profile, referralCode string) (*model.User, *model.User, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("Register: %w", err)
	}
	defer tx.Rollback(ctx)

	exists, err := store.EmailExists(ctx, tx, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, fmt.Errorf("%s: %w", email, ErrDuplicateEmail)
	}

	var referrer *model.User
	if referralCode != "" {
		referrer, err = store.GetUserByReferralCode(ctx, tx, referralCode)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil, fmt.Errorf("%s: %w", referralCode, ErrInvalidReferralCode)
			}
			return nil, nil, err
		}
	}

	code, err := generateReferralCode(ctx, tx)
	if err != nil {
		return nil, nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		Enabled:      true,
		Points:       WelcomeBonusPoints,
		ReferralCode: code,
	}
	if referrer != nil {
		user.ReferredBy = &referrer.ReferralCode
	}

	if _, err := store.CreateUser(ctx, tx, user); err != nil {
		// unique violation 作為並發註冊的最後防線；
		// referral_code 撞碼走一般錯誤，不可誤報成重複 Email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "users_email_key" {
			return nil, nil, fmt.Errorf("%s: %w", email, ErrDuplicateEmail)
		}
		return nil, nil, err
	}

	if _, err := store.CreateTransaction(ctx, tx, &model.Transaction{
		UserID:      user.ID,
		Points:      WelcomeBonusPoints,
		Type:        model.TransactionWelcomeBonus,
		Description: "Welcome bonus",
	}); err != nil {
		return nil, nil, err
	}

	if referrer != nil {
		desc := fmt.Sprintf("Referral bonus for inviting %s", email)
		if _, _, err := ApplyDeltaIn(ctx, tx, referrer.ID, ReferralBonusPoints, model.TransactionReferralBonus, desc, nil); err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("Register: commit: %w", err)
	}
	return user, referrer, nil
}
