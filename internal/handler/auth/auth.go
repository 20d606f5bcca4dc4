package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"loyalty-hub/internal/api"
	"loyalty-hub/internal/cache"
	"loyalty-hub/internal/database"
	"loyalty-hub/internal/middleware"
	"loyalty-hub/internal/notify"
	"loyalty-hub/internal/service"
	"loyalty-hub/internal/store"
	"loyalty-hub/internal/worker"

	"github.com/labstack/echo/v4"
)

const accessTokenTTL = 24 * time.Hour

var (
	hashPassword     = service.HashPassword
	registerUser     = service.Register
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	revokeToken      = service.RevokeToken
	getUserByEmail   = store.GetUserByEmail
)

// @Summary     Register a new account
// @Description 建立新帳號並發放迎新點數；填入他人推薦碼時，推薦人另得推薦點數
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       email         formData string true  "使用者 Email (lowercase)"
// @Param       password      formData string true  "使用者密碼 (至少 8 碼)"
// @Param       first_name    formData string true  "名"
// @Param       last_name     formData string true  "姓"
// @Param       referral_code formData string false "推薦人的推薦碼 (16 碼 hex)"
// @Success     201 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     409 {object} api.ErrorResponse "Email 已被註冊"
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB, wp worker.Pool, n notify.Notifier) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		user, referrer, err := registerUser(c.Request().Context(), db, req.Email, hash, service.Profile{
			FirstName: req.FirstName,
			LastName:  req.LastName,
		}, req.ReferralCode)
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "email already registered"})
		case errors.Is(err, service.ErrInvalidReferralCode):
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid referral code"})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		// 通知在交易提交後才派送，寄送失敗不影響註冊結果
		if wp != nil && n != nil {
			email, name := user.Email, user.FirstName
			wp.Submit(func() {
				_ = n.Email(context.Background(), email, "Welcome!",
					fmt.Sprintf("Hi %s, your account is ready and your welcome points have been credited.", name))
			})
			if referrer != nil {
				refEmail, refName := referrer.Email, referrer.FirstName
				wp.Submit(func() {
					_ = n.Email(context.Background(), refEmail, "Referral bonus credited",
						fmt.Sprintf("Hi %s, %d points were added to your balance for referring a new member.", refName, service.ReferralBonusPoints))
				})
			}
		}

		return c.JSON(http.StatusCreated, api.NewUserResponse(user))
	}
}

// @Summary     Log in
// @Description 使用 Email 與 Password 驗證，回傳存取令牌
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       email    formData string true "使用者 Email"
// @Param       password formData string true "使用者密碼"
// @Success     200 {object} api.LoginResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByEmail(c.Request().Context(), db, strings.ToLower(req.Email))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}
		if err := authenticateUser(c.Request().Context(), *user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		token, err := issueAccessToken(*user, accessTokenTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: fmt.Sprintf("failed to issue token: %v", err)})
		}

		return c.JSON(http.StatusOK, api.LoginResponse{AccessToken: token})
	}
}

// @Summary     Log out
// @Description 撤銷當前存取令牌（加入 Redis 撤銷名單直到其原本到期）
// @Tags        auth
// @Produce     json
// @Success     204 "No Content"
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/logout [post]
func LogoutHandler(rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !ok || claims.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		if err := revokeToken(c.Request().Context(), rdb, claims); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
