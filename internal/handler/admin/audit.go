package admin

import (
	"errors"
	"net/http"
	"strconv"

	"loyalty-hub/internal/api"
	"loyalty-hub/internal/database"
	"loyalty-hub/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	checkBalance  = service.CheckBalance
	repairBalance = service.RepairBalance
)

// @Summary     Audit a user's balance
// @Description 比對使用者快取餘額與帳本總和，回報是否一致
// @Tags        admin
// @Produce     json
// @Param       user_id path int true "使用者 ID"
// @Success     200 {object} api.BalanceAuditResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{user_id}/balance-audit [get]
func CheckBalanceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		audit, err := checkBalance(c.Request().Context(), db, userID)
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, api.BalanceAuditResponse{
			UserID:     audit.UserID,
			Stored:     audit.Stored,
			LedgerSum:  audit.LedgerSum,
			Consistent: audit.Consistent(),
			Repaired:   audit.Repaired,
		})
	}
}

// @Summary     Repair a user's balance
// @Description 以帳本總和為準重寫快取餘額；僅在不一致時動作，並寫入稽核紀錄
// @Tags        admin
// @Produce     json
// @Param       user_id path int true "使用者 ID"
// @Success     200 {object} api.BalanceAuditResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{user_id}/balance-audit [post]
func RepairBalanceHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		userID, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		audit, err := repairBalance(c.Request().Context(), db, claims.UserID, userID)
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusOK, api.BalanceAuditResponse{
			UserID:     audit.UserID,
			Stored:     audit.Stored,
			LedgerSum:  audit.LedgerSum,
			Consistent: audit.Consistent(),
			Repaired:   audit.Repaired,
		})
	}
}
