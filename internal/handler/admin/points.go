package admin

import (
	"errors"
	"net/http"
	"strconv"

	"loyalty-hub/internal/api"
	"loyalty-hub/internal/database"
	"loyalty-hub/internal/middleware"
	"loyalty-hub/internal/service"

	"github.com/labstack/echo/v4"
)

var adjustPoints = service.AdjustPoints

// @Summary     Adjust user points
// @Description 管理員增減指定使用者的點數；帳本與稽核紀錄同交易寫入，扣到負數會被拒絕
// @Tags        admin
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       user_id     path     int    true "目標使用者 ID"
// @Param       delta       formData int    true "點數增減量（可為負）"
// @Param       description formData string true "調整原因"
// @Success     201 {object} api.TransactionResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse "使用者不存在"
// @Failure     409 {object} api.ErrorResponse "調整後餘額為負"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{user_id}/points [post]
func AdjustPointsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !ok || claims.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		targetID, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.AdjustPointsRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		tx, err := adjustPoints(c.Request().Context(), db, claims.UserID, targetID, req.Delta, req.Description)
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		case errors.Is(err, service.ErrInsufficientBalance):
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "adjustment would make balance negative"})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, api.NewTransactionResponse(tx))
	}
}
