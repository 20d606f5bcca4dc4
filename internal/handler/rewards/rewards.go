package rewards

import (
	"errors"
	"net/http"
	"strconv"

	"loyalty-hub/internal/api"
	"loyalty-hub/internal/database"
	"loyalty-hub/internal/middleware"
	"loyalty-hub/internal/service"
	"loyalty-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listRewards  = store.ListRewards
	redeemReward = service.Redeem
)

// @Summary     List rewards
// @Description 列出可兌換的獎勵；管理員可帶 all=true 列出含下架項目
// @Tags        rewards
// @Produce     json
// @Param       all query boolean false "是否包含下架獎勵（僅管理員）"
// @Success     200 {array}  api.RewardResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /rewards [get]
func ListRewardsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !ok || claims.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		// 一般使用者永遠只看得到上架中的獎勵
		availableOnly := true
		if (claims.IsAdmin || claims.IsSuperAdmin) && c.QueryParam("all") == "true" {
			availableOnly = false
		}

		rs, err := listRewards(c.Request().Context(), db, availableOnly)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, api.NewRewardResponses(rs))
	}
}

// @Summary     Redeem a reward
// @Description 以點數兌換獎勵；餘額不足或獎勵下架時拒絕，帳本與餘額同交易更新
// @Tags        rewards
// @Produce     json
// @Param       reward_id path int true "獎勵 ID"
// @Success     201 {object} api.TransactionResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse "獎勵不存在"
// @Failure     409 {object} api.ErrorResponse "餘額不足或獎勵不可兌換"
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /rewards/{reward_id}/redeem [post]
func RedeemRewardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
		if !ok || claims.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		rewardID, err := strconv.Atoi(c.Param("reward_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid reward ID"})
		}

		tx, err := redeemReward(c.Request().Context(), db, claims.UserID, rewardID)
		switch {
		case errors.Is(err, service.ErrNotFound):
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "reward not found"})
		case errors.Is(err, service.ErrRewardUnavailable):
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "reward is not available"})
		case errors.Is(err, service.ErrInsufficientBalance):
			return c.JSON(http.StatusConflict, api.ErrorResponse{Message: "insufficient points balance"})
		case err != nil:
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, api.NewTransactionResponse(tx))
	}
}
