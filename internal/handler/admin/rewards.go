package admin

import (
	"fmt"
	"net/http"
	"strconv"

	"loyalty-hub/internal/api"
	"loyalty-hub/internal/database"
	"loyalty-hub/internal/model"
	"loyalty-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	createReward = store.CreateReward
	updateReward = store.UpdateReward
	deleteReward = store.DeleteReward
)

// @Summary     Create a reward
// @Description 新增可供兌換的獎勵，並寫入稽核紀錄
// @Tags        admin
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       name        formData string  true  "獎勵名稱"
// @Param       description formData string  false "獎勵描述"
// @Param       points_cost formData int     true  "兌換所需點數"
// @Param       image_url   formData string  false "圖片網址"
// @Param       available   formData boolean false "是否上架"
// @Success     201 {object} api.RewardResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/rewards [post]
func CreateRewardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		var req api.RewardRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		var created *model.Reward
		entry := model.AdminLog{
			AdminID: claims.UserID,
			Action:  model.ActionRewardCreated,
			Details: fmt.Sprintf("created reward %q (%d points)", req.Name, req.PointsCost),
		}
		err := withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			var err error
			created, err = createReward(c.Request().Context(), q, &model.Reward{
				Name:        req.Name,
				Description: req.Description,
				PointsCost:  req.PointsCost,
				ImageURL:    req.ImageURL,
				Available:   req.Available,
			})
			return err
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, api.NewRewardResponse(created))
	}
}

// @Summary     Update a reward
// @Description 更新獎勵內容或上下架狀態，並寫入稽核紀錄
// @Tags        admin
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       reward_id   path     int     true  "獎勵 ID"
// @Param       name        formData string  true  "獎勵名稱"
// @Param       description formData string  false "獎勵描述"
// @Param       points_cost formData int     true  "兌換所需點數"
// @Param       image_url   formData string  false "圖片網址"
// @Param       available   formData boolean false "是否上架"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/rewards/{reward_id} [put]
func UpdateRewardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id, err := strconv.Atoi(c.Param("reward_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid reward ID"})
		}

		var req api.RewardRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		entry := model.AdminLog{
			AdminID: claims.UserID,
			Action:  model.ActionRewardUpdated,
			Details: fmt.Sprintf("updated reward %d", id),
		}
		err = withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			return updateReward(c.Request().Context(), q, &model.Reward{
				ID:          id,
				Name:        req.Name,
				Description: req.Description,
				PointsCost:  req.PointsCost,
				ImageURL:    req.ImageURL,
				Available:   req.Available,
			})
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Delete a reward
// @Description 刪除獎勵，並寫入稽核紀錄
// @Tags        admin
// @Param       reward_id path int true "獎勵 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/rewards/{reward_id} [delete]
func DeleteRewardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id, err := strconv.Atoi(c.Param("reward_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid reward ID"})
		}

		entry := model.AdminLog{
			AdminID: claims.UserID,
			Action:  model.ActionRewardDeleted,
			Details: fmt.Sprintf("deleted reward %d", id),
		}
		err = withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			return deleteReward(c.Request().Context(), q, id)
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
