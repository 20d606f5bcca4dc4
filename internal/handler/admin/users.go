package admin

import (
	"net/http"
	"strconv"

	"loyalty-hub/internal/api"
	"loyalty-hub/internal/database"
	"loyalty-hub/internal/middleware"
	"loyalty-hub/internal/model"
	"loyalty-hub/internal/service"
	"loyalty-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	withAdminLog = service.WithAdminLog
	listUsers    = store.ListUsers
	getUserByID  = store.GetUserByID
	updateUser   = store.UpdateUser
	deleteUser   = store.DeleteUser
)

func currentClaims(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(middleware.ContextUserKey).(*service.CustomClaims)
	return claims, ok && claims.UserID != 0
}

// @Summary     List users
// @Description 列出所有使用者帳號
// @Tags        admin
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		out := make([]api.UserResponse, 0, len(users))
		for i := range users {
			out = append(out, api.NewUserResponse(&users[i]))
		}
		return c.JSON(http.StatusOK, out)
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢使用者詳細資料
// @Tags        admin
// @Produce     json
// @Param       user_id path int true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{user_id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Update a user by ID
// @Description 更新使用者姓名、管理員權限與啟用狀態，並寫入稽核紀錄
// @Tags        admin
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       user_id    path     int     true "使用者 ID"
// @Param       first_name formData string  true "名"
// @Param       last_name  formData string  true "姓"
// @Param       is_admin   formData boolean false "是否為管理員"
// @Param       enabled    formData boolean false "帳號是否啟用"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{user_id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		entry := model.AdminLog{
			AdminID:      claims.UserID,
			TargetUserID: &id,
			Action:       model.ActionUserUpdated,
			Details:      "updated user profile and flags",
		}
		err = withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			return updateUser(c.Request().Context(), q, &model.User{
				ID:        id,
				FirstName: req.FirstName,
				LastName:  req.LastName,
				IsAdmin:   req.IsAdmin,
				Enabled:   req.Enabled,
			})
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Delete a user by ID
// @Description 刪除使用者帳號（其帳本紀錄一併移除），並寫入稽核紀錄
// @Tags        admin
// @Param       user_id path int true "使用者 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{user_id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		entry := model.AdminLog{
			AdminID:      claims.UserID,
			TargetUserID: &id,
			Action:       model.ActionUserDeleted,
			Details:      "deleted user account",
		}
		err = withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			return deleteUser(c.Request().Context(), q, id)
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
