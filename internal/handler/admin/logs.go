package admin

import (
	"net/http"

	"loyalty-hub/internal/api"
	"loyalty-hub/internal/database"
	"loyalty-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var listAdminLogs = store.ListAdminLogs

// @Summary     List admin audit logs
// @Description 列出管理操作稽核紀錄，由新到舊
// @Tags        admin
// @Produce     json
// @Success     200 {array}  api.AdminLogResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/logs [get]
func ListAdminLogsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		logs, err := listAdminLogs(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, api.NewAdminLogResponses(logs))
	}
}
