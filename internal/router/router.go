package router

import (
	"github.com/labstack/echo/v4"

	"loyalty-hub/internal/cache"
	"loyalty-hub/internal/database"
	"loyalty-hub/internal/handler"
	"loyalty-hub/internal/handler/admin"
	"loyalty-hub/internal/handler/auth"
	"loyalty-hub/internal/handler/rewards"
	"loyalty-hub/internal/handler/users"
	"loyalty-hub/internal/middleware"
	"loyalty-hub/internal/notify"
	"loyalty-hub/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool, n notify.Notifier) {
	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db), middleware.RequireAuth(rdb))

	// 註冊、登入與登出
	api.POST("/auth/register", auth.RegisterHandler(db, wp, n))
	api.POST("/auth/login", auth.LoginHandler(db))
	api.POST("/auth/logout", auth.LogoutHandler(rdb), middleware.RequireAuth(rdb))

	// 當前使用者個人資料與點數紀錄
	apiUsersMe := api.Group("/users/me", middleware.RequireAuth(rdb))
	apiUsersMe.GET("", users.GetMyUserHandler(db))
	apiUsersMe.GET("/transactions", users.ListMyTransactionsHandler(db))

	// 獎勵瀏覽與兌換
	apiRewards := api.Group("/rewards", middleware.RequireAuth(rdb))
	apiRewards.GET("", rewards.ListRewardsHandler(db))
	apiRewards.POST("/:reward_id/redeem", rewards.RedeemRewardHandler(db))

	// 管理員專區
	apiAdmin := api.Group("/admin", middleware.RequireAdmin(rdb))
	apiAdmin.GET("/users", admin.ListUsersHandler(db))
	apiAdmin.GET("/users/:user_id", admin.GetUserHandler(db))
	apiAdmin.PUT("/users/:user_id", admin.UpdateUserHandler(db))
	apiAdmin.DELETE("/users/:user_id", admin.DeleteUserHandler(db))
	apiAdmin.POST("/users/:user_id/points", admin.AdjustPointsHandler(db))
	apiAdmin.GET("/users/:user_id/balance-audit", admin.CheckBalanceHandler(db))
	apiAdmin.POST("/users/:user_id/balance-audit", admin.RepairBalanceHandler(db), middleware.RequireSuperAdmin(rdb))
	apiAdmin.GET("/users/:user_id/assignments", admin.ListAssignmentsHandler(db))

	apiAdmin.POST("/rewards", admin.CreateRewardHandler(db))
	apiAdmin.PUT("/rewards/:reward_id", admin.UpdateRewardHandler(db))
	apiAdmin.DELETE("/rewards/:reward_id", admin.DeleteRewardHandler(db))

	apiAdmin.GET("/products", admin.ListProductsHandler(db))
	apiAdmin.POST("/products", admin.CreateProductHandler(db))
	apiAdmin.GET("/products/:product_id", admin.GetProductHandler(db))
	apiAdmin.PUT("/products/:product_id", admin.UpdateProductHandler(db))
	apiAdmin.DELETE("/products/:product_id", admin.DeleteProductHandler(db))
	apiAdmin.POST("/products/:product_id/activities", admin.CreateActivityHandler(db))
	apiAdmin.DELETE("/activities/:activity_id", admin.DeleteActivityHandler(db))

	apiAdmin.POST("/assignments", admin.CreateAssignmentHandler(db))
	apiAdmin.DELETE("/assignments/:assignment_id", admin.DeleteAssignmentHandler(db))

	apiAdmin.GET("/logs", admin.ListAdminLogsHandler(db))
}
