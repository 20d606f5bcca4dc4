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
	listProducts            = store.ListProducts
	getProductByID          = store.GetProductByID
	createProduct           = store.CreateProduct
	updateProduct           = store.UpdateProduct
	deleteProduct           = store.DeleteProduct
	createActivity          = store.CreateActivity
	listActivitiesByProduct = store.ListActivitiesByProduct
	deleteActivity          = store.DeleteActivity
	createAssignment        = store.CreateAssignment
	listAssignmentsByUser   = store.ListAssignmentsByUser
	deleteAssignment        = store.DeleteAssignment
)

// @Summary     List products
// @Description 列出所有產品（活動群組）
// @Tags        admin
// @Produce     json
// @Success     200 {array}  api.ProductResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/products [get]
func ListProductsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ps, err := listProducts(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		out := make([]api.ProductResponse, 0, len(ps))
		for i := range ps {
			out = append(out, api.NewProductResponse(&ps[i], nil))
		}
		return c.JSON(http.StatusOK, out)
	}
}

// @Summary     Get a product with its activities
// @Description 查詢產品詳細資料，含其下所有活動
// @Tags        admin
// @Produce     json
// @Param       product_id path int true "產品 ID"
// @Success     200 {object} api.ProductResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/products/{product_id} [get]
func GetProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}
		p, err := getProductByID(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "product not found"})
		}
		acts, err := listActivitiesByProduct(c.Request().Context(), db, id)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, api.NewProductResponse(p, acts))
	}
}

// @Summary     Create a product
// @Description 新增產品並寫入稽核紀錄
// @Tags        admin
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       name        formData string true  "產品名稱"
// @Param       description formData string false "產品描述"
// @Success     201 {object} api.ProductResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/products [post]
func CreateProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		var req api.ProductRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		var created *model.Product
		entry := model.AdminLog{
			AdminID: claims.UserID,
			Action:  model.ActionProductCreated,
			Details: fmt.Sprintf("created product %q", req.Name),
		}
		err := withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			var err error
			created, err = createProduct(c.Request().Context(), q, &model.Product{
				Name:        req.Name,
				Description: req.Description,
			})
			return err
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, api.NewProductResponse(created, nil))
	}
}

// @Summary     Update a product
// @Description 更新產品名稱與描述，並寫入稽核紀錄
// @Tags        admin
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       product_id  path     int    true  "產品 ID"
// @Param       name        formData string true  "產品名稱"
// @Param       description formData string false "產品描述"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/products/{product_id} [put]
func UpdateProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}

		var req api.ProductRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		entry := model.AdminLog{
			AdminID: claims.UserID,
			Action:  model.ActionProductUpdated,
			Details: fmt.Sprintf("updated product %d", id),
		}
		err = withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			return updateProduct(c.Request().Context(), q, &model.Product{
				ID:          id,
				Name:        req.Name,
				Description: req.Description,
			})
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Delete a product
// @Description 刪除產品（其下活動及指派一併移除），並寫入稽核紀錄
// @Tags        admin
// @Param       product_id path int true "產品 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/products/{product_id} [delete]
func DeleteProductHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}

		entry := model.AdminLog{
			AdminID: claims.UserID,
			Action:  model.ActionProductDeleted,
			Details: fmt.Sprintf("deleted product %d", id),
		}
		err = withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			return deleteProduct(c.Request().Context(), q, id)
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Add an activity to a product
// @Description 在產品下新增固定點數的活動
// @Tags        admin
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       product_id path     int    true "產品 ID"
// @Param       name       formData string true "活動名稱"
// @Param       points     formData int    true "活動固定點數"
// @Success     201 {object} api.ActivityResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/products/{product_id}/activities [post]
func CreateActivityHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		productID, err := strconv.Atoi(c.Param("product_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid product ID"})
		}

		var req api.ActivityRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		var act *model.Activity
		entry := model.AdminLog{
			AdminID: claims.UserID,
			Action:  model.ActionProductUpdated,
			Details: fmt.Sprintf("added activity %q (%d points) to product %d", req.Name, req.Points, productID),
		}
		err = withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			var err error
			act, err = createActivity(c.Request().Context(), q, &model.Activity{
				ProductID: productID,
				Name:      req.Name,
				Points:    req.Points,
			})
			return err
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, api.ActivityResponse{
			ID:        act.ID,
			ProductID: act.ProductID,
			Name:      act.Name,
			Points:    act.Points,
		})
	}
}

// @Summary     Delete an activity
// @Description 刪除產品下的活動，並寫入稽核紀錄
// @Tags        admin
// @Param       activity_id path int true "活動 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/activities/{activity_id} [delete]
func DeleteActivityHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id, err := strconv.Atoi(c.Param("activity_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid activity ID"})
		}

		entry := model.AdminLog{
			AdminID: claims.UserID,
			Action:  model.ActionProductUpdated,
			Details: fmt.Sprintf("removed activity %d", id),
		}
		err = withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			return deleteActivity(c.Request().Context(), q, id)
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// @Summary     Assign a product to a user
// @Description 將產品指派給使用者，供調整點數時預填活動金額，並寫入稽核紀錄
// @Tags        admin
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       user_id    formData int true "使用者 ID"
// @Param       product_id formData int true "產品 ID"
// @Success     201 {object} api.AssignmentResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/assignments [post]
func CreateAssignmentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		var req api.AssignmentRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		var created *model.Assignment
		entry := model.AdminLog{
			AdminID:      claims.UserID,
			TargetUserID: &req.UserID,
			Action:       model.ActionAssignmentCreated,
			Details:      fmt.Sprintf("assigned product %d to user %d", req.ProductID, req.UserID),
		}
		err := withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			var err error
			created, err = createAssignment(c.Request().Context(), q, &model.Assignment{
				UserID:    req.UserID,
				ProductID: req.ProductID,
			})
			return err
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusCreated, api.AssignmentResponse{
			ID:        created.ID,
			UserID:    created.UserID,
			ProductID: created.ProductID,
			CreatedAt: created.CreatedAt,
		})
	}
}

// @Summary     List a user's assignments
// @Description 列出指派給某使用者的產品
// @Tags        admin
// @Produce     json
// @Param       user_id path int true "使用者 ID"
// @Success     200 {array}  api.AssignmentResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/users/{user_id}/assignments [get]
func ListAssignmentsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		as, err := listAssignmentsByUser(c.Request().Context(), db, userID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, api.NewAssignmentResponses(as))
	}
}

// @Summary     Remove an assignment
// @Description 移除使用者與產品的指派關係，並寫入稽核紀錄
// @Tags        admin
// @Param       assignment_id path int true "指派 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /admin/assignments/{assignment_id} [delete]
func DeleteAssignmentHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := currentClaims(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		id, err := strconv.Atoi(c.Param("assignment_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid assignment ID"})
		}

		entry := model.AdminLog{
			AdminID: claims.UserID,
			Action:  model.ActionAssignmentDeleted,
			Details: fmt.Sprintf("removed assignment %d", id),
		}
		err = withAdminLog(c.Request().Context(), db, entry, func(q database.Querier) error {
			return deleteAssignment(c.Request().Context(), q, id)
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
