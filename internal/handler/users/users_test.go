package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loyalty-hub/internal/database"
	"loyalty-hub/internal/middleware"
	"loyalty-hub/internal/model"
	"loyalty-hub/internal/service"
	"loyalty-hub/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	getUserByID = store.GetUserByID
	listTransactionsByUser = store.ListTransactionsByUser
}

func newMeCtx(e *echo.Echo, claims *service.CustomClaims) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(middleware.ContextUserKey, claims)
	}
	return c, rec
}

func TestGetMyUserHandler(t *testing.T) {
	e := echo.New()

	t.Run("missing claims", func(t *testing.T) {
		ctx, rec := newMeCtx(e, nil)
		require.NoError(t, GetMyUserHandler(nil)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(ctx context.Context, q database.Querier, id int) (*model.User, error) {
			return nil, errors.New("boom")
		}
		ctx, rec := newMeCtx(e, &service.CustomClaims{UserID: 7})
		require.NoError(t, GetMyUserHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(ctx context.Context, q database.Querier, id int) (*model.User, error) {
			require.Equal(t, 7, id)
			return &model.User{ID: 7, Email: "a@b.c", Points: 1200, ReferralCode: "00112233deadbeef", CreatedAt: time.Now()}, nil
		}
		ctx, rec := newMeCtx(e, &service.CustomClaims{UserID: 7})
		require.NoError(t, GetMyUserHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"points":1200`)
		require.Contains(t, rec.Body.String(), "00112233deadbeef")
	})
}

func TestListMyTransactionsHandler(t *testing.T) {
	e := echo.New()

	t.Run("missing claims", func(t *testing.T) {
		ctx, rec := newMeCtx(e, nil)
		require.NoError(t, ListMyTransactionsHandler(nil)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		t.Cleanup(restore)
		listTransactionsByUser = func(ctx context.Context, q database.Querier, id int) ([]model.Transaction, error) {
			return nil, errors.New("boom")
		}
		ctx, rec := newMeCtx(e, &service.CustomClaims{UserID: 7})
		require.NoError(t, ListMyTransactionsHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		listTransactionsByUser = func(ctx context.Context, q database.Querier, id int) ([]model.Transaction, error) {
			require.Equal(t, 7, id)
			return []model.Transaction{
				{ID: 2, UserID: 7, Points: -800, Type: model.TransactionRedeemed},
				{ID: 1, UserID: 7, Points: 2000, Type: model.TransactionWelcomeBonus},
			}, nil
		}
		ctx, rec := newMeCtx(e, &service.CustomClaims{UserID: 7})
		require.NoError(t, ListMyTransactionsHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "REDEEMED")
		require.Contains(t, rec.Body.String(), "WELCOME_BONUS")
	})
}
