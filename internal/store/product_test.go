package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"loyalty-hub/internal/database"
	"loyalty-hub/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeProductRow struct {
	scanErr  error
	product  *model.Product
	activity *model.Activity
}

func (r *fakeProductRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	switch len(dest) {
	case 4:
		p := r.product
		*dest[0].(*int) = p.ID
		*dest[1].(*string) = p.Name
		*dest[2].(*string) = p.Description
		*dest[3].(*time.Time) = p.CreatedAt
	case 2:
		// CreateProduct / CreateAssignment: id, created_at
		*dest[0].(*int) = r.product.ID
		*dest[1].(*time.Time) = r.product.CreatedAt
	case 1:
		// CreateActivity: id
		*dest[0].(*int) = r.activity.ID
	default:
		panic("fakeProductRow.Scan: unexpected number of dest")
	}
	return nil
}

type fakeActivityRows struct {
	data []model.Activity
	idx  int
	err  error
}

func (r *fakeActivityRows) Close()                                       {}
func (r *fakeActivityRows) Err() error                                   { return r.err }
func (r *fakeActivityRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeActivityRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeActivityRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeActivityRows) Scan(dest ...any) error {
	a := r.data[r.idx]
	r.idx++
	*dest[0].(*int) = a.ID
	*dest[1].(*int) = a.ProductID
	*dest[2].(*string) = a.Name
	*dest[3].(*int) = a.Points
	return nil
}
func (r *fakeActivityRows) Values() ([]any, error) { return nil, nil }
func (r *fakeActivityRows) RawValues() [][]byte    { return nil }
func (r *fakeActivityRows) Conn() *pgx.Conn        { return nil }

func TestProductStore(t *testing.T) {
	now := time.Now().UTC()
	sample := model.Product{ID: 2, Name: "Onboarding", CreatedAt: now}

	t.Run("GetProductByID ok", func(t *testing.T) {
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, _ ...any) pgx.Row {
				return &fakeProductRow{product: &sample}
			},
		}
		got, err := GetProductByID(context.Background(), p, 2)
		require.NoError(t, err)
		require.Equal(t, "Onboarding", got.Name)
	})

	t.Run("CreateProduct ok", func(t *testing.T) {
		prod := model.Product{Name: "Onboarding"}
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
				require.Contains(t, sql, "INSERT INTO products")
				return &fakeProductRow{product: &model.Product{ID: 2, CreatedAt: now}}
			},
		}
		created, err := CreateProduct(context.Background(), p, &prod)
		require.NoError(t, err)
		require.Equal(t, 2, created.ID)
	})

	t.Run("CreateActivity ok", func(t *testing.T) {
		a := model.Activity{ProductID: 2, Name: "Survey", Points: 100}
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "INSERT INTO activities")
				require.Equal(t, 2, args[0])
				return &fakeProductRow{activity: &model.Activity{ID: 4}}
			},
		}
		created, err := CreateActivity(context.Background(), p, &a)
		require.NoError(t, err)
		require.Equal(t, 4, created.ID)
	})

	t.Run("ListActivitiesByProduct ok", func(t *testing.T) {
		p := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				require.Contains(t, sql, "WHERE product_id = $1")
				return &fakeActivityRows{data: []model.Activity{
					{ID: 4, ProductID: 2, Name: "Survey", Points: 100},
				}}, nil
			},
		}
		acts, err := ListActivitiesByProduct(context.Background(), p, 2)
		require.NoError(t, err)
		require.Len(t, acts, 1)
		require.Equal(t, 100, acts[0].Points)
	})

	t.Run("CreateAssignment ok", func(t *testing.T) {
		a := model.Assignment{UserID: 7, ProductID: 2}
		p := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
				require.Contains(t, sql, "INSERT INTO assignments")
				return &fakeProductRow{product: &model.Product{ID: 9, CreatedAt: now}}
			},
		}
		created, err := CreateAssignment(context.Background(), p, &a)
		require.NoError(t, err)
		require.Equal(t, 9, created.ID)
	})

	t.Run("exec failures", func(t *testing.T) {
		p := &database.FakeDB{
			ExecFn: func(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("exec")
			},
		}
		require.Error(t, UpdateProduct(context.Background(), p, &sample))
		require.Error(t, DeleteProduct(context.Background(), p, 2))
		require.Error(t, DeleteActivity(context.Background(), p, 4))
		require.Error(t, DeleteAssignment(context.Background(), p, 9))
	})
}
