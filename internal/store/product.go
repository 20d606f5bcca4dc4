package store

import (
	"context"
	"fmt"

	"loyalty-hub/internal/database"
	"loyalty-hub/internal/model"
)

func GetProductByID(ctx context.Context, q database.Querier, productID int) (*model.Product, error) {
	p := &model.Product{}
	if err := q.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM products WHERE id = $1`,
		productID,
	).Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("GetProductByID: %w", err)
	}
	return p, nil
}

func ListProducts(ctx context.Context, q database.Querier) ([]model.Product, error) {
	rows, err := q.Query(ctx,
		`SELECT id, name, description, created_at FROM products ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListProducts: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListProducts: %w", err)
	}
	return products, nil
}

func CreateProduct(ctx context.Context, q database.Querier, p *model.Product) (*model.Product, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO products (name, description) VALUES ($1, $2)
		 RETURNING id, created_at`,
		p.Name,
		p.Description,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateProduct: %w", err)
	}
	return p, nil
}

func UpdateProduct(ctx context.Context, q database.Querier, p *model.Product) error {
	if _, err := q.Exec(ctx,
		`UPDATE products SET name = $1, description = $2 WHERE id = $3`,
		p.Name,
		p.Description,
		p.ID,
	); err != nil {
		return fmt.Errorf("UpdateProduct: %w", err)
	}
	return nil
}

func DeleteProduct(ctx context.Context, q database.Querier, productID int) error {
	if _, err := q.Exec(ctx,
		`DELETE FROM products WHERE id = $1`,
		productID,
	); err != nil {
		return fmt.Errorf("DeleteProduct: %w", err)
	}
	return nil
}

func CreateActivity(ctx context.Context, q database.Querier, a *model.Activity) (*model.Activity, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO activities (product_id, name, points) VALUES ($1, $2, $3)
		 RETURNING id`,
		a.ProductID,
		a.Name,
		a.Points,
	)
	if err := row.Scan(&a.ID); err != nil {
		return nil, fmt.Errorf("CreateActivity: %w", err)
	}
	return a, nil
}

func ListActivitiesByProduct(ctx context.Context, q database.Querier, productID int) ([]model.Activity, error) {
	rows, err := q.Query(ctx,
		`SELECT id, product_id, name, points FROM activities
		 WHERE product_id = $1 ORDER BY id`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListActivitiesByProduct: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Name, &a.Points); err != nil {
			return nil, fmt.Errorf("ListActivitiesByProduct: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListActivitiesByProduct: %w", err)
	}
	return activities, nil
}

func DeleteActivity(ctx context.Context, q database.Querier, activityID int) error {
	if _, err := q.Exec(ctx,
		`DELETE FROM activities WHERE id = $1`,
		activityID,
	); err != nil {
		return fmt.Errorf("DeleteActivity: %w", err)
	}
	return nil
}

func CreateAssignment(ctx context.Context, q database.Querier, a *model.Assignment) (*model.Assignment, error) {
	row := q.QueryRow(ctx,
		`INSERT INTO assignments (user_id, product_id) VALUES ($1, $2)
		 RETURNING id, created_at`,
		a.UserID,
		a.ProductID,
	)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateAssignment: %w", err)
	}
	return a, nil
}

func ListAssignmentsByUser(ctx context.Context, q database.Querier, userID int) ([]model.Assignment, error) {
	rows, err := q.Query(ctx,
		`SELECT id, user_id, product_id, created_at FROM assignments
		 WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListAssignmentsByUser: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.UserID, &a.ProductID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListAssignmentsByUser: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAssignmentsByUser: %w", err)
	}
	return assignments, nil
}

func DeleteAssignment(ctx context.Context, q database.Querier, assignmentID int) error {
	if _, err := q.Exec(ctx,
		`DELETE FROM assignments WHERE id = $1`,
		assignmentID,
	); err != nil {
		return fmt.Errorf("DeleteAssignment: %w", err)
	}
	return nil
}
