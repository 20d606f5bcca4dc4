package model

import "time"

// Product 將多個活動分組，活動各自帶固定點數，
// 供管理員調整點數時預填金額使用。
type Product struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Activity struct {
	ID        int    `db:"id" json:"id"`
	ProductID int    `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Points    int    `db:"points" json:"points"`
}

// Assignment 連結使用者與產品
type Assignment struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	ProductID int       `db:"product_id" json:"product_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
