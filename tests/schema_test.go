package main

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

// Проверки схемы, требуют БД с применёнными миграциями (как и остальной пакет).

func openTestDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("postgres://postgres:%s@localhost:5432/lens_shop?sslmode=disable",
			os.Getenv("DB_PASSWORD"))
	}
	db, err := sql.Open("postgres", dsn)
	assert.NoError(t, err, "opening test database should not error")
	assert.NoError(t, db.Ping(), "test database should be reachable")
	return db
}

func insertOrderWithItems(t *testing.T, db *sql.DB, items int) int64 {
	var orderID int64
	err := db.QueryRow(
		`INSERT INTO orders (customer_name, total_amount, created_at) VALUES ($1, $2, NOW()) RETURNING id`,
		"Cascade Check", 10.00,
	).Scan(&orderID)
	assert.NoError(t, err)

	for i := 0; i < items; i++ {
		_, err := db.Exec(
			`INSERT INTO order_items (order_id, name, price, quantity, subtotal) VALUES ($1, $2, $3, $4, $5)`,
			orderID, fmt.Sprintf("item-%d", i), 5.00, 1, 5.00,
		)
		assert.NoError(t, err)
	}
	return orderID
}

func countItems(t *testing.T, db *sql.DB, orderID int64) int {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM order_items WHERE order_id = $1`, orderID).Scan(&n)
	assert.NoError(t, err)
	return n
}

// сценарий каскадного удаления: удаление заказа удаляет его позиции и только их
func TestOrderDeleteCascadesToItems(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()

	deleted := insertOrderWithItems(t, db, 2)
	kept := insertOrderWithItems(t, db, 1)

	assert.Equal(t, 2, countItems(t, db, deleted))
	assert.Equal(t, 1, countItems(t, db, kept))

	_, err := db.Exec(`DELETE FROM orders WHERE id = $1`, deleted)
	assert.NoError(t, err)

	assert.Equal(t, 0, countItems(t, db, deleted), "items of the deleted order should be removed")
	assert.Equal(t, 1, countItems(t, db, kept), "items of other orders should be untouched")

	// Чистим оставшийся заказ, позиции уйдут каскадом.
	_, err = db.Exec(`DELETE FROM orders WHERE id = $1`, kept)
	assert.NoError(t, err)
}
