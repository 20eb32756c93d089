package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/opticscart/lens-shop/internal/domain/models"
	"github.com/opticscart/lens-shop/internal/storage"
)

var productColumns = []string{
	"id", "name", "brand", "price", "type", "power_range", "color", "frame_material",
	"coating_type", "collection", "gender_category", "product_category", "description",
	"stock", "image_url", "created_at", "updated_at",
}

func addProductRow(rows *sqlmock.Rows, id int64, name string, price float64, stock int) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, name, "Acme", price, "daily", nil, nil, nil,
		nil, nil, nil, nil, nil,
		stock, nil, now, now,
	)
}

func TestGetProductByID_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)
	ctx := context.Background()

	rows := addProductRow(sqlmock.NewRows(productColumns), 1, "Daily Comfort", 10.50, 20)
	mock.ExpectQuery("SELECT (.+) FROM lens_products WHERE id = \\$1").
		WithArgs(int64(1)).WillReturnRows(rows)

	product, err := repo.GetProductByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, "Daily Comfort", product.Name)
	assert.InDelta(t, 10.50, product.Price, 0.001)
	assert.Equal(t, 20, product.Stock)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)

	rows := sqlmock.NewRows(productColumns)
	mock.ExpectQuery("SELECT (.+) FROM lens_products WHERE id = \\$1").
		WithArgs(int64(99)).WillReturnRows(rows)

	product, err := repo.GetProductByID(context.Background(), 99)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrProductNotFound))
	assert.Nil(t, product)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockProductByIDTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "stock"}).
		AddRow(1, "Daily Comfort", 10.50, 20)
	query := regexp.QuoteMeta("SELECT id, name, price, stock FROM lens_products WHERE id = $1 FOR UPDATE")
	mock.ExpectQuery(query).WithArgs(int64(1)).WillReturnRows(rows)

	product, err := repo.LockProductByIDTx(ctx, tx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, 20, product.Stock)

	mock.ExpectCommit()
	assert.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLockProductByIDTx_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "name", "price", "stock"})
	query := regexp.QuoteMeta("SELECT id, name, price, stock FROM lens_products WHERE id = $1 FOR UPDATE")
	mock.ExpectQuery(query).WithArgs(int64(99)).WillReturnRows(rows)

	product, err := repo.LockProductByIDTx(context.Background(), tx, 99)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrProductNotFound))
	assert.Nil(t, product)

	mock.ExpectRollback()
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStockTx_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	// Списание выполняется одной командой, GREATEST не даёт остатку уйти в минус.
	query := regexp.QuoteMeta("UPDATE lens_products SET stock = GREATEST(stock - $1, 0), updated_at = NOW() WHERE id = $2")
	mock.ExpectExec(query).WithArgs(3, int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.DecrementStockTx(context.Background(), tx, 1, 3)
	assert.NoError(t, err)

	mock.ExpectCommit()
	assert.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementStockTx_NoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewProductRepository(db)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	query := regexp.QuoteMeta("UPDATE lens_products SET stock = GREATEST(stock - $1, 0), updated_at = NOW() WHERE id = $2")
	mock.ExpectExec(query).WithArgs(3, int64(99)).WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DecrementStockTx(context.Background(), tx, 99, 3)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrProductNotFound))

	mock.ExpectRollback()
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrder_ReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	name := "Jane Doe"
	email := "jane@example.com"
	mock.ExpectQuery("INSERT INTO orders (.+) RETURNING id").
		WithArgs(&name, &email, nil, nil, 36.50).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	orderID, err := repo.CreateOrder(context.Background(), tx, &models.Order{
		CustomerName: &name,
		Email:        &email,
		TotalAmount:  36.50,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(7), orderID)

	mock.ExpectCommit()
	assert.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderItem_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	productID := int64(3)
	itemName := "Daily Comfort"
	query := regexp.QuoteMeta(`INSERT INTO order_items (order_id, product_id, name, price, quantity, subtotal)`)
	mock.ExpectExec(query).
		WithArgs(int64(7), &productID, &itemName, 10.50, 2, 21.00).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.CreateOrderItem(context.Background(), tx, &models.OrderItem{
		OrderID:   7,
		ProductID: &productID,
		Name:      &itemName,
		Price:     10.50,
		Quantity:  2,
		Subtotal:  21.00,
	})
	assert.NoError(t, err)

	mock.ExpectCommit()
	assert.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderRepository(db)

	rows := sqlmock.NewRows([]string{"id", "customer_name", "email", "phone", "address", "total_amount", "created_at"})
	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = \\$1").
		WithArgs(int64(99)).WillReturnRows(rows)

	order, err := repo.GetOrderByID(context.Background(), 99)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrOrderNotFound))
	assert.Nil(t, order)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_EmailTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewUserRepository(db)

	query := regexp.QuoteMeta("INSERT INTO users (first_name, last_name, phone, email, pass_hash) VALUES ($1, $2, $3, $4, $5) RETURNING id")
	mock.ExpectQuery(query).
		WithArgs("Jane", "Doe", "123456", "jane@example.com", []byte("hashed")).
		WillReturnError(&pq.Error{Code: "23505"})

	user, err := repo.CreateUser(context.Background(), &models.User{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "123456",
		Email:     "jane@example.com",
		PassHash:  []byte("hashed"),
	})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrEmailTaken))
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCartItem_ReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewCartRepository(db)

	mock.ExpectQuery("INSERT INTO cart (.+) RETURNING id").
		WithArgs(int64(1), int64(2), 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	id, err := repo.UpsertItem(context.Background(), 1, 2, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWishlistAddItem_AlreadyExists(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewWishlistRepository(db)

	// Конфликт по уникальному ключу: INSERT ... DO NOTHING не возвращает строк,
	// после чего репозиторий ищет существующую запись.
	mock.ExpectQuery("INSERT INTO wishlist (.+) RETURNING id").
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rows := sqlmock.NewRows([]string{"id", "user_id", "product_id", "created_at"}).
		AddRow(9, 1, 2, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM wishlist WHERE user_id = \\$1 AND product_id = \\$2").
		WithArgs(int64(1), int64(2)).WillReturnRows(rows)

	id, alreadyExists, err := repo.AddItem(context.Background(), 1, 2)
	assert.NoError(t, err)
	assert.True(t, alreadyExists)
	assert.Equal(t, int64(9), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}
