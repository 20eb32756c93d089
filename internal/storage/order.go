package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/opticscart/lens-shop/internal/domain/models"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderStorage описывает методы для работы с заказами.
type OrderStorage interface {
	// CreateOrder вставляет новый заказ внутри транзакции и возвращает сгенерированный id.
	CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) (int64, error)
	// CreateOrderItem вставляет позицию заказа внутри той же транзакции.
	CreateOrderItem(ctx context.Context, tx *sql.Tx, item *models.OrderItem) error
	// GetOrders возвращает сводный список заказов (без позиций).
	GetOrders(ctx context.Context) ([]*models.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetItemsByOrderID(ctx context.Context, orderID int64) ([]*models.OrderItem, error)
}

// orderRepository — конкретная реализация OrderStorage.
type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(db *sql.DB) OrderStorage {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateOrder(ctx context.Context, tx *sql.Tx, order *models.Order) (int64, error) {
	query := `INSERT INTO orders (customer_name, email, phone, address, total_amount, created_at)
	          VALUES ($1, $2, $3, $4, $5, NOW())
	          RETURNING id`
	var id int64
	err := tx.QueryRowContext(ctx, query,
		order.CustomerName, order.Email, order.Phone, order.Address, order.TotalAmount,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create order: %w", err)
	}
	return id, nil
}

func (r *orderRepository) CreateOrderItem(ctx context.Context, tx *sql.Tx, item *models.OrderItem) error {
	query := `INSERT INTO order_items (order_id, product_id, name, price, quantity, subtotal)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := tx.ExecContext(ctx, query,
		item.OrderID, item.ProductID, item.Name, item.Price, item.Quantity, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

func (r *orderRepository) GetOrders(ctx context.Context) ([]*models.Order, error) {
	query := `SELECT id, customer_name, email, phone, address, total_amount, created_at
	          FROM orders
	          ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.CustomerName, &order.Email, &order.Phone,
			&order.Address, &order.TotalAmount, &order.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	query := `SELECT id, customer_name, email, phone, address, total_amount, created_at
	          FROM orders WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&order.ID, &order.CustomerName, &order.Email, &order.Phone,
		&order.Address, &order.TotalAmount, &order.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetItemsByOrderID(ctx context.Context, orderID int64) ([]*models.OrderItem, error) {
	query := `SELECT id, order_id, product_id, name, price, quantity, subtotal
	          FROM order_items WHERE order_id = $1`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		item := &models.OrderItem{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name,
			&item.Price, &item.Quantity, &item.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
