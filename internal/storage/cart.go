package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/opticscart/lens-shop/internal/domain/models"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartStorage описывает методы для работы с корзиной пользователя.
type CartStorage interface {
	// UpsertItem добавляет товар в корзину; если он уже там, увеличивает количество.
	UpsertItem(ctx context.Context, userID, productID int64, quantity int) (int64, error)
	GetItemsByUserID(ctx context.Context, userID int64) ([]*models.CartItem, error)
	UpdateQuantity(ctx context.Context, cartID, userID int64, quantity int) error
	DeleteItem(ctx context.Context, cartID, userID int64) error
	Clear(ctx context.Context, userID int64) error
}

// cartRepository — конкретная реализация CartStorage.
type cartRepository struct {
	db *sql.DB
}

// NewCartRepository создаёт новый репозиторий корзины.
func NewCartRepository(db *sql.DB) CartStorage {
	return &cartRepository{db: db}
}

func (r *cartRepository) UpsertItem(ctx context.Context, userID, productID int64, quantity int) (int64, error) {
	query := `INSERT INTO cart (user_id, product_id, quantity)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, product_id)
	          DO UPDATE SET quantity = cart.quantity + EXCLUDED.quantity, updated_at = NOW()
	          RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, userID, productID, quantity).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return id, nil
}

func (r *cartRepository) GetItemsByUserID(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	query := `SELECT id, user_id, product_id, quantity, created_at
	          FROM cart
	          WHERE user_id = $1
	          ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.CartItem
	for rows.Next() {
		item := &models.CartItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, cartID, userID int64, quantity int) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE cart SET quantity = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3",
		quantity, cartID, userID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, userID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM cart WHERE id = $1 AND user_id = $2", cartID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cart WHERE user_id = $1", userID)
	return err
}
