package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/opticscart/lens-shop/internal/domain/models"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

// WishlistStorage описывает методы для работы со списком желаний.
type WishlistStorage interface {
	// AddItem добавляет товар в список желаний. Если товар уже добавлен,
	// возвращает id существующей записи и признак alreadyExists.
	AddItem(ctx context.Context, userID, productID int64) (int64, bool, error)
	GetItemsByUserID(ctx context.Context, userID int64) ([]*models.WishlistItem, error)
	FindItem(ctx context.Context, userID, productID int64) (*models.WishlistItem, error)
	DeleteItem(ctx context.Context, wishlistID, userID int64) error
	DeleteByProductID(ctx context.Context, userID, productID int64) error
}

// wishlistRepository — конкретная реализация WishlistStorage.
type wishlistRepository struct {
	db *sql.DB
}

// NewWishlistRepository создаёт новый репозиторий списка желаний.
func NewWishlistRepository(db *sql.DB) WishlistStorage {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) AddItem(ctx context.Context, userID, productID int64) (int64, bool, error) {
	query := `INSERT INTO wishlist (user_id, product_id)
	          VALUES ($1, $2)
	          ON CONFLICT (user_id, product_id) DO NOTHING
	          RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	// Конфликт: запись уже существует, возвращаем её id
	existing, err := r.FindItem(ctx, userID, productID)
	if err != nil {
		return 0, false, err
	}
	return existing.ID, true, nil
}

func (r *wishlistRepository) GetItemsByUserID(ctx context.Context, userID int64) ([]*models.WishlistItem, error) {
	query := `SELECT id, user_id, product_id, created_at
	          FROM wishlist
	          WHERE user_id = $1
	          ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.WishlistItem
	for rows.Next() {
		item := &models.WishlistItem{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *wishlistRepository) FindItem(ctx context.Context, userID, productID int64) (*models.WishlistItem, error) {
	item := &models.WishlistItem{}
	row := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, product_id, created_at FROM wishlist WHERE user_id = $1 AND product_id = $2",
		userID, productID,
	)
	if err := row.Scan(&item.ID, &item.UserID, &item.ProductID, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWishlistItemNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *wishlistRepository) DeleteItem(ctx context.Context, wishlistID, userID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM wishlist WHERE id = $1 AND user_id = $2", wishlistID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}

func (r *wishlistRepository) DeleteByProductID(ctx context.Context, userID, productID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM wishlist WHERE user_id = $1 AND product_id = $2", userID, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}
