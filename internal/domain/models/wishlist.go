package models

import "time"

// WishlistItem представляет позицию списка желаний пользователя
type WishlistItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	ProductID int64     `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
