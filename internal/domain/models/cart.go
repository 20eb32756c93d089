package models

import "time"

// CartItem представляет позицию корзины пользователя.
// Пара (UserID, ProductID) уникальна: повторное добавление увеличивает количество.
type CartItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}
