package models

import "time"

// Order представляет заказ, созданный при оформлении корзины.
// После создания заказ не изменяется.
type Order struct {
	ID           int64     `json:"id"`
	CustomerName *string   `json:"customer_name"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address,omitempty"`
	TotalAmount  float64   `json:"total_amount"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderItem представляет одну позицию заказа.
// ProductID равен nil, если указанный товар не найден в каталоге на момент
// оформления — позиция всё равно сохраняется, но остаток не списывается.
type OrderItem struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID *int64  `json:"product_id"`
	Name      *string `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}
