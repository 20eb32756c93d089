package models

import "time"

// Product представляет линзовый товар каталога
type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Brand           string    `json:"brand"`
	Price           float64   `json:"price"`
	Type            string    `json:"type"`
	PowerRange      *string   `json:"power_range,omitempty"`
	Color           *string   `json:"color,omitempty"`
	FrameMaterial   *string   `json:"frame_material,omitempty"`
	CoatingType     *string   `json:"coating_type,omitempty"`
	Collection      *string   `json:"collection,omitempty"`
	GenderCategory  *string   `json:"gender_category,omitempty"`
	ProductCategory *string   `json:"product_category,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Stock           int       `json:"stock"` // остаток на складе, никогда не уходит ниже нуля
	ImageURL        *string   `json:"image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
