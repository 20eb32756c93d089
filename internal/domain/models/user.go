package models

import "time"

// User представляет зарегистрированного покупателя
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Phone     string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}
