package models

import "time"

// ContactMessage представляет сообщение из формы обратной связи
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Subject   string
	Message   string
	CreatedAt time.Time
}
