package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/opticscart/lens-shop/internal/domain/models"
)

// ContactStorage описывает методы для сохранения сообщений обратной связи.
type ContactStorage interface {
	SaveMessage(ctx context.Context, msg *models.ContactMessage) error
}

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) ContactStorage {
	return &contactRepository{db: db}
}

func (r *contactRepository) SaveMessage(ctx context.Context, msg *models.ContactMessage) error {
	query := `INSERT INTO contact_messages (name, email, subject, message, created_at)
	          VALUES ($1, $2, $3, $4, NOW())`
	_, err := r.db.ExecContext(ctx, query, msg.Name, msg.Email, msg.Subject, msg.Message)
	if err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}
