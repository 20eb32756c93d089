package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/opticscart/lens-shop/internal/domain/models"
	"github.com/opticscart/lens-shop/internal/storage"
)

// ContactService определяет интерфейс для формы обратной связи.
type ContactService interface {
	SubmitMessage(ctx context.Context, name, email, subject, message string) error
}

type contactService struct {
	log         *slog.Logger
	contactRepo storage.ContactStorage
}

func NewContactService(log *slog.Logger, contactRepo storage.ContactStorage) ContactService {
	return &contactService{
		log:         log,
		contactRepo: contactRepo,
	}
}

func (s *contactService) SubmitMessage(ctx context.Context, name, email, subject, message string) error {
	const op = "service.ContactService.SubmitMessage"
	logger := s.log.With(slog.String("op", op), slog.String("email", email))

	msg := &models.ContactMessage{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
	}
	if err := s.contactRepo.SaveMessage(ctx, msg); err != nil {
		logger.Error("failed to save contact message", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("contact message saved")
	return nil
}
