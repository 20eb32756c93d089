package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opticscart/lens-shop/internal/domain/models"
	"github.com/opticscart/lens-shop/internal/storage"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartService определяет интерфейс для работы с корзиной пользователя.
type CartService interface {
	AddItem(ctx context.Context, userID, productID int64, quantity int) (int64, error)
	// GetCart возвращает позиции корзины и суммарное количество товаров.
	GetCart(ctx context.Context, userID int64) ([]*models.CartItem, int, error)
	// SetQuantity обновляет количество позиции; ноль и меньше удаляет её.
	SetQuantity(ctx context.Context, userID, cartID int64, quantity int) (removed bool, err error)
	RemoveItem(ctx context.Context, userID, cartID int64) error
	Clear(ctx context.Context, userID int64) error
}

type cartService struct {
	log      *slog.Logger
	cartRepo storage.CartStorage
}

func NewCartService(log *slog.Logger, cartRepo storage.CartStorage) CartService {
	return &cartService{
		log:      log,
		cartRepo: cartRepo,
	}
}

func (s *cartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (int64, error) {
	const op = "service.CartService.AddItem"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("productID", productID))

	if quantity <= 0 {
		quantity = 1
	}

	cartID, err := s.cartRepo.UpsertItem(ctx, userID, productID, quantity)
	if err != nil {
		logger.Error("failed to add item to cart", slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("item added to cart", slog.Int64("cartID", cartID))
	return cartID, nil
}

func (s *cartService) GetCart(ctx context.Context, userID int64) ([]*models.CartItem, int, error) {
	const op = "service.CartService.GetCart"

	items, err := s.cartRepo.GetItemsByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get cart", slog.String("op", op), slog.Int64("userID", userID), slog.Any("error", err))
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	totalItems := 0
	for _, item := range items {
		totalItems += item.Quantity
	}
	return items, totalItems, nil
}

func (s *cartService) SetQuantity(ctx context.Context, userID, cartID int64, quantity int) (bool, error) {
	const op = "service.CartService.SetQuantity"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("cartID", cartID))

	// Нулевое количество означает удаление позиции, как и в исходном API
	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(ctx, cartID, userID); err != nil {
			if errors.Is(err, storage.ErrCartItemNotFound) {
				return false, ErrCartItemNotFound
			}
			logger.Error("failed to remove cart item", slog.Any("error", err))
			return false, fmt.Errorf("%s: %w", op, err)
		}
		return true, nil
	}

	if err := s.cartRepo.UpdateQuantity(ctx, cartID, userID, quantity); err != nil {
		if errors.Is(err, storage.ErrCartItemNotFound) {
			return false, ErrCartItemNotFound
		}
		logger.Error("failed to update cart item", slog.Any("error", err))
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return false, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, cartID int64) error {
	const op = "service.CartService.RemoveItem"

	if err := s.cartRepo.DeleteItem(ctx, cartID, userID); err != nil {
		if errors.Is(err, storage.ErrCartItemNotFound) {
			return ErrCartItemNotFound
		}
		s.log.Error("failed to remove cart item", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context, userID int64) error {
	const op = "service.CartService.Clear"

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		s.log.Error("failed to clear cart", slog.String("op", op), slog.Int64("userID", userID), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
