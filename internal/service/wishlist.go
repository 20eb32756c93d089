package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opticscart/lens-shop/internal/domain/models"
	"github.com/opticscart/lens-shop/internal/storage"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

// WishlistService определяет интерфейс для работы со списком желаний.
type WishlistService interface {
	// AddItem возвращает id записи и признак того, что товар уже был в списке.
	AddItem(ctx context.Context, userID, productID int64) (int64, bool, error)
	GetWishlist(ctx context.Context, userID int64) ([]*models.WishlistItem, error)
	// CheckItem возвращает id записи, если товар есть в списке желаний.
	CheckItem(ctx context.Context, userID, productID int64) (int64, bool, error)
	RemoveItem(ctx context.Context, userID, wishlistID int64) error
	RemoveByProduct(ctx context.Context, userID, productID int64) error
}

type wishlistService struct {
	log          *slog.Logger
	wishlistRepo storage.WishlistStorage
}

func NewWishlistService(log *slog.Logger, wishlistRepo storage.WishlistStorage) WishlistService {
	return &wishlistService{
		log:          log,
		wishlistRepo: wishlistRepo,
	}
}

func (s *wishlistService) AddItem(ctx context.Context, userID, productID int64) (int64, bool, error) {
	const op = "service.WishlistService.AddItem"
	logger := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.Int64("productID", productID))

	id, alreadyExists, err := s.wishlistRepo.AddItem(ctx, userID, productID)
	if err != nil {
		logger.Error("failed to add wishlist item", slog.Any("error", err))
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("wishlist item processed", slog.Int64("wishlistID", id), slog.Bool("alreadyExists", alreadyExists))
	return id, alreadyExists, nil
}

func (s *wishlistService) GetWishlist(ctx context.Context, userID int64) ([]*models.WishlistItem, error) {
	const op = "service.WishlistService.GetWishlist"

	items, err := s.wishlistRepo.GetItemsByUserID(ctx, userID)
	if err != nil {
		s.log.Error("failed to get wishlist", slog.String("op", op), slog.Int64("userID", userID), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s *wishlistService) CheckItem(ctx context.Context, userID, productID int64) (int64, bool, error) {
	const op = "service.WishlistService.CheckItem"

	item, err := s.wishlistRepo.FindItem(ctx, userID, productID)
	if err != nil {
		if errors.Is(err, storage.ErrWishlistItemNotFound) {
			return 0, false, nil
		}
		s.log.Error("failed to check wishlist", slog.String("op", op), slog.Any("error", err))
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return item.ID, true, nil
}

func (s *wishlistService) RemoveItem(ctx context.Context, userID, wishlistID int64) error {
	const op = "service.WishlistService.RemoveItem"

	if err := s.wishlistRepo.DeleteItem(ctx, wishlistID, userID); err != nil {
		if errors.Is(err, storage.ErrWishlistItemNotFound) {
			return ErrWishlistItemNotFound
		}
		s.log.Error("failed to remove wishlist item", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *wishlistService) RemoveByProduct(ctx context.Context, userID, productID int64) error {
	const op = "service.WishlistService.RemoveByProduct"

	if err := s.wishlistRepo.DeleteByProductID(ctx, userID, productID); err != nil {
		if errors.Is(err, storage.ErrWishlistItemNotFound) {
			return ErrWishlistItemNotFound
		}
		s.log.Error("failed to remove wishlist item by product", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
