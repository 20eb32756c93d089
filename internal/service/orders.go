package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opticscart/lens-shop/internal/domain/models"
	"github.com/opticscart/lens-shop/internal/storage"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderService определяет интерфейс для чтения заказов.
// Заказы создаются только через CheckoutService и после этого не изменяются.
type OrderService interface {
	ListOrders(ctx context.Context) ([]*models.Order, error)
	GetOrderDetail(ctx context.Context, orderID int64) (*OrderDetail, error)
}

// OrderDetail — заказ вместе с его позициями.
type OrderDetail struct {
	Order *models.Order       `json:"order"`
	Items []*models.OrderItem `json:"items"`
}

type orderService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
}

func NewOrderService(log *slog.Logger, orderRepo storage.OrderStorage) OrderService {
	return &orderService{
		log:       log,
		orderRepo: orderRepo,
	}
}

func (s *orderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	const op = "service.OrderService.ListOrders"

	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		s.log.Error("failed to list orders", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

func (s *orderService) GetOrderDetail(ctx context.Context, orderID int64) (*OrderDetail, error) {
	const op = "service.OrderService.GetOrderDetail"
	logger := s.log.With(slog.String("op", op), slog.Int64("orderID", orderID))

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, storage.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		logger.Error("failed to get order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.orderRepo.GetItemsByOrderID(ctx, orderID)
	if err != nil {
		logger.Error("failed to get order items", slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &OrderDetail{Order: order, Items: items}, nil
}
