package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/opticscart/lens-shop/internal/domain/models"
	"github.com/opticscart/lens-shop/internal/service"
)

// OrdersResponse — сводный список заказов.
type OrdersResponse struct {
	Success bool            `json:"success"`
	Orders  []*models.Order `json:"orders"`
}

// OrderDetailResponse — заказ вместе с позициями.
type OrderDetailResponse struct {
	Success bool                `json:"success"`
	Order   *models.Order       `json:"order"`
	Items   []*models.OrderItem `json:"items"`
}

// ListOrdersHandler обрабатывает запрос GET /api/orders
func ListOrdersHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListOrdersHandler"
		logger := log.With(slog.String("op", op))

		orders, err := orderService.ListOrders(r.Context())
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Failed to list orders")
			return
		}
		if orders == nil {
			orders = []*models.Order{}
		}
		respondJSON(w, http.StatusOK, OrdersResponse{Success: true, Orders: orders})
	}
}

// OrderDetailHandler обрабатывает запрос GET /api/orders/{id}
func OrderDetailHandler(log *slog.Logger, orderService service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.OrderDetailHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid order ID")
			return
		}

		detail, err := orderService.GetOrderDetail(r.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				respondError(w, http.StatusNotFound, "Order not found")
				return
			}
			logger.Error("failed to get order detail", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Failed to fetch order details")
			return
		}

		items := detail.Items
		if items == nil {
			items = []*models.OrderItem{}
		}
		respondJSON(w, http.StatusOK, OrderDetailResponse{Success: true, Order: detail.Order, Items: items})
	}
}
