package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/opticscart/lens-shop/internal/service"
)

// CheckoutCustomer — данные покупателя из запроса, все поля опциональны.
type CheckoutCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CheckoutItem — позиция заказа. Цена и количество принимаются и числом,
// и строкой; непарсибельные значения превращаются в ноль.
type CheckoutItem struct {
	ID       FlexInt64 `json:"id"`
	Name     string    `json:"name"`
	Price    FlexFloat `json:"price"`
	Quantity FlexInt   `json:"quantity"`
}

// CheckoutRequest представляет входной JSON для оформления заказа.
type CheckoutRequest struct {
	Customer *CheckoutCustomer `json:"customer"`
	Items    []CheckoutItem    `json:"items"`
}

// CheckoutResponse представляет ответ при успешном оформлении.
type CheckoutResponse struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"orderId"`
}

// CheckoutHandler обрабатывает запрос POST /api/checkout.
// Ключ идемпотентности (заголовок Idempotency-Key) опционален: повтор запроса
// с тем же ключом вернёт id первого созданного заказа.
func CheckoutHandler(log *slog.Logger, checkoutService service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutHandler"
		logger := log.With(slog.String("op", op))

		var req CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Invalid checkout payload")
			return
		}

		// Пустая корзина и отсутствующий блок customer отклоняются до каких-либо записей
		if req.Customer == nil || len(req.Items) == 0 {
			logger.Warn("invalid checkout payload: missing customer or items")
			respondError(w, http.StatusBadRequest, "Invalid checkout payload")
			return
		}

		order := service.CheckoutOrder{
			Customer: service.Customer{
				Name:    req.Customer.Name,
				Email:   req.Customer.Email,
				Phone:   req.Customer.Phone,
				Address: req.Customer.Address,
			},
			IdempotencyKey: r.Header.Get("Idempotency-Key"),
		}
		for _, it := range req.Items {
			order.Items = append(order.Items, service.CheckoutLine{
				ProductID: int64(it.ID),
				Name:      it.Name,
				Price:     float64(it.Price),
				Quantity:  int(it.Quantity),
			})
		}

		orderID, err := checkoutService.Checkout(r.Context(), order)
		if err != nil {
			if errors.Is(err, service.ErrEmptyOrder) {
				respondError(w, http.StatusBadRequest, "Invalid checkout payload")
				return
			}
			// Детали ошибки остаются в логе, клиенту уходит общий ответ
			logger.Error("checkout failed", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Checkout failed")
			return
		}

		respondJSON(w, http.StatusOK, CheckoutResponse{Success: true, OrderID: orderID})
	}
}
