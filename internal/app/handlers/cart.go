package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/opticscart/lens-shop/internal/domain/models"
	"github.com/opticscart/lens-shop/internal/jwt-new/jwtmiddleware"
	"github.com/opticscart/lens-shop/internal/service"
)

// AddToCartRequest представляет входной JSON для добавления товара в корзину.
type AddToCartRequest struct {
	ProductID FlexInt64 `json:"product_id"`
	Quantity  FlexInt   `json:"quantity"`
}

// CartResponse — содержимое корзины пользователя.
type CartResponse struct {
	Success    bool               `json:"success"`
	Cart       []*models.CartItem `json:"cart"`
	TotalItems int                `json:"totalItems"`
}

// AddToCartHandler обрабатывает запрос POST /api/cart/add
func AddToCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddToCartHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req AddToCartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Product ID required")
			return
		}
		if req.ProductID <= 0 {
			respondError(w, http.StatusBadRequest, "Product ID required")
			return
		}

		cartID, err := cartService.AddItem(r.Context(), userID, int64(req.ProductID), int(req.Quantity))
		if err != nil {
			logger.Error("failed to add to cart", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Error adding to cart")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Product added to cart",
			"cartId":  cartID,
		})
	}
}

// GetCartHandler обрабатывает запрос GET /api/cart
func GetCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetCartHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, totalItems, err := cartService.GetCart(r.Context(), userID)
		if err != nil {
			logger.Error("failed to get cart", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Error fetching cart")
			return
		}
		if items == nil {
			items = []*models.CartItem{}
		}
		respondJSON(w, http.StatusOK, CartResponse{Success: true, Cart: items, TotalItems: totalItems})
	}
}

// UpdateCartHandler обрабатывает запрос PUT /api/cart/{cartId}.
// Нулевое и отрицательное количество удаляет позицию.
func UpdateCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateCartHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		cartID, err := strconv.ParseInt(chi.URLParam(r, "cartId"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid cart item ID")
			return
		}

		var req struct {
			Quantity FlexInt `json:"quantity"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "invalid request")
			return
		}

		removed, err := cartService.SetQuantity(r.Context(), userID, cartID, int(req.Quantity))
		if err != nil {
			if errors.Is(err, service.ErrCartItemNotFound) {
				respondError(w, http.StatusNotFound, "Cart item not found")
				return
			}
			logger.Error("failed to update cart", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Error updating cart")
			return
		}

		message := "Cart updated"
		if removed {
			message = "Item removed from cart"
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": message})
	}
}

// RemoveCartItemHandler обрабатывает запрос DELETE /api/cart/{cartId}
func RemoveCartItemHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveCartItemHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		cartID, err := strconv.ParseInt(chi.URLParam(r, "cartId"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid cart item ID")
			return
		}

		if err := cartService.RemoveItem(r.Context(), userID, cartID); err != nil {
			if errors.Is(err, service.ErrCartItemNotFound) {
				respondError(w, http.StatusNotFound, "Cart item not found")
				return
			}
			logger.Error("failed to remove cart item", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Error removing from cart")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Item removed from cart"})
	}
}

// ClearCartHandler обрабатывает запрос DELETE /api/cart
func ClearCartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ClearCartHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if err := cartService.Clear(r.Context(), userID); err != nil {
			logger.Error("failed to clear cart", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Error clearing cart")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Cart cleared"})
	}
}
