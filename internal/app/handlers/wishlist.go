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

// AddToWishlistRequest представляет входной JSON для добавления в список желаний.
type AddToWishlistRequest struct {
	ProductID FlexInt64 `json:"product_id"`
}

// WishlistResponse — содержимое списка желаний пользователя.
type WishlistResponse struct {
	Success    bool                   `json:"success"`
	Wishlist   []*models.WishlistItem `json:"wishlist"`
	TotalItems int                    `json:"totalItems"`
}

// AddToWishlistHandler обрабатывает запрос POST /api/wishlist/add
func AddToWishlistHandler(log *slog.Logger, wishlistService service.WishlistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddToWishlistHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req AddToWishlistRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Product ID required")
			return
		}
		if req.ProductID <= 0 {
			respondError(w, http.StatusBadRequest, "Product ID required")
			return
		}

		id, alreadyExists, err := wishlistService.AddItem(r.Context(), userID, int64(req.ProductID))
		if err != nil {
			logger.Error("failed to add to wishlist", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Error adding to wishlist")
			return
		}

		if alreadyExists {
			respondJSON(w, http.StatusOK, map[string]any{
				"success":       true,
				"message":       "Already in wishlist",
				"alreadyExists": true,
			})
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"success":    true,
			"message":    "Added to wishlist",
			"wishlistId": id,
		})
	}
}

// GetWishlistHandler обрабатывает запрос GET /api/wishlist
func GetWishlistHandler(log *slog.Logger, wishlistService service.WishlistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetWishlistHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := wishlistService.GetWishlist(r.Context(), userID)
		if err != nil {
			logger.Error("failed to get wishlist", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Error fetching wishlist")
			return
		}
		if items == nil {
			items = []*models.WishlistItem{}
		}
		respondJSON(w, http.StatusOK, WishlistResponse{Success: true, Wishlist: items, TotalItems: len(items)})
	}
}

// CheckWishlistHandler обрабатывает запрос GET /api/wishlist/check/{productId}
func CheckWishlistHandler(log *slog.Logger, wishlistService service.WishlistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckWishlistHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		id, inWishlist, err := wishlistService.CheckItem(r.Context(), userID, productID)
		if err != nil {
			logger.Error("failed to check wishlist", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Error checking wishlist")
			return
		}

		resp := map[string]any{"success": true, "inWishlist": inWishlist}
		if inWishlist {
			resp["wishlistId"] = id
		} else {
			resp["wishlistId"] = nil
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

// RemoveWishlistItemHandler обрабатывает запрос DELETE /api/wishlist/{wishlistId}
func RemoveWishlistItemHandler(log *slog.Logger, wishlistService service.WishlistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveWishlistItemHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		wishlistID, err := strconv.ParseInt(chi.URLParam(r, "wishlistId"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid wishlist item ID")
			return
		}

		if err := wishlistService.RemoveItem(r.Context(), userID, wishlistID); err != nil {
			if errors.Is(err, service.ErrWishlistItemNotFound) {
				respondError(w, http.StatusNotFound, "Wishlist item not found")
				return
			}
			logger.Error("failed to remove wishlist item", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Error removing from wishlist")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Removed from wishlist"})
	}
}

// RemoveWishlistByProductHandler обрабатывает запрос DELETE /api/wishlist/product/{productId}
func RemoveWishlistByProductHandler(log *slog.Logger, wishlistService service.WishlistService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RemoveWishlistByProductHandler"
		logger := log.With(slog.String("op", op))

		userID, ok := jwtmiddleware.FromContext(r.Context())
		if !ok {
			logger.Error("userID not found in context")
			respondError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		if err := wishlistService.RemoveByProduct(r.Context(), userID, productID); err != nil {
			if errors.Is(err, service.ErrWishlistItemNotFound) {
				respondError(w, http.StatusNotFound, "Wishlist item not found")
				return
			}
			logger.Error("failed to remove wishlist item by product", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Error removing from wishlist")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Removed from wishlist"})
	}
}
