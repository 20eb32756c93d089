package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/opticscart/lens-shop/internal/domain/models"
	"github.com/opticscart/lens-shop/internal/service"
)

// ProductsResponse — список товаров каталога.
type ProductsResponse struct {
	Success  bool              `json:"success"`
	Products []*models.Product `json:"products"`
}

// ProductResponse — один товар каталога.
type ProductResponse struct {
	Success bool            `json:"success"`
	Product *models.Product `json:"product"`
}

// ProductRequest представляет входной JSON для создания/обновления товара
type ProductRequest struct {
	Name            string    `json:"name" validate:"required"`
	Brand           string    `json:"brand" validate:"required"`
	Price           FlexFloat `json:"price" validate:"required"`
	Type            string    `json:"type" validate:"required"`
	PowerRange      *string   `json:"power_range"`
	Color           *string   `json:"color"`
	FrameMaterial   *string   `json:"frame_material"`
	CoatingType     *string   `json:"coating_type"`
	Collection      *string   `json:"collection"`
	GenderCategory  *string   `json:"gender_category"`
	ProductCategory *string   `json:"product_category"`
	Description     *string   `json:"description"`
	Stock           FlexInt   `json:"stock"`
	ImageURL        *string   `json:"image_url"`
}

func (req *ProductRequest) toModel() *models.Product {
	return &models.Product{
		Name:            req.Name,
		Brand:           req.Brand,
		Price:           float64(req.Price),
		Type:            req.Type,
		PowerRange:      req.PowerRange,
		Color:           req.Color,
		FrameMaterial:   req.FrameMaterial,
		CoatingType:     req.CoatingType,
		Collection:      req.Collection,
		GenderCategory:  req.GenderCategory,
		ProductCategory: req.ProductCategory,
		Description:     req.Description,
		Stock:           int(req.Stock),
		ImageURL:        req.ImageURL,
	}
}

// ListLensHandler обрабатывает запрос GET /api/lens
func ListLensHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListLensHandler"
		logger := log.With(slog.String("op", op))

		products, err := catalogService.ListProducts(r.Context())
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Failed to fetch lens products")
			return
		}
		if products == nil {
			products = []*models.Product{}
		}
		respondJSON(w, http.StatusOK, ProductsResponse{Success: true, Products: products})
	}
}

// GetLensHandler обрабатывает запрос GET /api/lens/{id}
func GetLensHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetLensHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		product, err := catalogService.GetProduct(r.Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				respondError(w, http.StatusNotFound, "Product not found")
				return
			}
			logger.Error("failed to get product", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Failed to fetch lens product")
			return
		}
		respondJSON(w, http.StatusOK, ProductResponse{Success: true, Product: product})
	}
}

// LensByTypeHandler обрабатывает запрос GET /api/lens/type/{type}
func LensByTypeHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LensByTypeHandler"
		logger := log.With(slog.String("op", op))

		productType := chi.URLParam(r, "type")
		if productType == "" {
			respondError(w, http.StatusBadRequest, "type parameter is required")
			return
		}

		products, err := catalogService.ListProductsByType(r.Context(), productType)
		if err != nil {
			logger.Error("failed to list products by type", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Failed to fetch lens products")
			return
		}
		if products == nil {
			products = []*models.Product{}
		}
		respondJSON(w, http.StatusOK, ProductsResponse{Success: true, Products: products})
	}
}

// CreateLensHandler обрабатывает запрос POST /api/lens
func CreateLensHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateLensHandler"
		logger := log.With(slog.String("op", op))

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Name, brand, price, and type are required")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Name, brand, price, and type are required")
			return
		}

		id, err := catalogService.CreateProduct(r.Context(), req.toModel())
		if err != nil {
			logger.Error("failed to create product", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Failed to upload lens product")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]any{
			"success":   true,
			"message":   "Lens product created successfully",
			"productId": id,
		})
	}
}

// UpdateLensHandler обрабатывает запрос PUT /api/lens/{id}
func UpdateLensHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateLensHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		var req ProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Name, brand, price, and type are required")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Name, brand, price, and type are required")
			return
		}

		product := req.toModel()
		product.ID = id
		if err := catalogService.UpdateProduct(r.Context(), product); err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				respondError(w, http.StatusNotFound, "Product not found")
				return
			}
			logger.Error("failed to update product", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Failed to update lens product")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Lens product updated successfully",
		})
	}
}

// DeleteLensHandler обрабатывает запрос DELETE /api/lens/{id}
func DeleteLensHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteLensHandler"
		logger := log.With(slog.String("op", op))

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid product ID")
			return
		}

		if err := catalogService.DeleteProduct(r.Context(), id); err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				respondError(w, http.StatusNotFound, "Product not found")
				return
			}
			logger.Error("failed to delete product", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Failed to delete lens product")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Lens product deleted successfully",
		})
	}
}
