package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opticscart/lens-shop/internal/domain/models"
	"github.com/opticscart/lens-shop/internal/storage"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService определяет интерфейс для работы с каталогом линз.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProductsByType(ctx context.Context, productType string) ([]*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (int64, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

type catalogService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
}

func NewCatalogService(log *slog.Logger, productRepo storage.ProductStorage) CatalogService {
	return &catalogService{
		log:         log,
		productRepo: productRepo,
	}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "service.CatalogService.ListProducts"

	products, err := s.productRepo.GetAllProducts(ctx)
	if err != nil {
		s.log.Error("failed to list products", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	const op = "service.CatalogService.GetProduct"

	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		s.log.Error("failed to get product", slog.String("op", op), slog.Int64("id", id), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return product, nil
}

func (s *catalogService) ListProductsByType(ctx context.Context, productType string) ([]*models.Product, error) {
	const op = "service.CatalogService.ListProductsByType"

	products, err := s.productRepo.GetProductsByType(ctx, productType)
	if err != nil {
		s.log.Error("failed to list products by type", slog.String("op", op), slog.String("type", productType), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *catalogService) CreateProduct(ctx context.Context, product *models.Product) (int64, error) {
	const op = "service.CatalogService.CreateProduct"
	logger := s.log.With(slog.String("op", op), slog.String("name", product.Name))

	id, err := s.productRepo.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("failed to create product", slog.Any("error", err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product created", slog.Int64("id", id))
	return id, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, product *models.Product) error {
	const op = "service.CatalogService.UpdateProduct"
	logger := s.log.With(slog.String("op", op), slog.Int64("id", product.ID))

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return ErrProductNotFound
		}
		logger.Error("failed to update product", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product updated")
	return nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	const op = "service.CatalogService.DeleteProduct"
	logger := s.log.With(slog.String("op", op), slog.Int64("id", id))

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return ErrProductNotFound
		}
		logger.Error("failed to delete product", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product deleted")
	return nil
}
