package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/opticscart/lens-shop/internal/domain/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductStorage описывает методы для работы с каталогом линз.
type ProductStorage interface {
	GetAllProducts(ctx context.Context) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProductsByType(ctx context.Context, productType string) ([]*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (int64, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	// LockProductByIDTx блокирует строку товара внутри транзакции (FOR UPDATE),
	// чтобы конкурентные списания остатка не пересекались.
	LockProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error)
	// DecrementStockTx атомарно списывает остаток, не опуская его ниже нуля.
	DecrementStockTx(ctx context.Context, tx *sql.Tx, id int64, quantity int) error
}

// productRepository — конкретная реализация ProductStorage.
type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт новый репозиторий каталога.
func NewProductRepository(db *sql.DB) ProductStorage {
	return &productRepository{db: db}
}

const productColumns = `id, name, brand, price, type, power_range, color, frame_material,
	coating_type, collection, gender_category, product_category, description, stock, image_url,
	created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Price, &p.Type, &p.PowerRange, &p.Color,
		&p.FrameMaterial, &p.CoatingType, &p.Collection, &p.GenderCategory,
		&p.ProductCategory, &p.Description, &p.Stock, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetAllProducts(ctx context.Context) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM lens_products ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM lens_products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *productRepository) GetProductsByType(ctx context.Context, productType string) ([]*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM lens_products WHERE type = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, productType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) (int64, error) {
	query := `INSERT INTO lens_products
		(name, brand, price, type, power_range, color, frame_material, coating_type,
		 collection, gender_category, product_category, description, stock, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		product.Name, product.Brand, product.Price, product.Type, product.PowerRange,
		product.Color, product.FrameMaterial, product.CoatingType, product.Collection,
		product.GenderCategory, product.ProductCategory, product.Description,
		product.Stock, product.ImageURL,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return id, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	query := `UPDATE lens_products
		SET name = $1, brand = $2, price = $3, type = $4, power_range = $5, color = $6,
		    frame_material = $7, coating_type = $8, collection = $9, gender_category = $10,
		    product_category = $11, description = $12, stock = $13, image_url = $14, updated_at = NOW()
		WHERE id = $15`
	res, err := r.db.ExecContext(ctx, query,
		product.Name, product.Brand, product.Price, product.Type, product.PowerRange,
		product.Color, product.FrameMaterial, product.CoatingType, product.Collection,
		product.GenderCategory, product.ProductCategory, product.Description,
		product.Stock, product.ImageURL, product.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM lens_products WHERE id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// LockProductByIDTx читает товар с блокировкой строки, чтобы проверка наличия
// и последующее списание остатка были сериализованы между транзакциями.
func (r *productRepository) LockProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	p := &models.Product{}
	row := tx.QueryRowContext(ctx, "SELECT id, name, price, stock FROM lens_products WHERE id = $1 FOR UPDATE", id)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// DecrementStockTx списывает остаток одной командой, GREATEST не даёт уйти в минус.
func (r *productRepository) DecrementStockTx(ctx context.Context, tx *sql.Tx, id int64, quantity int) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE lens_products SET stock = GREATEST(stock - $1, 0), updated_at = NOW() WHERE id = $2",
		quantity, id,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
