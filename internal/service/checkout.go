package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opticscart/lens-shop/internal/domain/models"
	"github.com/opticscart/lens-shop/internal/storage"
)

// ErrEmptyOrder возвращается, если в запросе на оформление нет ни одной позиции.
// Проверка выполняется до открытия транзакции, никаких записей в БД не происходит.
var ErrEmptyOrder = errors.New("checkout requires at least one item")

// CheckoutService определяет интерфейс оформления заказа.
type CheckoutService interface {
	Checkout(ctx context.Context, order CheckoutOrder) (int64, error)
}

// Customer — данные покупателя из запроса. Все поля опциональны.
type Customer struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// CheckoutLine — одна позиция оформляемого заказа.
// ProductID может быть нулевым или указывать на несуществующий товар:
// такая позиция сохраняется без ссылки на каталог, остаток по ней не списывается.
type CheckoutLine struct {
	ProductID int64
	Name      string
	Price     float64
	Quantity  int
}

// CheckoutOrder — полный запрос на оформление.
// IdempotencyKey опционален: при повторе с тем же ключом возвращается
// идентификатор первого успешно созданного заказа.
type CheckoutOrder struct {
	Customer       Customer
	Items          []CheckoutLine
	IdempotencyKey string
}

// IdempotencyStore хранит соответствие ключ идемпотентности -> id заказа.
type IdempotencyStore interface {
	Recall(ctx context.Context, key string) (int64, bool, error)
	Remember(ctx context.Context, key string, orderID int64) error
}

type checkoutService struct {
	log         *slog.Logger
	db          *sql.DB
	orderRepo   storage.OrderStorage
	productRepo storage.ProductStorage
	idemStore   IdempotencyStore // может быть nil, тогда идемпотентность отключена
}

func NewCheckoutService(log *slog.Logger, db *sql.DB, orderRepo storage.OrderStorage, productRepo storage.ProductStorage, idemStore IdempotencyStore) CheckoutService {
	return &checkoutService{
		log:         log,
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		idemStore:   idemStore,
	}
}

// Checkout оформляет заказ как единую транзакцию: строка заказа, все его позиции
// и списания остатков либо фиксируются вместе, либо не фиксируются вовсе.
// Итоговая сумма считается по ценам из запроса (снимок на момент оформления),
// каталожная цена не перечитывается.
func (s *checkoutService) Checkout(ctx context.Context, order CheckoutOrder) (int64, error) {
	const op = "service.CheckoutService.Checkout"
	logger := s.log.With(slog.String("op", op), slog.Int("items", len(order.Items)))

	if len(order.Items) == 0 {
		return 0, ErrEmptyOrder
	}

	// Повторный запрос с тем же ключом не создаёт второй заказ
	if order.IdempotencyKey != "" && s.idemStore != nil {
		if orderID, ok, err := s.idemStore.Recall(ctx, order.IdempotencyKey); err != nil {
			logger.Warn("idempotency recall failed", slog.Any("error", err))
		} else if ok {
			logger.Info("checkout replayed from idempotency store", slog.Int64("orderID", orderID))
			return orderID, nil
		}
	}

	// Сумма заказа считается один раз, до открытия транзакции
	var total float64
	for _, it := range order.Items {
		total += float64(it.Quantity) * it.Price
	}

	logger.Info("starting checkout transaction", slog.Float64("total", total))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	orderID, err := s.orderRepo.CreateOrder(ctx, tx, &models.Order{
		CustomerName: nullable(order.Customer.Name),
		Email:        nullable(order.Customer.Email),
		Phone:        nullable(order.Customer.Phone),
		Address:      nullable(order.Customer.Address),
		TotalAmount:  total,
	})
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("transaction rollback failed", slog.Any("error", rbErr))
		}
		logger.Error("failed to create order", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to create order: %w", op, err)
	}

	for _, it := range order.Items {
		// Ссылка на товар валидна, только если он существует на момент оформления.
		// Блокировка строки сериализует проверку и списание между транзакциями.
		var productID *int64
		if it.ProductID > 0 {
			product, err := s.productRepo.LockProductByIDTx(ctx, tx, it.ProductID)
			if err != nil {
				if errors.Is(err, storage.ErrProductNotFound) {
					logger.Info("product not found, recording unlinked item", slog.Int64("productID", it.ProductID))
				} else {
					if rbErr := tx.Rollback(); rbErr != nil {
						logger.Error("transaction rollback failed", slog.Any("error", rbErr))
					}
					logger.Error("failed to lock product", slog.Any("error", err))
					return 0, fmt.Errorf("%s: failed to lock product: %w", op, err)
				}
			} else {
				productID = &product.ID
			}
		}

		subtotal := it.Price * float64(it.Quantity)
		item := &models.OrderItem{
			OrderID:   orderID,
			ProductID: productID,
			Name:      nullable(it.Name),
			Price:     it.Price,
			Quantity:  it.Quantity,
			Subtotal:  subtotal,
		}
		if err := s.orderRepo.CreateOrderItem(ctx, tx, item); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("transaction rollback failed", slog.Any("error", rbErr))
			}
			logger.Error("failed to create order item", slog.Any("error", err))
			return 0, fmt.Errorf("%s: failed to create order item: %w", op, err)
		}

		if productID != nil {
			if err := s.productRepo.DecrementStockTx(ctx, tx, *productID, it.Quantity); err != nil {
				if rbErr := tx.Rollback(); rbErr != nil {
					logger.Error("transaction rollback failed", slog.Any("error", rbErr))
				}
				logger.Error("failed to decrement stock", slog.Any("error", err))
				return 0, fmt.Errorf("%s: failed to decrement stock: %w", op, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	// Ключ запоминается только после фиксации; ошибка кэша не отменяет заказ
	if order.IdempotencyKey != "" && s.idemStore != nil {
		if err := s.idemStore.Remember(ctx, order.IdempotencyKey, orderID); err != nil {
			logger.Warn("idempotency remember failed", slog.Any("error", err))
		}
	}

	logger.Info("checkout completed successfully", slog.Int64("orderID", orderID))
	return orderID, nil
}

// nullable превращает пустую строку в NULL, как это делал исходный API
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
