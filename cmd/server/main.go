package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/opticscart/lens-shop/internal/app"
	"github.com/opticscart/lens-shop/internal/app/handlers"
	"github.com/opticscart/lens-shop/internal/cache"
	"github.com/opticscart/lens-shop/internal/config"
	"github.com/opticscart/lens-shop/internal/jwt-new/jwtmiddleware"
	"github.com/opticscart/lens-shop/internal/lib/logger"
	"github.com/opticscart/lens-shop/internal/lib/logger/handlers/urllog"
	"github.com/opticscart/lens-shop/internal/service"
	"github.com/opticscart/lens-shop/internal/storage"
)

func main() {
	// .env подхватывается для локального запуска, в проде переменные заданы снаружи
	_ = godotenv.Load()

	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// реализация слоев по работе с БД по каждому направлению
	userRepo := storage.NewUserRepository(application.DB)
	productRepo := storage.NewProductRepository(application.DB)
	orderRepo := storage.NewOrderRepository(application.DB)
	cartRepo := storage.NewCartRepository(application.DB)
	wishlistRepo := storage.NewWishlistRepository(application.DB)
	contactRepo := storage.NewContactRepository(application.DB)

	// идемпотентность оформления включается только при настроенном Redis
	var idemStore service.IdempotencyStore
	if application.Redis != nil {
		idemStore = cache.NewRedisIdempotencyStore(application.Redis, cfg.Redis.IdempotencyTTL)
		log.Info("checkout idempotency enabled", slog.String("redis", cfg.Redis.Addr))
	}

	authService := service.NewAuthService(application.Logger, userRepo, time.Duration(application.Config.JWT.TokenTTL)*time.Minute)
	catalogService := service.NewCatalogService(application.Logger, productRepo)
	checkoutService := service.NewCheckoutService(application.Logger, application.DB, orderRepo, productRepo, idemStore)
	orderService := service.NewOrderService(application.Logger, orderRepo)
	cartService := service.NewCartService(application.Logger, cartRepo)
	wishlistService := service.NewWishlistService(application.Logger, wishlistRepo)
	contactService := service.NewContactService(application.Logger, contactRepo)

	// открытые эндпоинты
	router.Get("/api/health", handlers.HealthHandler())
	router.Post("/api/signup", handlers.SignupHandler(application.Logger, authService))
	router.Post("/api/login", handlers.LoginHandler(application.Logger, authService))
	router.Post("/api/contact", handlers.ContactHandler(application.Logger, contactService))

	// каталог
	router.Get("/api/lens", handlers.ListLensHandler(application.Logger, catalogService))
	router.Get("/api/lens/type/{type}", handlers.LensByTypeHandler(application.Logger, catalogService))
	router.Get("/api/lens/{id}", handlers.GetLensHandler(application.Logger, catalogService))
	router.Post("/api/lens", handlers.CreateLensHandler(application.Logger, catalogService))
	router.Put("/api/lens/{id}", handlers.UpdateLensHandler(application.Logger, catalogService))
	router.Delete("/api/lens/{id}", handlers.DeleteLensHandler(application.Logger, catalogService))

	// оформление заказа и чтение заказов
	router.Post("/api/checkout", handlers.CheckoutHandler(application.Logger, checkoutService))
	router.Get("/api/orders", handlers.ListOrdersHandler(application.Logger, orderService))
	router.Get("/api/orders/{id}", handlers.OrderDetailHandler(application.Logger, orderService))

	// корзина и список желаний доступны только аутентифицированным пользователям
	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware()
		r.Use(jwtMW)
		r.Post("/api/cart/add", handlers.AddToCartHandler(application.Logger, cartService))
		r.Get("/api/cart", handlers.GetCartHandler(application.Logger, cartService))
		r.Put("/api/cart/{cartId}", handlers.UpdateCartHandler(application.Logger, cartService))
		r.Delete("/api/cart/{cartId}", handlers.RemoveCartItemHandler(application.Logger, cartService))
		r.Delete("/api/cart", handlers.ClearCartHandler(application.Logger, cartService))

		r.Post("/api/wishlist/add", handlers.AddToWishlistHandler(application.Logger, wishlistService))
		r.Get("/api/wishlist", handlers.GetWishlistHandler(application.Logger, wishlistService))
		r.Get("/api/wishlist/check/{productId}", handlers.CheckWishlistHandler(application.Logger, wishlistService))
		r.Delete("/api/wishlist/product/{productId}", handlers.RemoveWishlistByProductHandler(application.Logger, wishlistService))
		r.Delete("/api/wishlist/{wishlistId}", handlers.RemoveWishlistItemHandler(application.Logger, wishlistService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	if application.Redis != nil {
		if err := application.Redis.Close(); err != nil {
			log.Error("redis close failed", slog.Any("error", err))
		}
	}
	log.Info("server gracefully stopped")
}
