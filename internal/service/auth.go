package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/opticscart/lens-shop/internal/domain/models"
	security "github.com/opticscart/lens-shop/internal/jwt-new"
	"github.com/opticscart/lens-shop/internal/storage"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
	tokenTTL time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:      log,
		userRepo: userRepo,
		tokenTTL: tokenTTL,
	}
}

type AuthServiceInterface interface {
	Signup(ctx context.Context, firstName, lastName, phone, email, password string) error
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// Signup регистрирует нового пользователя. Пароль хэшируется через bcrypt
// (соль добавляется автоматически). Повторная регистрация на тот же email
// возвращает storage.ErrEmailTaken.
func (a *AuthService) Signup(ctx context.Context, firstName, lastName, phone, email, password string) error {
	const op = "auth.Signup"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	newUser := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Email:     email,
		PassHash:  passHash,
	}
	user, err := a.userRepo.CreateUser(ctx, newUser)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			logger.Warn("email already registered")
			return err
		}
		logger.Error("failed to create user", slog.Any("error", err))
		return fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	logger.Info("user registered successfully", slog.Int64("userID", user.ID))
	return nil
}

// Login осуществляет аутентификацию пользователя.
// Введённый пароль сравнивается с сохранённым хэшированным значением,
// после успешной проверки генерируется JWT-токен (секрет берётся из переменной окружения).
func (a *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	const op = "auth.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return "", nil, ErrInvalidCredentials
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return "", nil, ErrInvalidCredentials
	}

	token, err := security.NewToken(ctx, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.Int64("userID", user.ID))
	return token, user, nil
}
