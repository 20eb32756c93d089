package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/opticscart/lens-shop/internal/service"
	"github.com/opticscart/lens-shop/internal/storage"
)

// SignupRequest представляет структуру запроса регистрации с тегами валидации
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

// LoginRequest представляет структуру запроса аутентификации
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse представляет ответ с JWT-токеном и краткой информацией о пользователе
type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

type LoginUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
}

var validate = validator.New()

// SignupHandler обрабатывает запрос POST /api/signup
func SignupHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SignupHandler"
		logger := log.With(slog.String("op", op))

		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Required fields missing")
			return
		}

		// Валидация структуры запроса с использованием validator
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Required fields missing")
			return
		}

		if err := authService.Signup(r.Context(), req.FirstName, req.LastName, req.Phone, req.Email, req.Password); err != nil {
			if errors.Is(err, storage.ErrEmailTaken) {
				respondError(w, http.StatusConflict, "Email already exists")
				return
			}
			logger.Error("signup failed", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		respondJSON(w, http.StatusCreated, map[string]string{"message": "Account created successfully"})
	}
}

// LoginHandler обрабатывает запрос POST /api/login
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Email and password required")
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Email and password required")
			return
		}

		token, user, err := authService.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				respondError(w, http.StatusUnauthorized, "Invalid email or password")
				return
			}
			logger.Error("login failed", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		resp := LoginResponse{
			Message: "Login successful",
			Token:   token,
			User: LoginUser{
				ID:        user.ID,
				FirstName: user.FirstName,
				Email:     user.Email,
			},
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
