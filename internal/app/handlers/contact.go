package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/opticscart/lens-shop/internal/service"
)

// ContactRequest представляет входной JSON формы обратной связи с тегами валидации
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// ContactHandler обрабатывает запрос POST /api/contact
func ContactHandler(log *slog.Logger, contactService service.ContactService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ContactHandler"
		logger := log.With(slog.String("op", op))

		var req ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Missing fields")
			return
		}
		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			respondError(w, http.StatusBadRequest, "Missing fields")
			return
		}

		if err := contactService.SubmitMessage(r.Context(), req.Name, req.Email, req.Subject, req.Message); err != nil {
			logger.Error("failed to submit contact message", slog.Any("error", err))
			respondError(w, http.StatusInternalServerError, "Server error")
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Message saved"})
	}
}
