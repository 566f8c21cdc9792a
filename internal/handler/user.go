package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/seriousseal/tensorshare/internal/middleware"
	"github.com/seriousseal/tensorshare/internal/models"
)

// deleteTimeout ограничивает время фонового удаления ссылок
const deleteTimeout = 30 * time.Second

// HandleGetUserShares обрабатывает GET запрос на получение всех ссылок пользователя
func (h *Handler) HandleGetUserShares(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	shares, err := h.service.GetUserShares(r.Context(), userID)
	if err != nil {
		h.logger.Error("Error getting user shares", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if len(shares) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(shares); err != nil {
		h.logger.Error("Error writing JSON response", zap.Error(err))
	}
}

// HandleDeleteUserShares обрабатывает DELETE запрос на удаление ссылок
// пользователя. Удаление выполняется асинхронно, ответ 202 возвращается сразу.
func (h *Handler) HandleDeleteUserShares(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok || userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	// Контекст запроса закрывается вместе с ответом, поэтому удаление
	// выполняется на отдельном контексте с таймаутом
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
		defer cancel()

		if err := h.service.DeleteUserShares(ctx, req, userID); err != nil {
			h.logger.Error("Error deleting user shares",
				zap.Strings("short_ids", req),
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}
