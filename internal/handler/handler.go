package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/seriousseal/tensorshare/internal/config"
	"github.com/seriousseal/tensorshare/internal/middleware"
	"github.com/seriousseal/tensorshare/internal/models"
	"github.com/seriousseal/tensorshare/internal/service"
	"github.com/seriousseal/tensorshare/internal/storage"
)

const (
	contentTypePlain       = "text/plain"
	contentTypeJSON        = "application/json"
	emptyURLMessage        = "empty URL"
	emptyExpressionMessage = "empty expression"
	shareNotFoundMessage   = "share link not found"
	shareDeletedMessage    = "share link is deleted"
)

// Handler обрабатывает HTTP запросы сервиса
type Handler struct {
	service service.ShareService
	cfg     *config.Config
	logger  *zap.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(service service.ShareService, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// HandleCreateShortLink обрабатывает POST запрос с уже построенной
// shareable-ссылкой в теле и возвращает короткую ссылку на неё
func (h *Handler) HandleCreateShortLink(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, contentTypePlain) && !strings.HasPrefix(contentType, "application/x-gzip") {
		http.Error(w, "Invalid Content-Type", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	shareURL := strings.TrimSpace(string(body))
	h.logger.Info("Received share URL in POST request", zap.String("url", shareURL))

	if shareURL == "" {
		http.Error(w, emptyURLMessage, http.StatusBadRequest)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())

	shortID, err := h.service.CreateShortLink(r.Context(), shareURL, userID)
	shortLink := h.cfg.BaseURL + "/" + shortID

	if err != nil {
		if errors.Is(err, storage.ErrShareURLConflict) {
			h.logger.Info("Share URL already exists (conflict)", zap.String("share_url", shareURL), zap.String("short_link", shortLink))
			w.Header().Set("Content-Type", contentTypePlain)
			w.WriteHeader(http.StatusConflict)
			if _, writeErr := w.Write([]byte(shortLink)); writeErr != nil {
				h.logger.Error("Error writing response (conflict)", zap.Error(writeErr))
			}
			return
		}
		h.logger.Error("Error creating short link", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypePlain)
	w.WriteHeader(http.StatusCreated)
	if _, err := w.Write([]byte(shortLink)); err != nil {
		h.logger.Error("Error writing response", zap.Error(err))
	}
}

// HandleRedirect обрабатывает GET запрос для перенаправления по короткой ссылке
func (h *Handler) HandleRedirect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	shortID := strings.Trim(r.URL.Path, "/")
	if shortID == "" {
		http.Error(w, "Empty shortID", http.StatusBadRequest)
		return
	}

	h.logger.Info("Attempting to get share URL", zap.String("short_id", shortID))

	shareURL, err := h.service.GetShareURL(r.Context(), shortID)
	if err != nil {
		if errors.Is(err, storage.ErrShareDeleted) {
			http.Error(w, shareDeletedMessage, http.StatusGone)
			return
		}
		if errors.Is(err, storage.ErrShareNotFound) {
			http.Error(w, shareNotFoundMessage, http.StatusBadRequest)
			return
		}
		h.logger.Error("Error getting share URL", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("Setting Location header", zap.String("location", shareURL))
	w.Header().Set("Location", shareURL)
	w.WriteHeader(http.StatusTemporaryRedirect)
}

// ShareRequest описывает JSON запрос на создание shareable-ссылки
type ShareRequest struct {
	Expression string `json:"expression"`
	Sizes      string `json:"sizes"`
}

// ShareResponse описывает JSON ответ с короткой и полной shareable-ссылками
type ShareResponse struct {
	Result   string `json:"result"`
	ShareURL string `json:"share_url"`
}

// HandleShareURL обрабатывает POST запрос на создание shareable-ссылки
// из тензорного выражения в формате JSON
func (h *Handler) HandleShareURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, contentTypeJSON) {
		http.Error(w, "Invalid Content-Type", http.StatusBadRequest)
		return
	}

	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	if req.Expression == "" {
		http.Error(w, emptyExpressionMessage, http.StatusBadRequest)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())

	shortID, shareURL, err := h.service.CreateShare(r.Context(), req.Expression, req.Sizes, userID)
	response := ShareResponse{
		Result:   h.cfg.BaseURL + "/" + shortID,
		ShareURL: shareURL,
	}

	if err != nil {
		if errors.Is(err, storage.ErrShareURLConflict) {
			h.logger.Info("Share URL already exists (conflict) in /api/share", zap.String("share_url", shareURL))
			w.Header().Set("Content-Type", contentTypeJSON)
			w.WriteHeader(http.StatusConflict)
			if err := json.NewEncoder(w).Encode(response); err != nil {
				h.logger.Error("Error writing JSON response (conflict)", zap.Error(err))
			}
			return
		}

		h.logger.Error("Error creating share URL in /api/share", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error writing JSON response", zap.Error(err))
	}
}

// HandleShareBatch обрабатывает POST запрос на пакетное создание shareable-ссылок
func (h *Handler) HandleShareBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, contentTypeJSON) {
		http.Error(w, "Invalid Content-Type", http.StatusBadRequest)
		return
	}

	var reqBatch []models.BatchRequestEntry
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Unable to read request body", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			h.logger.Error("Error closing request body", zap.Error(err))
		}
	}()

	if err := json.Unmarshal(bodyBytes, &reqBatch); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}

	userID, _ := middleware.UserIDFromContext(r.Context())

	respBatch, err := h.service.CreateSharesBatch(r.Context(), reqBatch, userID)
	if err != nil {
		h.logger.Error("Error processing batch", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(respBatch); err != nil {
		h.logger.Error("Error writing response", zap.Error(err))
	}
}

// WithLogging добавляет логирование запросов
func (h *Handler) WithLogging(next http.Handler) http.Handler {
	return middleware.LoggerMiddleware(h.logger)(next)
}

// WithCompression добавляет поддержку сжатия gzip и zstd
func (h *Handler) WithCompression(next http.Handler) http.Handler {
	return middleware.CompressMiddleware(next)
}

// AuthMiddleware добавляет аутентификацию пользователя по JWT куке
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return middleware.WithAuth(h.cfg.SecretKey)(next)
}
