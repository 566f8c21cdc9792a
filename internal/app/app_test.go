package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seriousseal/tensorshare/internal/config"
	"github.com/seriousseal/tensorshare/internal/handler"
)

func TestNewApp(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:   ":8080",
		BaseURL:         "http://localhost:8080",
		FileStoragePath: "",
		DatabaseDSN:     "",
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)
	assert.NotNil(t, app)
	assert.NotNil(t, app.router)
	assert.NotNil(t, app.logger)
	assert.NotNil(t, app.handler)
}

func TestAppRun(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:   ":0", // Используем порт 0 для автоматического выбора свободного порта
		BaseURL:         "http://localhost:8080",
		FileStoragePath: "",
		DatabaseDSN:     "",
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)

	// Запускаем сервер в отдельной горутине
	go func() {
		err := app.Run()
		assert.NoError(t, err)
	}()

	// Даем серверу время на запуск
	time.Sleep(100 * time.Millisecond)

	// Проверяем, что сервер отвечает
	server := app.GetServer()
	assert.NotNil(t, server)
	assert.Equal(t, cfg.ServerAddress, server.Addr)
	assert.NotNil(t, server.Handler)
}

func TestAppConfigure(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:   ":8080",
		BaseURL:         "http://localhost:8080",
		FileStoragePath: "",
		DatabaseDSN:     "",
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)

	err = app.Configure()
	assert.NoError(t, err)
	assert.NotNil(t, app.handler)
	assert.NotNil(t, app.Router())
}

func TestAppRoutes(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:   ":8080",
		BaseURL:         "http://localhost:8080",
		WebAppURL:       config.DefaultWebAppURL,
		FileStoragePath: "",
		DatabaseDSN:     "",
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)
	require.NoError(t, app.Configure())

	// Создаем тестовые запросы для проверки маршрутов
	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"POST / without content type", http.MethodPost, "/", http.StatusBadRequest},
		{"GET / wrong method", http.MethodGet, "/", http.StatusMethodNotAllowed},
		{"GET unknown short link", http.MethodGet, "/abc123", http.StatusBadRequest},
		{"POST /api/share without content type", http.MethodPost, "/api/share", http.StatusBadRequest},
		{"GET /api/share wrong method", http.MethodGet, "/api/share", http.StatusMethodNotAllowed},
		{"GET /ping", http.MethodGet, "/ping", http.StatusOK},
		{"GET /api/user/shares empty", http.MethodGet, "/api/user/shares", http.StatusNoContent},
		{"DELETE /api/user/shares bad body", http.MethodDelete, "/api/user/shares", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			app.router.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestAppShareRoundTrip(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:   ":8080",
		BaseURL:         "http://localhost:8080",
		WebAppURL:       config.DefaultWebAppURL,
		FileStoragePath: "",
		DatabaseDSN:     "",
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)
	require.NoError(t, app.Configure())

	// Создаем короткую ссылку через JSON API
	body := `{"expression":"ab_i_j = a_i * b_j","sizes":"2, 3"}`
	req := httptest.NewRequest(http.MethodPost, "/api/share", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp handler.ShareResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Result, cfg.BaseURL))
	assert.True(t, strings.HasPrefix(resp.ShareURL, cfg.WebAppURL))

	// Переходим по короткой ссылке и проверяем редирект на shareable URL
	path := strings.TrimPrefix(resp.Result, cfg.BaseURL)
	redirectReq := httptest.NewRequest(http.MethodGet, path, nil)
	redirectRR := httptest.NewRecorder()
	app.router.ServeHTTP(redirectRR, redirectReq)

	assert.Equal(t, http.StatusTemporaryRedirect, redirectRR.Code)
	assert.Equal(t, resp.ShareURL, redirectRR.Header().Get("Location"))
}

func TestAppWithContext(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:   ":0",
		BaseURL:         "http://localhost:8080",
		FileStoragePath: "",
		DatabaseDSN:     "",
	}

	app, err := NewApp(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	server := app.GetServer()
	go func() {
		err := server.ListenAndServe()
		assert.Error(t, err)
	}()

	<-ctx.Done()
}
