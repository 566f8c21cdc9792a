package service_test

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go.uber.org/zap"

	"github.com/seriousseal/tensorshare/internal/config"
	"github.com/seriousseal/tensorshare/internal/models"
	"github.com/seriousseal/tensorshare/internal/service"
)

// ExampleNewShareService демонстрирует создание нового экземпляра ShareService.
func ExampleNewShareService() {
	// Пустые FileStoragePath и DatabaseDSN означают in-memory хранилище
	cfg := &config.Config{
		ServerAddress: ":8080",
		BaseURL:       "http://localhost:8080",
		WebAppURL:     config.DefaultWebAppURL,
		SecretKey:     "test-secret-key",
	}

	// Создаем логгер (отключаем логи для примера)
	logger := zap.NewNop()

	svc, err := service.NewShareService(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Service created successfully: %t\n", svc != nil)
	fmt.Printf("Storage available: %t\n", svc.GetStorage() != nil)

	// Output:
	// Service created successfully: true
	// Storage available: true
}

// ExampleShareService_CreateShare демонстрирует создание shareable-ссылки
// из тензорного выражения.
func ExampleShareService_CreateShare() {
	cfg := &config.Config{
		BaseURL:   "http://example.com",
		WebAppURL: config.DefaultWebAppURL,
	}
	logger := zap.NewNop()

	svc, err := service.NewShareService(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	shortID, shareURL, err := svc.CreateShare(context.Background(), "ab_i_j = a_i * b_j", "2, 3", "example-user")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Short ID length: %d\n", len(shortID))
	fmt.Printf("Share URL starts with web app URL: %t\n", strings.HasPrefix(shareURL, cfg.WebAppURL))

	// Output:
	// Short ID length: 8
	// Share URL starts with web app URL: true
}

// ExampleShareService_GetShareURL демонстрирует получение shareable-ссылки
// по короткому идентификатору.
func ExampleShareService_GetShareURL() {
	cfg := &config.Config{
		BaseURL:   "http://example.com",
		WebAppURL: config.DefaultWebAppURL,
	}
	logger := zap.NewNop()

	svc, err := service.NewShareService(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	shortID, shareURL, err := svc.CreateShare(ctx, "c_k = d_k * e_k", "7", "example-user")
	if err != nil {
		log.Fatal(err)
	}

	retrieved, err := svc.GetShareURL(ctx, shortID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("URLs match: %t\n", retrieved == shareURL)

	// Output:
	// URLs match: true
}

// ExampleShareService_CreateSharesBatch демонстрирует пакетное создание ссылок.
func ExampleShareService_CreateSharesBatch() {
	cfg := &config.Config{
		BaseURL:   "http://example.com",
		WebAppURL: config.DefaultWebAppURL,
	}
	logger := zap.NewNop()

	svc, err := service.NewShareService(cfg, logger)
	if err != nil {
		log.Fatal(err)
	}

	batch := []models.BatchRequestEntry{
		{
			CorrelationID: "1",
			Expression:    "ab_i_j = a_i * b_j",
			Sizes:         "2, 3",
		},
		{
			CorrelationID: "2",
			Expression:    "c_k = d_k",
			Sizes:         "4",
		},
	}

	response, err := svc.CreateSharesBatch(context.Background(), batch, "example-user")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Response entries count: %d\n", len(response))
	fmt.Printf("First correlation ID: %s\n", response[0].CorrelationID)
	fmt.Printf("Short URL contains base URL: %t\n",
		strings.HasPrefix(response[0].ShortURL, cfg.BaseURL))

	// Output:
	// Response entries count: 2
	// First correlation ID: 1
	// Short URL contains base URL: true
}
