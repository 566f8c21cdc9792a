package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/seriousseal/tensorshare/internal/app"
	"github.com/seriousseal/tensorshare/internal/buildinfo"
	"github.com/seriousseal/tensorshare/internal/config"
	"github.com/seriousseal/tensorshare/internal/server"
)

// Информация о сборке, задается при сборке через ldflags:
//
//	go build -ldflags "-X main.buildVersion=v1.0.0 -X main.buildDate=2024-01-01 -X main.buildCommit=abc123" ./cmd/server
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// configMu сериализует повторную инициализацию глобального flag.CommandLine:
// NewConfig регистрирует флаги заново при каждом вызове getConfig.
var configMu sync.Mutex

// getConfig загружает конфигурацию приложения со сбросом глобального набора флагов
func getConfig() *config.Config {
	configMu.Lock()
	defer configMu.Unlock()

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return cfg
}

// setupLogger создает production логгер
func setupLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

// runServer собирает приложение и обслуживает запросы до отмены контекста
// или ошибки сервера
func runServer(ctx context.Context) error {
	logger, err := setupLogger()
	if err != nil {
		return fmt.Errorf("error initializing logger: %w", err)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			log.Printf("Error syncing logger: %v", err)
		}
	}()

	cfg := getConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("error creating app: %w", err)
	}
	if err := application.Configure(); err != nil {
		return fmt.Errorf("error configuring app: %w", err)
	}

	httpServer := application.GetServer()
	srv := server.NewHTTPServer(httpServer, cfg, logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", zap.Error(err))
		}
		return ctx.Err()
	case err := <-serverErr:
		return err
	}
}

func main() {
	buildinfo.NewInfo(buildVersion, buildDate, buildCommit).Print()

	if err := runServer(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
