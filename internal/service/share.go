// Package service содержит бизнес-логику построения и хранения
// shareable-ссылок на тензорные выражения.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/seriousseal/tensorshare/internal/config"
	"github.com/seriousseal/tensorshare/internal/encoding"
	"github.com/seriousseal/tensorshare/internal/models"
	"github.com/seriousseal/tensorshare/internal/storage"
)

// ShareService определяет интерфейс сервиса для работы с shareable-ссылками
type ShareService interface {
	// BuildShareURL строит shareable-ссылку на веб-приложение из тензорного
	// выражения и списка размеров индексов
	BuildShareURL(expression, sizes string) (string, error)

	// CreateShare строит shareable-ссылку и сохраняет её под коротким
	// идентификатором. Возвращает идентификатор и саму ссылку.
	CreateShare(ctx context.Context, expression, sizes, userID string) (string, string, error)

	// CreateShortLink сохраняет уже построенную shareable-ссылку под
	// коротким идентификатором
	CreateShortLink(ctx context.Context, shareURL, userID string) (string, error)

	// CreateSharesBatch строит и сохраняет пакет shareable-ссылок
	CreateSharesBatch(ctx context.Context, batch []models.BatchRequestEntry, userID string) ([]models.BatchResponseEntry, error)

	// GetShareURL возвращает shareable-ссылку по короткому идентификатору
	GetShareURL(ctx context.Context, shortID string) (string, error)

	// GetUserShares возвращает все ссылки, сохраненные пользователем
	GetUserShares(ctx context.Context, userID string) ([]models.UserShare, error)

	// DeleteUserShares помечает ссылки пользователя как удаленные
	DeleteUserShares(ctx context.Context, shortIDs []string, userID string) error

	// CheckConnection проверяет доступность хранилища
	CheckConnection(ctx context.Context) error

	// GetStorage возвращает используемое хранилище
	GetStorage() storage.ShareStorage
}

// ShareServiceImpl реализует ShareService
type ShareServiceImpl struct {
	storage storage.ShareStorage
	config  *config.Config
	logger  *zap.Logger
}

// NewShareService создает новый экземпляр ShareService. Хранилище выбирается
// по конфигурации: PostgreSQL при заданном DatabaseDSN, иначе файловое при
// заданном FileStoragePath, иначе in-memory.
func NewShareService(cfg *config.Config, logger *zap.Logger) (*ShareServiceImpl, error) {
	var store storage.ShareStorage

	switch {
	case cfg.DatabaseDSN != "":
		pg, err := storage.NewPostgresStorage(cfg.DatabaseDSN, logger)
		if err != nil {
			return nil, fmt.Errorf("create postgres storage: %w", err)
		}
		store = pg
		logger.Info("Using PostgreSQL storage")
	case cfg.FileStoragePath != "":
		fs, err := storage.NewFileStorage(cfg.FileStoragePath, logger)
		if err != nil {
			return nil, fmt.Errorf("create file storage: %w", err)
		}
		store = fs
		logger.Info("Using file storage", zap.String("path", cfg.FileStoragePath))
	default:
		store = storage.NewMemoryStorage(logger)
		logger.Info("Using in-memory storage")
	}

	return &ShareServiceImpl{
		storage: store,
		config:  cfg,
		logger:  logger,
	}, nil
}

// BuildShareURL строит shareable-ссылку на веб-приложение
func (s *ShareServiceImpl) BuildShareURL(expression, sizes string) (string, error) {
	if expression == "" {
		return "", errors.New("empty expression")
	}

	return encoding.BuildShareableURL(s.config.WebAppURL, expression, sizes)
}

// shortIDFor возвращает детерминированный короткий идентификатор ссылки
func shortIDFor(shareURL string) string {
	hash := sha256.Sum256([]byte(shareURL))
	return base64.URLEncoding.EncodeToString(hash[:])[:8]
}

// saveShareURL сохраняет ссылку под детерминированным идентификатором.
// При конфликте возвращает идентификатор уже сохраненной ссылки вместе
// с storage.ErrShareURLConflict.
func (s *ShareServiceImpl) saveShareURL(ctx context.Context, shareURL, userID string) (string, error) {
	shortID := shortIDFor(shareURL)

	if err := s.storage.Save(ctx, shortID, shareURL, userID); err != nil {
		if errors.Is(err, storage.ErrShareURLConflict) {
			if existingID, lookupErr := s.storage.GetShortIDByShareURL(ctx, shareURL); lookupErr == nil {
				return existingID, storage.ErrShareURLConflict
			}
			return shortID, storage.ErrShareURLConflict
		}
		return "", err
	}

	return shortID, nil
}

// CreateShare строит shareable-ссылку и сохраняет её под коротким идентификатором
func (s *ShareServiceImpl) CreateShare(ctx context.Context, expression, sizes, userID string) (string, string, error) {
	shareURL, err := s.BuildShareURL(expression, sizes)
	if err != nil {
		return "", "", err
	}

	shortID, err := s.saveShareURL(ctx, shareURL, userID)
	return shortID, shareURL, err
}

// CreateShortLink сохраняет уже построенную shareable-ссылку
func (s *ShareServiceImpl) CreateShortLink(ctx context.Context, shareURL, userID string) (string, error) {
	if shareURL == "" {
		return "", errors.New("empty URL")
	}

	if _, err := url.ParseRequestURI(shareURL); err != nil {
		return "", errors.New("invalid URL")
	}

	return s.saveShareURL(ctx, shareURL, userID)
}

// CreateSharesBatch строит и сохраняет пакет shareable-ссылок
func (s *ShareServiceImpl) CreateSharesBatch(ctx context.Context, batch []models.BatchRequestEntry, userID string) ([]models.BatchResponseEntry, error) {
	if len(batch) == 0 {
		return nil, errors.New("empty batch")
	}

	entries := make([]storage.BatchEntry, 0, len(batch))
	resp := make([]models.BatchResponseEntry, 0, len(batch))

	for _, req := range batch {
		shareURL, err := s.BuildShareURL(req.Expression, req.Sizes)
		if err != nil {
			return nil, fmt.Errorf("build share URL for correlation_id %s: %w", req.CorrelationID, err)
		}

		shortID := shortIDFor(shareURL)
		entries = append(entries, storage.BatchEntry{
			ShortID:  shortID,
			ShareURL: shareURL,
			UserID:   userID,
		})
		resp = append(resp, models.BatchResponseEntry{
			CorrelationID: req.CorrelationID,
			ShortURL:      s.config.BaseURL + "/" + shortID,
		})
	}

	if err := s.storage.SaveBatch(ctx, entries); err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}

	return resp, nil
}

// GetShareURL возвращает shareable-ссылку по короткому идентификатору
func (s *ShareServiceImpl) GetShareURL(ctx context.Context, shortID string) (string, error) {
	return s.storage.Get(ctx, shortID)
}

// GetUserShares возвращает все ссылки пользователя с полными короткими адресами
func (s *ShareServiceImpl) GetUserShares(ctx context.Context, userID string) ([]models.UserShare, error) {
	shares, err := s.storage.GetUserShares(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user shares: %w", err)
	}

	for i := range shares {
		shares[i].ShortURL = s.config.BaseURL + "/" + shares[i].ShortURL
	}

	return shares, nil
}

// DeleteUserShares помечает ссылки пользователя как удаленные. Большие
// пакеты разбиваются на части и удаляются несколькими воркерами.
func (s *ShareServiceImpl) DeleteUserShares(ctx context.Context, shortIDs []string, userID string) error {
	if len(shortIDs) == 0 {
		return nil
	}

	// Небольшие пакеты удаляем без запуска воркеров
	if len(shortIDs) <= s.config.BatchDeleteSequentialThreshold {
		return s.storage.BatchDelete(ctx, shortIDs, userID)
	}

	batchSize := s.config.BatchDeleteBatchSize
	if batchSize <= 0 {
		batchSize = len(shortIDs)
	}

	workers := s.config.BatchDeleteMaxWorkers
	if workers <= 0 {
		workers = 1
	}

	batches := make(chan []string)
	go func() {
		defer close(batches)
		for start := 0; start < len(shortIDs); start += batchSize {
			end := start + batchSize
			if end > len(shortIDs) {
				end = len(shortIDs)
			}
			select {
			case batches <- shortIDs[start:end]:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	errChan := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range batches {
				if err := s.storage.BatchDelete(ctx, batch, userID); err != nil {
					select {
					case errChan <- err:
					default:
					}
				}
			}
		}()
	}

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return fmt.Errorf("batch delete: %w", err)
	}

	return nil
}

// CheckConnection проверяет доступность хранилища
func (s *ShareServiceImpl) CheckConnection(ctx context.Context) error {
	checker, ok := s.storage.(storage.DatabaseChecker)
	if !ok {
		return errors.New("storage does not support connection check")
	}

	return checker.CheckConnection(ctx)
}

// GetStorage возвращает используемое хранилище
func (s *ShareServiceImpl) GetStorage() storage.ShareStorage {
	return s.storage
}
