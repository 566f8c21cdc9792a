package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/seriousseal/tensorshare/internal/models"
	"go.uber.org/zap"
)

// ShareEntry представляет запись о ссылке в памяти
type ShareEntry struct {
	ShareURL  string
	UserID    string
	IsDeleted bool
}

// MemoryStorage реализует ShareStorage с использованием памяти
type MemoryStorage struct {
	mu     sync.RWMutex
	shares map[string]ShareEntry
	logger *zap.Logger
}

// NewMemoryStorage создает новый экземпляр MemoryStorage
func NewMemoryStorage(logger *zap.Logger) *MemoryStorage {
	return &MemoryStorage{
		shares: make(map[string]ShareEntry),
		logger: logger,
	}
}

// Save сохраняет ссылку в памяти, связывая её с userID.
// Короткие идентификаторы детерминированы, поэтому повторное сохранение
// той же ссылки попадает в ветку конфликта, а не перезаписывает запись.
func (ms *MemoryStorage) Save(ctx context.Context, shortID, shareURL, userID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if existing, ok := ms.shares[shortID]; ok && !existing.IsDeleted {
		return ErrShareURLConflict
	}
	for existingID, entry := range ms.shares {
		if entry.ShareURL == shareURL && !entry.IsDeleted && existingID != shortID {
			return ErrShareURLConflict
		}
	}

	ms.shares[shortID] = ShareEntry{
		ShareURL:  shareURL,
		UserID:    userID,
		IsDeleted: false,
	}
	return nil
}

// Get получает полную ссылку по короткому идентификатору
func (ms *MemoryStorage) Get(ctx context.Context, shortID string) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	entry, exists := ms.shares[shortID]
	if !exists {
		return "", ErrShareNotFound
	}

	if entry.IsDeleted {
		return "", ErrShareDeleted
	}

	return entry.ShareURL, nil
}

// GetShortIDByShareURL получает короткий идентификатор по полной ссылке
func (ms *MemoryStorage) GetShortIDByShareURL(ctx context.Context, shareURL string) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	for shortID, entry := range ms.shares {
		if entry.ShareURL == shareURL && !entry.IsDeleted {
			return shortID, nil
		}
	}

	return "", ErrShareNotFound
}

// SaveBatch сохраняет пакет ссылок
func (ms *MemoryStorage) SaveBatch(ctx context.Context, batch []BatchEntry) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, entry := range batch {
		ms.shares[entry.ShortID] = ShareEntry{
			ShareURL:  entry.ShareURL,
			UserID:    entry.UserID,
			IsDeleted: false,
		}
	}

	return nil
}

// GetUserShares получает все ссылки, сохраненные пользователем, из памяти
func (ms *MemoryStorage) GetUserShares(ctx context.Context, userID string) ([]models.UserShare, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var result []models.UserShare
	for shortID, entry := range ms.shares {
		if entry.UserID == userID && !entry.IsDeleted {
			result = append(result, models.UserShare{
				ShortURL: shortID,
				ShareURL: entry.ShareURL,
			})
		}
	}

	return result, nil
}

// CheckConnection проверяет доступность хранилища
func (ms *MemoryStorage) CheckConnection(ctx context.Context) error {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.shares == nil {
		return fmt.Errorf("storage is not initialized")
	}

	return nil
}

// BatchDelete помечает ссылки как удаленные для указанного пользователя
func (ms *MemoryStorage) BatchDelete(ctx context.Context, shortIDs []string, userID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, shortID := range shortIDs {
		if entry, exists := ms.shares[shortID]; exists && entry.UserID == userID {
			entry.IsDeleted = true
			ms.shares[shortID] = entry
		}
	}

	return nil
}
