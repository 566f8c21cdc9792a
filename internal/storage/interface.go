package storage

import (
	"context"

	"github.com/seriousseal/tensorshare/internal/models"
)

// BatchEntry используется для передачи данных при пакетном сохранении
type BatchEntry struct {
	ShortID  string
	ShareURL string
	UserID   string
}

// ShareStorage интерфейс для хранилища шаринг-ссылок
type ShareStorage interface {
	// Save сохраняет ссылку в хранилище, связывая её с userID.
	// Возвращает ErrShareURLConflict, если ссылка уже сохранена.
	Save(ctx context.Context, shortID, shareURL, userID string) error

	// Get получает полную ссылку по короткому идентификатору
	Get(ctx context.Context, shortID string) (string, error)

	// GetShortIDByShareURL получает короткий идентификатор по полной ссылке.
	// Возвращает ErrShareNotFound, если ссылка не найдена.
	GetShortIDByShareURL(ctx context.Context, shareURL string) (string, error)

	// SaveBatch сохраняет пакет ссылок
	SaveBatch(ctx context.Context, batch []BatchEntry) error

	// GetUserShares получает все ссылки, сохраненные пользователем
	GetUserShares(ctx context.Context, userID string) ([]models.UserShare, error)

	// BatchDelete помечает ссылки пользователя как удаленные
	BatchDelete(ctx context.Context, shortIDs []string, userID string) error
}

// DatabaseChecker интерфейс для проверки соединения с базой данных
type DatabaseChecker interface {
	// CheckConnection проверяет соединение с базой данных
	CheckConnection(ctx context.Context) error
}
