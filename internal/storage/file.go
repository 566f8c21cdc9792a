package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/seriousseal/tensorshare/internal/models"
	"go.uber.org/zap"
)

// ShareRecord represents a record in the file storage
type ShareRecord struct {
	UUID      string `json:"uuid"`
	ShortID   string `json:"short_id"`
	ShareURL  string `json:"share_url"`
	UserID    string `json:"user_id,omitempty"`
	IsDeleted bool   `json:"is_deleted,omitempty"`
}

// FileStorage implements ShareStorage using a file
type FileStorage struct {
	filePath string
	shares   map[string]ShareRecord
	mutex    sync.RWMutex
	file     *os.File
	logger   *zap.Logger
}

// NewFileStorage creates a new FileStorage instance
func NewFileStorage(filePath string, logger *zap.Logger) (*FileStorage, error) {
	file, err := os.OpenFile(filePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	fs := &FileStorage{
		filePath: filePath,
		file:     file,
		shares:   make(map[string]ShareRecord),
		logger:   logger,
	}

	// Load existing data from file
	if err := fs.loadFromFile(); err != nil {
		logger.Error("Error loading data from file", zap.Error(err))
		// Не возвращаем ошибку, так как файл может быть пустым
	}

	return fs, nil
}

// loadFromFile loads data from the file
func (fs *FileStorage) loadFromFile() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	// Перемещаем указатель в начало файла
	if _, err := fs.file.Seek(0, 0); err != nil {
		return fmt.Errorf("error seeking to file start: %w", err)
	}

	decoder := json.NewDecoder(fs.file)
	for decoder.More() {
		var record ShareRecord
		if err := decoder.Decode(&record); err != nil {
			return fmt.Errorf("error decoding record: %w", err)
		}
		fs.shares[record.ShortID] = record
	}

	return nil
}

// Save сохраняет ссылку в файл, связывая её с userID.
// Повторное сохранение уже известной ссылки возвращает ErrShareURLConflict.
func (fs *FileStorage) Save(ctx context.Context, shortID, shareURL, userID string) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if existing, ok := fs.shares[shortID]; ok && !existing.IsDeleted {
		return ErrShareURLConflict
	}
	for existingID, record := range fs.shares {
		if record.ShareURL == shareURL && !record.IsDeleted && existingID != shortID {
			return ErrShareURLConflict
		}
	}

	record := ShareRecord{
		UUID:      uuid.NewString(),
		ShortID:   shortID,
		ShareURL:  shareURL,
		UserID:    userID,
		IsDeleted: false,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("error marshaling share record: %w", err)
	}

	if _, err := fs.file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("error writing to file: %w", err)
	}

	fs.shares[shortID] = record
	return nil
}

// Get получает полную ссылку по короткому идентификатору
func (fs *FileStorage) Get(ctx context.Context, shortID string) (string, error) {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	if record, exists := fs.shares[shortID]; exists {
		if record.IsDeleted {
			return "", ErrShareDeleted
		}
		return record.ShareURL, nil
	}

	return "", ErrShareNotFound
}

// SaveBatch сохраняет пакет ссылок
func (fs *FileStorage) SaveBatch(ctx context.Context, batch []BatchEntry) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	for _, entry := range batch {
		record := ShareRecord{
			UUID:      uuid.NewString(),
			ShortID:   entry.ShortID,
			ShareURL:  entry.ShareURL,
			UserID:    entry.UserID,
			IsDeleted: false,
		}

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("error marshaling share record: %w", err)
		}

		if _, err := fs.file.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("error writing to file: %w", err)
		}

		fs.shares[entry.ShortID] = record
	}

	return nil
}

// GetShortIDByShareURL получает короткий идентификатор по полной ссылке
func (fs *FileStorage) GetShortIDByShareURL(ctx context.Context, shareURL string) (string, error) {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	for shortID, record := range fs.shares {
		if record.ShareURL == shareURL && !record.IsDeleted {
			return shortID, nil
		}
	}

	return "", ErrShareNotFound
}

// GetUserShares получает все ссылки, сохраненные пользователем, из файла
func (fs *FileStorage) GetUserShares(ctx context.Context, userID string) ([]models.UserShare, error) {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	var userShares []models.UserShare
	seenIDs := make(map[string]bool) // Для избежания дублирования

	// Файл переоткрывается на чтение, так как fs.file используется для дозаписи
	file, err := os.OpenFile(fs.filePath, os.O_RDONLY, 0644)
	if err != nil {
		fs.logger.Error("Error opening file for reading user shares", zap.Error(err))
		return nil, fmt.Errorf("error opening file for reading: %w", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	for decoder.More() {
		var record ShareRecord
		if err := decoder.Decode(&record); err != nil {
			fs.logger.Error("Error decoding record for user shares", zap.Error(err))
			continue
		}
		if record.UserID == userID && !record.IsDeleted && !seenIDs[record.ShortID] {
			userShares = append(userShares, models.UserShare{
				ShortURL: record.ShortID,
				ShareURL: record.ShareURL,
			})
			seenIDs[record.ShortID] = true
		}
	}

	if len(userShares) == 0 {
		return []models.UserShare{}, nil
	}

	return userShares, nil
}

// CheckConnection проверяет доступность файла
func (fs *FileStorage) CheckConnection(ctx context.Context) error {
	fs.mutex.RLock()
	defer fs.mutex.RUnlock()

	if fs.file == nil {
		return fmt.Errorf("file is not open")
	}

	return nil
}

// BatchDelete помечает ссылки как удаленные для указанного пользователя
func (fs *FileStorage) BatchDelete(ctx context.Context, shortIDs []string, userID string) error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	// Обновляем записи в памяти
	for _, shortID := range shortIDs {
		if record, exists := fs.shares[shortID]; exists && record.UserID == userID {
			record.IsDeleted = true
			fs.shares[shortID] = record
		}
	}

	// Перезаписываем весь файл с обновленными данными
	if err := fs.rewriteFile(); err != nil {
		return fmt.Errorf("error rewriting file after batch delete: %w", err)
	}

	return nil
}

// rewriteFile перезаписывает файл с текущими данными из памяти
func (fs *FileStorage) rewriteFile() error {
	// Закрываем текущий файл
	if err := fs.file.Close(); err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}

	// Открываем файл для перезаписи
	file, err := os.OpenFile(fs.filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error opening file for rewrite: %w", err)
	}

	// Записываем все данные
	for _, record := range fs.shares {
		data, err := json.Marshal(record)
		if err != nil {
			file.Close()
			return fmt.Errorf("error marshaling record: %w", err)
		}
		if _, err := file.Write(append(data, '\n')); err != nil {
			file.Close()
			return fmt.Errorf("error writing record: %w", err)
		}
	}

	// Переоткрываем файл в режиме append для дальнейшей работы
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing rewritten file: %w", err)
	}

	fs.file, err = os.OpenFile(fs.filePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("error reopening file: %w", err)
	}

	return nil
}

// Sync принудительно синхронизирует данные с диском
func (fs *FileStorage) Sync() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if fs.file != nil {
		if err := fs.file.Sync(); err != nil {
			return fmt.Errorf("error syncing file: %w", err)
		}
	}

	return nil
}

// Close закрывает файл
func (fs *FileStorage) Close() error {
	fs.mutex.Lock()
	defer fs.mutex.Unlock()

	if fs.file != nil {
		if err := fs.file.Sync(); err != nil {
			fs.logger.Error("Error syncing file before close", zap.Error(err))
		}

		if err := fs.file.Close(); err != nil {
			return fmt.Errorf("error closing file: %w", err)
		}
		fs.file = nil
	}

	return nil
}
