package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq" // Используем pq для проверки ошибки и массивов в запросах
	"github.com/seriousseal/tensorshare/internal/models"
	"go.uber.org/zap"
)

// maxBatchSize ограничивает размер одного UPDATE при массовом удалении
const maxBatchSize = 1000

// PostgresStorage реализует ShareStorage с использованием PostgreSQL
type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStorage создает новый экземпляр PostgresStorage
func NewPostgresStorage(dsn string, logger *zap.Logger) (*PostgresStorage, error) {
	// Подключение к базе данных
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	// Проверка соединения
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		// Закрываем соединение в случае ошибки Ping
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Failed to close DB connection after ping error", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("database connection check error: %w", err)
	}

	// Создание таблицы shares, если её ещё нет
	createTableSQL := `CREATE TABLE IF NOT EXISTS shares (` +
		`short_id VARCHAR(255) PRIMARY KEY,` +
		`share_url TEXT NOT NULL UNIQUE,` +
		`user_id VARCHAR(255) NOT NULL DEFAULT '',` +
		`is_deleted BOOLEAN NOT NULL DEFAULT FALSE` +
		`)`
	_, err = db.ExecContext(ctx, createTableSQL)
	if err != nil {
		// Закрываем соединение, если не удалось создать таблицу
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("Failed to close DB connection after table creation error", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("table creation error: %w", err)
	}

	return &PostgresStorage{
		db:     db,
		logger: logger,
	}, nil
}

// Save сохраняет ссылку в хранилище.
// Нарушение уникальности short_id или share_url транслируется в ErrShareURLConflict.
func (ps *PostgresStorage) Save(ctx context.Context, shortID, shareURL, userID string) error {
	_, err := ps.db.ExecContext(ctx,
		"INSERT INTO shares (short_id, share_url, user_id) VALUES ($1, $2, $3)",
		shortID, shareURL, userID)
	if err != nil {
		// Проверяем, является ли ошибка нарушением уникальности от lib/pq
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // 23505 = unique_violation
			return ErrShareURLConflict
		}
		return fmt.Errorf("save share error: %w", err)
	}
	return nil
}

// Get получает полную ссылку по короткому идентификатору
func (ps *PostgresStorage) Get(ctx context.Context, shortID string) (string, error) {
	var (
		shareURL  string
		isDeleted bool
	)
	err := ps.db.QueryRowContext(ctx,
		"SELECT share_url, is_deleted FROM shares WHERE short_id = $1",
		shortID).Scan(&shareURL, &isDeleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrShareNotFound
		}
		return "", fmt.Errorf("get share error: %w", err)
	}
	if isDeleted {
		return "", ErrShareDeleted
	}
	return shareURL, nil
}

// GetShortIDByShareURL получает короткий идентификатор по полной ссылке
func (ps *PostgresStorage) GetShortIDByShareURL(ctx context.Context, shareURL string) (string, error) {
	var shortID string
	err := ps.db.QueryRowContext(ctx,
		"SELECT short_id FROM shares WHERE share_url = $1",
		shareURL).Scan(&shortID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrShareNotFound
		}
		return "", fmt.Errorf("error getting short_id by share_url: %w", err)
	}
	return shortID, nil
}

// SaveBatch сохраняет пакет ссылок в PostgreSQL с использованием транзакции
func (ps *PostgresStorage) SaveBatch(ctx context.Context, batch []BatchEntry) error {
	if len(batch) == 0 {
		return nil // Нет смысла открывать транзакцию для пустого батча
	}

	// Начинаем транзакцию
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("transaction start error: %w", err)
	}
	// Гарантируем откат транзакции в случае ошибки
	defer tx.Rollback() //nolint:errcheck // Вызов Rollback на завершенной транзакции безопасен

	// Подготавливаем запрос для вставки
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO shares (short_id, share_url, user_id) VALUES ($1, $2, $3) ON CONFLICT (short_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("query preparation error: %w", err)
	}
	// Закрываем statement после завершения функции SaveBatch
	defer stmt.Close()

	// Выполняем вставку для каждой записи в пакете
	for _, entry := range batch {
		if _, err := stmt.ExecContext(ctx, entry.ShortID, entry.ShareURL, entry.UserID); err != nil {
			return fmt.Errorf("insert query execution error for shortID %s: %w", entry.ShortID, err)
		}
	}

	// Если все вставки прошли успешно, коммитим транзакцию
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit error: %w", err)
	}

	return nil
}

// GetUserShares получает все ссылки, сохраненные пользователем
func (ps *PostgresStorage) GetUserShares(ctx context.Context, userID string) ([]models.UserShare, error) {
	rows, err := ps.db.QueryContext(ctx,
		"SELECT short_id, share_url FROM shares WHERE user_id = $1 AND is_deleted = FALSE",
		userID)
	if err != nil {
		return nil, fmt.Errorf("get user shares error: %w", err)
	}
	defer rows.Close()

	var shares []models.UserShare
	for rows.Next() {
		var share models.UserShare
		if err := rows.Scan(&share.ShortURL, &share.ShareURL); err != nil {
			return nil, fmt.Errorf("scan user share error: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user shares rows error: %w", err)
	}

	return shares, nil
}

// BatchDelete помечает ссылки пользователя как удаленные одним UPDATE на чанк.
// Большие списки разбиваются на чанки по maxBatchSize идентификаторов.
func (ps *PostgresStorage) BatchDelete(ctx context.Context, shortIDs []string, userID string) error {
	if len(shortIDs) == 0 {
		return nil
	}

	for start := 0; start < len(shortIDs); start += maxBatchSize {
		end := start + maxBatchSize
		if end > len(shortIDs) {
			end = len(shortIDs)
		}
		chunk := shortIDs[start:end]

		_, err := ps.db.ExecContext(ctx,
			"UPDATE shares SET is_deleted = TRUE WHERE short_id = ANY($1) AND user_id = $2 AND is_deleted = FALSE",
			pq.Array(chunk), userID)
		if err != nil {
			return fmt.Errorf("batch delete error: %w", err)
		}
	}

	return nil
}

// Close закрывает соединение с базой данных
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

// CheckConnection проверяет соединение с базой данных
func (ps *PostgresStorage) CheckConnection(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}
