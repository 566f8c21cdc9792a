package encoding

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
)

// ErrCompression возвращается, когда движок сжатия не удалось
// инициализировать или корректно довести поток до конца.
var ErrCompression = errors.New("compression failed")

// Compress сжимает данные в gzip-кадрированный deflate-поток с
// максимальной степенью сжатия. Вход обрабатывается целиком за один
// вызов; для одинакового входа результат всегда одинаков.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("%w: writer init: %w", ErrCompression, err)
	}

	if _, err := zw.Write(data); err != nil {
		zw.Close() //nolint:errcheck // состояние кодека освобождается, ошибку записи уже возвращаем
		return nil, fmt.Errorf("%w: write: %w", ErrCompression, err)
	}

	// Close дописывает остаток потока и gzip-трейлер
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: stream finish: %w", ErrCompression, err)
	}

	return buf.Bytes(), nil
}
