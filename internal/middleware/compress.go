package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressMiddleware обрабатывает сжатие ответов и распаковку запросов.
// Поддерживаются кодировки zstd и gzip; для ответа zstd предпочитается,
// если клиент принимает обе.
func CompressMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Если запрос сжат, распаковываем его
		contentEncoding := r.Header.Get("Content-Encoding")
		switch {
		case strings.Contains(contentEncoding, "gzip"):
			// Проверяем, что тело запроса не пустое
			if r.ContentLength == 0 {
				http.Error(w, "Empty request body", http.StatusBadRequest)
				return
			}

			gz, err := gzip.NewReader(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			defer gz.Close()
			r.Body = gz

			// Устанавливаем правильный Content-Type
			if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-gzip") {
				r.Header.Set("Content-Type", "text/plain")
			}
		case strings.Contains(contentEncoding, "zstd"):
			if r.ContentLength == 0 {
				http.Error(w, "Empty request body", http.StatusBadRequest)
				return
			}

			zr, err := zstd.NewReader(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			defer zr.Close()
			r.Body = zr.IOReadCloser()
		}

		// Сжимаем ответ в кодировке, которую принимает клиент
		switch selectEncoding(r.Header.Get("Accept-Encoding")) {
		case "zstd":
			zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Encoding", "zstd")
			defer func() {
				if err := zw.Close(); err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
			}()

			next.ServeHTTP(compressResponseWriter{
				Writer:         zw,
				ResponseWriter: w,
			}, r)
		case "gzip":
			w.Header().Set("Content-Encoding", "gzip")
			gz := gzip.NewWriter(w)
			defer func() {
				if err := gz.Close(); err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
			}()

			next.ServeHTTP(compressResponseWriter{
				Writer:         gz,
				ResponseWriter: w,
			}, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// selectEncoding выбирает кодировку ответа по заголовку Accept-Encoding
func selectEncoding(acceptEncoding string) string {
	if strings.Contains(acceptEncoding, "zstd") {
		return "zstd"
	}
	if strings.Contains(acceptEncoding, "gzip") {
		return "gzip"
	}
	return ""
}

// compressResponseWriter оборачивает http.ResponseWriter для сжатия ответа
type compressResponseWriter struct {
	io.Writer
	http.ResponseWriter
}

// Write записывает данные в сжатый поток
func (w compressResponseWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

// WriteHeader записывает код состояния HTTP ответа
func (w compressResponseWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
}

// Header возвращает HTTP заголовки ответа
func (w compressResponseWriter) Header() http.Header {
	return w.ResponseWriter.Header()
}
