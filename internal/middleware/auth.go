package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/seriousseal/tensorshare/internal/models"
)

// contextKey используется как ключ для значений в контексте
type contextKey string

const (
	// UserIDKey используется как ключ для хранения ID пользователя в контексте
	UserIDKey  contextKey = "user_id"
	cookieName string     = "user_id"
	tokenTTL              = 24 * time.Hour
)

// UserIDFromContext извлекает ID пользователя, добавленный WithAuth
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GenerateUserID генерирует уникальный ID пользователя
func GenerateUserID() string {
	return uuid.New().String()
}

// WithAuth возвращает middleware аутентификации пользователя.
// Валидный JWT из куки дает существующий userID; при отсутствии куки
// или невалидном токене выпускается новый токен с новым userID.
func WithAuth(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(cookieName); err == nil {
				claims := &models.UserClaims{}
				token, parseErr := jwt.ParseWithClaims(cookie.Value, claims,
					func(t *jwt.Token) (interface{}, error) {
						if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
							return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
						}
						return []byte(secretKey), nil
					})
				if parseErr == nil && token.Valid {
					ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			// Куки нет или токен невалиден - выпускаем новый
			userID := GenerateUserID()
			token, err := createToken(userID, secretKey)
			if err != nil {
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cookieName,
				Value:    token,
				Path:     "/",
				Expires:  time.Now().Add(tokenTTL),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// createToken создает JWT токен для пользователя
func createToken(userID, secretKey string) (string, error) {
	claims := &models.UserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}
