// Package middleware HTTP middleware: аутентификация и метрики
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

const userIDHeader = "X-User-ID"

type userIDContextKey struct{}

// Auth извлекает ID пользователя из заголовка X-User-ID и кладет его в контекст
// Внешняя аутентификация выполняется на API gateway, сюда приходит уже
// проверенный идентификатор
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(userIDHeader)
		if userIDStr == "" {
			respondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			respondUnauthorized(w, "некорректный ID пользователя")
			return
		}

		ctx := context.WithValue(r.Context(), userIDContextKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDContextKey{}).(int64)
	return userID, ok
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
