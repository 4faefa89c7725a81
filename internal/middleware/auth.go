package middleware

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/plazahq/plaza/internal/dal"
)

type contextKey string

const (
	userIDKey   contextKey = "userId"
	usernameKey contextKey = "username"
	tokenKey    contextKey = "token"
)

// BearerAuth is a middleware that resolves the Authorization header to a
// user via the token table. The account endpoints are whitelisted.
func BearerAuth(next http.Handler, db *sql.DB) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/register", "/login", "/healthz":
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeAuthError(w)
			return
		}

		user, err := dal.GetUserByToken(db, token)
		if err != nil {
			log.Printf("auth error: %v", err)
			writeAuthError(w)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, user.Id)
		ctx = context.WithValue(ctx, usernameKey, user.Name)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="plaza"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// GetUserID retrieves the authenticated user's id in endpoint handlers.
func GetUserID(r *http.Request) string {
	id, _ := r.Context().Value(userIDKey).(string)
	return id
}

// GetUsername retrieves the authenticated user's display name.
func GetUsername(r *http.Request) string {
	username, _ := r.Context().Value(usernameKey).(string)
	return username
}

// GetToken retrieves the bearer token the request authenticated with.
func GetToken(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}
