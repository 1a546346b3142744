package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmarkovic/chirp/internal/domain"
	"github.com/dmarkovic/chirp/internal/repository"
)

// SessionCookie carries the signed session token.
const SessionCookie = "jwt"

type contextKey string

const userKey contextKey = "user"

// Auth resolves the session cookie to a user and attaches it to the request
// context. Every failure path returns the same body, so a caller cannot tell
// a bad token from a deleted user.
func Auth(jwtSecret string, users repository.UserRepository) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				unauthorized(w)
				return
			}

			token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (any, error) {
				return secret, nil
			})
			if err != nil || !token.Valid {
				unauthorized(w)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w)
				return
			}

			sub, _ := claims.GetSubject()
			userID, err := uuid.Parse(sub)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil || user == nil {
				unauthorized(w)
				return
			}
			user.PasswordHash = ""

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"UNAUTHORIZED","message":"Unauthorized"}}`))
}

// UserFrom extracts the authenticated user from the request context.
func UserFrom(ctx context.Context) *domain.User {
	return ctx.Value(userKey).(*domain.User)
}
