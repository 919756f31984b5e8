package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/logabaalan777/property-listing/controllers"
	"github.com/logabaalan777/property-listing/utils"
)

// Auth validates the bearer token and injects the caller's user id into the
// request context under controllers.UserIDKey.
func Auth(jwtManager *utils.JWTManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenHeader := r.Header.Get("Authorization")
			if tokenHeader == "" {
				logger.Debug("missing authorization header",
					zap.String("method", r.Method), zap.String("path", r.URL.Path))
				controllers.WriteError(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			tokenParts := strings.Split(tokenHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				controllers.WriteError(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := jwtManager.Validate(tokenParts[1])
			if err != nil {
				logger.Debug("token rejected", zap.Error(err))
				controllers.WriteError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), controllers.UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
