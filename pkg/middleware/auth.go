package middleware

import (
	"net/http"
	"strings"

	"nutriverse-auth/pkg/utils"

	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	return token, token != ""
}

// AuthBearer validates the session token and puts the caller identity in the
// request context. The user record itself is resolved by the handler.
func AuthBearer(tokens *utils.TokenManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing auth token.")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				logger.Warn("Invalid or expired session token",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token.")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Mobile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
