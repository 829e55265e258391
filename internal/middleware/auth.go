package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ArmanAleqyan/langtrio/internal/model"
	"github.com/ArmanAleqyan/langtrio/internal/webutil"
)

// TokenAuthenticator resolves a bearer token to the user it was issued to.
// Implemented by the auth service; an interface here keeps the middleware
// free of a service import.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*model.User, error)
}

// TokenAuthMiddleware guards admin routes: it requires a valid, unrevoked
// bearer token issued to an admin or moderator and threads the principal
// through the request context.
func TokenAuthMiddleware(auth TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Auth failed: Authorization header missing")
				webutil.FailMessage(w, http.StatusUnauthorized, "Unauthenticated")
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				logger.Warn("Auth failed: Invalid Authorization header format")
				webutil.FailMessage(w, http.StatusUnauthorized, "Unauthenticated")
				return
			}

			user, err := auth.Authenticate(r.Context(), headerParts[1])
			if err != nil {
				logger.Warn("Auth failed: Invalid or revoked token", "error", err)
				webutil.FailMessage(w, http.StatusUnauthorized, "Unauthenticated")
				return
			}

			ctx := context.WithValue(r.Context(), model.PrincipalKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal returns the authenticated user stored by TokenAuthMiddleware.
func GetPrincipal(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(model.PrincipalKey).(*model.User)
	if !ok {
		return nil, model.NewAppError("UNAUTHORIZED", "Unauthenticated", "", model.ErrUnauthorized)
	}
	return user, nil
}
