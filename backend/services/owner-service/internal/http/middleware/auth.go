package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"isuride/backend/services/owner-service/internal/models"
	"isuride/backend/services/owner-service/internal/service"
)

type contextKey string

const ownerKey contextKey = "owner"

// OwnerSessionCookie carries the owner's access token.
const OwnerSessionCookie = "owner_session"

// OwnerAuthenticator resolves credentials to owners.
type OwnerAuthenticator interface {
	AuthenticateSession(ctx context.Context, token string) (*models.Owner, error)
	AuthenticateBearer(ctx context.Context, token string) (*models.Owner, error)
}

// OwnerAuth accepts an owner_session cookie or an "Authorization: Bearer" JWT and
// stores the resolved owner in the request context. A bearer header is ignored when
// JWTs are not configured.
func OwnerAuth(auth OwnerAuthenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var (
				owner *models.Owner
				err   error
			)
			bearer, hasBearer := bearerToken(r)
			if hasBearer {
				owner, err = auth.AuthenticateBearer(r.Context(), bearer)
			}
			// Without a JWT secret the header is ignored and the cookie decides.
			if !hasBearer || errors.Is(err, service.ErrBearerDisabled) {
				cookie, cookieErr := r.Cookie(OwnerSessionCookie)
				if cookieErr != nil || cookie.Value == "" {
					writeError(w, http.StatusUnauthorized, "owner_session cookie is required")
					return
				}
				owner, err = auth.AuthenticateSession(r.Context(), cookie.Value)
			}

			if err != nil {
				switch {
				case errors.Is(err, service.ErrOwnerNotFound):
					writeError(w, http.StatusUnauthorized, "invalid access token")
				default:
					logger.Error("owner authentication failed", zap.Error(err))
					writeError(w, http.StatusInternalServerError, "failed to authenticate")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), owner)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// WithOwner returns a context carrying owner.
func WithOwner(ctx context.Context, owner *models.Owner) context.Context {
	return context.WithValue(ctx, ownerKey, owner)
}

// OwnerFromContext retrieves the authenticated owner.
func OwnerFromContext(ctx context.Context) (*models.Owner, bool) {
	owner, ok := ctx.Value(ownerKey).(*models.Owner)
	return owner, ok && owner != nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json;charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
