package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/odontia/odontia/internal/platform/httpx"
	"github.com/odontia/odontia/internal/rbac"
	"github.com/odontia/odontia/internal/shared"
)

// Middleware attaches the principal named by a valid bearer token. Requests
// with a missing or invalid token continue without one and are refused by the
// policy gate.
func Middleware(svc *Service, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			p, err := svc.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, shared.ErrInvalidCredentials) {
					logger.Debug("bearer token rejected", slog.String("path", r.URL.Path))
					next.ServeHTTP(w, r)
					return
				}
				logger.Error("authenticate", slog.Any("error", err))
				httpx.RespondError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(rbac.WithPrincipal(r.Context(), p)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
