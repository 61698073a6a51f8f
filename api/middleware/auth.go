package middleware

import (
	"net/http"
	"strings"

	"github.com/listplus/listplus-backend/api/responses"
	pkgauth "github.com/listplus/listplus-backend/pkg/auth"
	"github.com/listplus/listplus-backend/pkg/config"
	pkgerrors "github.com/listplus/listplus-backend/pkg/errors"
	"github.com/listplus/listplus-backend/pkg/logger"
)

// Auth validates a bearer identity token and seeds the request context with
// the verified subject.
func Auth(cfg config.AuthConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseIdentityToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithUserID(r.Context(), claims.UID)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.UID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
