package middleware

import (
	"net/http"

	"github.com/fieldplan/fieldplan/internal/api/response"
)

// RequireSuperuser returns middleware that rejects non-superuser identities with 403.
func RequireSuperuser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			identity := GetIdentity(r.Context())
			if identity == nil || !identity.IsSuperuser {
				response.Err(w, http.StatusForbidden, "FORBIDDEN", "Superuser access required", requestID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireWriter returns middleware that rejects read-only identities on
// mutating requests. Viewers may only GET.
func RequireWriter() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			requestID := GetRequestID(r.Context())
			identity := GetIdentity(r.Context())
			if identity == nil || !identity.CanWrite() {
				response.Err(w, http.StatusForbidden, "FORBIDDEN", "Write access required", requestID)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
