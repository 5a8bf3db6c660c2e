package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/quillstack/notes-server/internal/api/problem"
)

// APIKeyHeader carries the shared secret on mutating requests.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth gates a handler behind a shared-secret header. The compare is
// constant-time so the key length and prefix cannot be probed.
func APIKeyAuth(apiKey string, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil, env)
				return
			}

			provided := r.Header.Get(APIKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", nil, env)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
