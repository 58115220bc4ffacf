package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// publicPaths are exempt from authentication.
var publicPaths = map[string]bool{
	"/health": true,
}

// APIKeyAuth returns middleware that checks the X-API-Key header against the
// configured bcrypt hashes. With no hashes configured, authentication is
// disabled and every request passes.
func APIKeyAuth(keyHashes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(keyHashes) == 0 || publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-API-Key")
			if key == "" {
				// WebSocket clients cannot set headers; allow ?api_key=.
				key = r.URL.Query().Get("api_key")
			}
			if key == "" {
				unauthorized(w, "authorization required")
				return
			}

			for _, hash := range keyHashes {
				if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil {
					next.ServeHTTP(w, r)
					return
				}
			}
			unauthorized(w, "invalid api key")
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
