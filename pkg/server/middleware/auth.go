package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// PasswordHeader carries the shared secret on every gated request.
const PasswordHeader = "X-App-Password"

// SharedSecret gates a route tree behind the configured password. The
// comparison is constant-time; a wrong or missing header gets a 401
// without revealing which.
func SharedSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			supplied := req.Header.Get(PasswordHeader)
			if subtle.ConstantTimeCompare([]byte(supplied), []byte(secret)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "incorrect password"})
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}
