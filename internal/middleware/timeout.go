package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"violation-tracker/internal/model"
)

const defaultRequestTimeout = 30 * time.Second

// Timeout bounds a request. Expired requests get a 503 error envelope.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	body, _ := json.Marshal(model.APIResponse{Status: model.StatusError, Message: "Request timed out"})

	return func(next http.Handler) http.Handler {
		bounded := http.TimeoutHandler(next, timeout, string(body))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Handlers overwrite this; it only survives on the timeout path.
			w.Header().Set("Content-Type", "application/json")
			bounded.ServeHTTP(w, r)
		})
	}
}
