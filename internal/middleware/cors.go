package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows browser clients from origins; an empty list allows any origin.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.New(corsOptions(origins)).Handler
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		// Retry-After accompanies 429s from the rate limiter.
		ExposedHeaders: []string{"Retry-After", requestIDHeader},
		MaxAge:         3600,
		// Bearer tokens travel in headers, never cookies.
		AllowCredentials: false,
	}
}
