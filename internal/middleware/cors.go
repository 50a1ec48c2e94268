package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS wraps the whole HTTP handler, so preflight requests are answered
// before routing.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", TraceIDHeader},
		ExposedHeaders: []string{TraceIDHeader},
	})
	return c.Handler
}
