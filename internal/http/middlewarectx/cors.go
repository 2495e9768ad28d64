package middlewarectx

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORSOptions — настройки cross-origin доступа для браузерных клиентов.
type CORSOptions struct {
	AllowedOrigins   []string
	AllowCredentials bool
	MaxAge           int
}

// CORS возвращает middleware, разрешающий запросы с перечисленных origin.
// Пустой список origin отключает CORS-заголовки.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(opts.AllowedOrigins))
	for _, origin := range opts.AllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"WWW-Authenticate"},
		AllowCredentials: opts.AllowCredentials,
		MaxAge:           opts.MaxAge,
	})
}
