package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"
)

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func CORSMiddleware(allowedOrigins, allowedMethods, allowedHeaders string) func(http.Handler) http.Handler {
	origins := splitList(allowedOrigins)

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: splitList(allowedMethods),
		AllowedHeaders: splitList(allowedHeaders),
		// credentials cannot be combined with a wildcard origin
		AllowCredentials: !(len(origins) == 1 && origins[0] == "*"),
		MaxAge:           3600,
	})

	return c.Handler
}
