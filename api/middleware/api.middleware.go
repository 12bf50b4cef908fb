package middleware

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"
)

type CORSConfig struct {
	AllowedOrigins []string
}

// CORS allows read access and filter updates from the configured origins.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	origins := config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
}

// RequestLogger writes one access line per request to the service log.
func RequestLogger(next http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, p handlers.LogFormatterParams) {
		nuts.L.Infof("[HTTP] %s %s %d %dB %s",
			p.Request.Method, p.URL.RequestURI(), p.StatusCode, p.Size, time.Since(p.TimeStamp))
	})
}

// Recover turns handler panics into 500 responses.
func Recover(next http.Handler) http.Handler {
	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(next)
}

type recoveryLogger struct{}

func (recoveryLogger) Println(args ...interface{}) {
	nuts.L.Errorf("[HTTP] Recovered from panic: %v", args)
}
