package middleware

import (
	"net/http"
	"time"

	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/gorilla/mux"
)

// NewCORSMiddleware allows any origin and answers preflight requests.
func NewCORSMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// NewLoggingMiddleware logs every request at debug level once it is served.
// Upgraded connections are logged when the upgrade handler returns.
func NewLoggingMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			if r.Header.Get("Upgrade") != "" {
				// the websocket upgrader needs the original writer to hijack the connection
				next.ServeHTTP(w, r)
				log.Debug("%s %s upgraded in %v", r.Method, r.URL.Path, time.Since(start))
				return
			}
			next.ServeHTTP(recorder, r)
			log.Debug("%s %s %d in %v", r.Method, r.URL.Path, recorder.status, time.Since(start))
		})
	}
}
