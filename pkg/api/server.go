package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/stoneworks/pkg/api/handlers"
	"github.com/cbodonnell/stoneworks/pkg/api/middleware"
	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port   int
	TLS    *TLSConfig
	Engine handlers.Engine
	// Events serves the websocket event stream at /events when set.
	Events http.Handler
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts.Engine, opts.Events),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter routes the API to e. CORS preflight requests are answered
// before routing.
func NewRouter(e handlers.Engine, events http.Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware())

	r.HandleFunc("/stats", handlers.HandleGetStats(e)).Methods(http.MethodGet)
	r.HandleFunc("/worlds/{world}/cells/{x}/{y}/{z}", handlers.HandleGetCell(e)).Methods(http.MethodGet)
	r.HandleFunc("/mutations", handlers.HandleEnqueueMutation(e)).Methods(http.MethodPost)
	r.HandleFunc("/schematics", handlers.HandleListSchematics(e)).Methods(http.MethodGet)
	r.HandleFunc("/schematics", handlers.HandleCreateSchematic(e)).Methods(http.MethodPost)
	r.HandleFunc("/schematics/{name}", handlers.HandleDeleteSchematic(e)).Methods(http.MethodDelete)
	r.HandleFunc("/schematics/{name}/paste", handlers.HandlePasteSchematic(e)).Methods(http.MethodPost)
	r.HandleFunc("/pastes", handlers.HandleListPastes(e)).Methods(http.MethodGet)
	r.HandleFunc("/pastes/{id}", handlers.HandleCancelPaste(e)).Methods(http.MethodDelete)
	if events != nil {
		r.Handle("/events", events).Methods(http.MethodGet)
	}

	return middleware.NewCORSMiddleware()(r)
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
