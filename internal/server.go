package internal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/websocket"

	"github.com/plazahq/plaza/internal/db"
	"github.com/plazahq/plaza/internal/hub"
	"github.com/plazahq/plaza/internal/logging"
	"github.com/plazahq/plaza/internal/middleware"
	"github.com/plazahq/plaza/internal/routes"
)

// NewHandler wires the full server handler: routes, floor hub, auth. Tests
// mount this on an httptest server.
func NewHandler(database *sql.DB, floors *hub.Manager, logger *zap.SugaredLogger) http.Handler {
	h := routes.NewRouteHandler(database, floors, logger)
	mux := http.NewServeMux()
	createRoutes(mux, h)
	return middleware.BearerAuth(mux, database)
}

// CreateAndListen runs the plaza server until SIGINT/SIGTERM.
func CreateAndListen(debug bool, host string, port int, logFile string) {
	logger := logging.New(logFile, debug)
	defer func() { _ = logger.Sync() }()

	database := db.GetDB()
	defer database.Close()

	floors := hub.NewManager(logger)
	handler := NewHandler(database, floors, logger)

	// No blanket timeouts here: the floor websockets are long-lived.
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		ReadHeaderTimeout: 5 * time.Second,
		Handler:           handler,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Infof("starting server on %s", server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http server error: %v", err)
		}
		logger.Info("stopped serving new connections")
	}()

	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("http shutdown error: %v", err)
	}
	logger.Info("graceful shutdown complete")
}

// createRoutes creates the routing rules for the webserver
func createRoutes(mux *http.ServeMux, h *routes.RouteHandler) {
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.HandleFunc("GET /status", h.Status)
	mux.HandleFunc("GET /metrics", h.Metrics)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	floorHandler := websocket.Server{
		Handshake: websocketHandshake,
		Handler:   h.FloorWS,
	}
	mux.Handle("GET /floor/{id}", floorHandler)
}

func websocketHandshake(_ *websocket.Config, _ *http.Request) error { return nil }
