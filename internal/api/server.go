package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"nvivas/backend/uttt-go-server/internal/interfaces"
	"nvivas/backend/uttt-go-server/internal/logger"
	"nvivas/backend/uttt-go-server/pkg/models"
)

// Lobby is the part of the hub the HTTP layer talks to.
type Lobby interface {
	interfaces.Hub
	RegisterClient(client interfaces.Client)
	RoomList(ctx context.Context) ([]models.RoomInfo, error)
}

// NewServer wires routes and returns an http.Handler.
func NewServer(lobby Lobby, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	h := &handlers{lobby: lobby, upgrader: newUpgrader(allowedOrigins)}
	r.Get("/healthz", h.health)
	r.Get("/ws", h.connect)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/simple/moves", h.simpleMove)
		r.Post("/ultimate/moves", h.ultimateMove)
		r.Get("/rooms", h.rooms)
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("Request served", logger.Fields{
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    ww.Status(),
			"duration":  time.Since(start).String(),
			"requestID": middleware.GetReqID(r.Context()),
		})
	})
}
