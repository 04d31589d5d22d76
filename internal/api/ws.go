package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"nvivas/backend/uttt-go-server/internal/client"
	"nvivas/backend/uttt-go-server/internal/logger"
)

// newUpgrader accepts any origin when allowedOrigins is empty. Requests
// without an Origin header come from non-browser clients and are allowed.
func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.ToLower(strings.TrimRight(o, "/"))] = true
	}

	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowed) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			return allowed[strings.ToLower(u.Scheme+"://"+u.Host)]
		},
	}
}

// connect upgrades the request and hands the connection to a new client.
func (h *handlers) connect(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", logger.Fields{
			"error": err.Error(),
			"path":  r.URL.Path,
		})
		return
	}

	c := client.NewClient(uuid.NewString(), h.lobby, conn)

	h.lobby.RegisterClient(c)

	go c.ReadPump()
	go c.WritePump()

	logger.Info("Client connected", logger.Fields{
		"clientID": c.GetID(),
		"remote":   conn.RemoteAddr().String(),
	})
}
