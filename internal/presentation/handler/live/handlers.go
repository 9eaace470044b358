package live

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/plamen9/airline-bingo/internal/infrastructure/ws"
	"go.uber.org/zap"
)

// Handler upgrades HTTP requests to websocket connections and hands them to
// the gateway core. After the handoff the connection is driven entirely by
// its read and write pumps.
type Handler struct {
	core     *ws.Core
	logger   *zap.SugaredLogger
	upgrader websocket.Upgrader
}

func NewHandler(core *ws.Core, logger *zap.SugaredLogger, allowedOrigins []string) *Handler {
	return &Handler{
		core:   core,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.logger.Warnw("ws upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	client := ws.NewClient(ws.NewConn(conn))
	h.core.Register() <- client

	go client.WritePump(h.core)
	go client.ReadPump(h.core)
}

func originChecker(allowed []string) func(*http.Request) bool {
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
	}

	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[origin] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
