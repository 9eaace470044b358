package health

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/plamen9/airline-bingo/internal/infrastructure/json"
)

const version = "1.0.0"

type Handler struct {
	startedAt time.Time
	ready     atomic.Bool
}

func NewHandler() *Handler {
	h := &Handler{startedAt: time.Now()}
	h.ready.Store(true)
	return h
}

// SetReady flips the readiness flag, used during graceful shutdown so load
// balancers stop routing before the listener closes.
func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	json.Write(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
		Version: version,
	})
}

func (h *Handler) ReadyHandler(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		json.WriteFailure(w, http.StatusServiceUnavailable, "shutting down")
		return
	}
	h.HealthHandler(w, r)
}

func (h *Handler) LiveHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
