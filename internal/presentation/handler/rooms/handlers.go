package rooms

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/plamen9/airline-bingo/internal/domain"
	"github.com/plamen9/airline-bingo/internal/infrastructure/json"
	"github.com/plamen9/airline-bingo/internal/infrastructure/ords"
	"github.com/plamen9/airline-bingo/internal/infrastructure/validate"
	"github.com/plamen9/airline-bingo/internal/infrastructure/ws"
	"go.uber.org/zap"
)

// Broadcaster pushes an event to every connection in a room channel. The
// gateway core satisfies it; tests substitute a recorder.
type Broadcaster interface {
	Broadcast(roomCode string, frame *ws.Frame, opts ...ws.BroadcastOption)
}

var (
	validRoomCode    = validate.Field("roomCode", validate.Required(), validate.Length(6), validate.Regex(`^[A-Z0-9]{6}$`))
	validDisplayName = validate.Field("displayName", validate.Required(), validate.MaxLength(30))
	validUserID      = validate.Field("userId", validate.Required(), validate.MaxLength(64))
)

// Handler owns the game action endpoints. Every action validates locally
// where it can, delegates the authoritative effect to ORDS, and only then
// touches the registry cache and broadcasts — a failed external call leaves
// both untouched.
type Handler struct {
	ords     *ords.Client
	registry domain.RoomRegistry
	gateway  Broadcaster
	logger   *zap.SugaredLogger
}

func NewHandler(ordsClient *ords.Client, registry domain.RoomRegistry, gateway Broadcaster, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		ords:     ordsClient,
		registry: registry,
		gateway:  gateway,
		logger:   logger,
	}
}

func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationFailure(w, err)
		return
	}
	if err := validDisplayName(req.AdminName); err != nil {
		json.WriteValidationFailure(w, err)
		return
	}
	if err := validUserID(req.AdminID); err != nil {
		json.WriteValidationFailure(w, err)
		return
	}

	res, err := h.ords.CreateRoom(r.Context(), ords.CreateRoomParams{
		AdminID:       req.AdminID,
		AdminName:     req.AdminName,
		UseFreeCenter: req.UseFreeCenter,
	})
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}

	if res.Success && res.RoomCode != "" {
		h.registry.Ensure(res.RoomCode)
		h.registry.SetAdmin(res.RoomCode, req.AdminID)
		h.logger.Infow("room created", "room", res.RoomCode, "admin", req.AdminID)
	}

	json.Write(w, http.StatusOK, res)
}

func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomCode, err := roomCodeParam(r)
	if err != nil {
		json.WriteValidationFailure(w, err)
		return
	}

	res, err := h.ords.GetRoom(r.Context(), roomCode)
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}

	if res.Success {
		// Refresh the cache only for rooms the registry already tracks; a
		// lookup must not resurrect an evicted entry.
		h.registry.SetStatus(roomCode, domain.Status(res.Status))
		h.registry.SetAdmin(roomCode, res.AdminID)
	}

	json.Write(w, http.StatusOK, res)
}

func (h *Handler) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomCode, err := roomCodeParam(r)
	if err != nil {
		json.WriteValidationFailure(w, err)
		return
	}

	var req joinRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationFailure(w, err)
		return
	}
	if err := validDisplayName(req.DisplayName); err != nil {
		json.WriteValidationFailure(w, err)
		return
	}
	if err := validUserID(req.UserID); err != nil {
		json.WriteValidationFailure(w, err)
		return
	}

	room, err := h.ords.GetRoom(r.Context(), roomCode)
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}
	if !room.Success {
		json.WriteNotFoundFailure(w, "Room not found")
		return
	}

	res, err := h.ords.JoinRoom(r.Context(), roomCode, req.UserID, req.DisplayName)
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}

	if res.Success {
		h.registry.SetStatus(roomCode, domain.Status(room.Status))
		h.registry.SetAdmin(roomCode, room.AdminID)
	}

	// The playerJoined announcement rides on the socket joinRoom event, so
	// it can exclude the sender's own connection.
	json.Write(w, http.StatusOK, res)
}

func (h *Handler) ListPlayersHandler(w http.ResponseWriter, r *http.Request) {
	roomCode, err := roomCodeParam(r)
	if err != nil {
		json.WriteValidationFailure(w, err)
		return
	}

	res, err := h.ords.ListPlayers(r.Context(), roomCode)
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}

	json.Write(w, http.StatusOK, res)
}

func (h *Handler) StartGameHandler(w http.ResponseWriter, r *http.Request) {
	roomCode, req, err := h.adminAction(w, r)
	if err != nil {
		return
	}

	if status, ok := h.registry.Status(roomCode); ok && status != domain.StatusWaiting {
		json.WriteFailure(w, http.StatusConflict, "Game has already started")
		return
	}

	res, err := h.ords.Start(r.Context(), roomCode, req.AdminID)
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}

	if res.Success {
		h.registry.SetStatus(roomCode, domain.StatusStarted)
		h.gateway.Broadcast(roomCode, ws.NewGameStarted(roomCode))
		h.logger.Infow("game started", "room", roomCode)
	}

	json.Write(w, http.StatusOK, res)
}

func (h *Handler) DrawHandler(w http.ResponseWriter, r *http.Request) {
	roomCode, req, err := h.adminAction(w, r)
	if err != nil {
		return
	}

	if status, ok := h.registry.Status(roomCode); ok && status != domain.StatusStarted {
		json.WriteFailure(w, http.StatusConflict, "Game is not in progress")
		return
	}

	res, err := h.ords.Draw(r.Context(), roomCode, req.AdminID)
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}

	// A second concurrent draw may be rejected upstream (pool exhausted or
	// sequence already advanced); that is a normal per-caller failure.
	if res.Success {
		h.gateway.Broadcast(roomCode, ws.NewAirlineDrawn(roomCode, res.AirlineID, res.AirlineName, res.DrawOrder))
		h.logger.Infow("airline drawn", "room", roomCode, "airline", res.AirlineName, "order", res.DrawOrder)
	}

	json.Write(w, http.StatusOK, res)
}

func (h *Handler) GetCardHandler(w http.ResponseWriter, r *http.Request) {
	roomCode, err := roomCodeParam(r)
	if err != nil {
		json.WriteValidationFailure(w, err)
		return
	}

	userID := chi.URLParam(r, "userId")
	if err := validUserID(userID); err != nil {
		json.WriteValidationFailure(w, err)
		return
	}

	res, err := h.ords.GetCard(r.Context(), roomCode, userID)
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}

	json.Write(w, http.StatusOK, res)
}

func (h *Handler) GetDrawnHandler(w http.ResponseWriter, r *http.Request) {
	roomCode, err := roomCodeParam(r)
	if err != nil {
		json.WriteValidationFailure(w, err)
		return
	}

	res, err := h.ords.GetDrawn(r.Context(), roomCode)
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}

	json.Write(w, http.StatusOK, res)
}

func (h *Handler) ClaimHandler(w http.ResponseWriter, r *http.Request) {
	roomCode, err := roomCodeParam(r)
	if err != nil {
		json.WriteValidationFailure(w, err)
		return
	}

	var req claimRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationFailure(w, err)
		return
	}
	if err := validUserID(req.UserID); err != nil {
		json.WriteValidationFailure(w, err)
		return
	}

	if status, ok := h.registry.Status(roomCode); ok && status != domain.StatusStarted {
		json.WriteFailure(w, http.StatusConflict, "Game is not in progress")
		return
	}

	res, err := h.ords.Claim(r.Context(), roomCode, req.UserID)
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}

	// The local card check is advisory only; a claim counts when ORDS
	// validates it against the stored card and draw sequence. An invalid
	// claim is a normal negative result for the requester alone.
	if res.Success && res.Valid == 1 {
		h.gateway.Broadcast(roomCode, ws.NewBingoWinner(roomCode, res.WinnerID, res.WinnerName))
		h.registry.SetStatus(roomCode, domain.StatusFinished)
		h.logger.Infow("bingo winner", "room", roomCode, "winner", res.WinnerID)
	}

	json.Write(w, http.StatusOK, res)
}

func (h *Handler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	roomCode, req, err := h.adminAction(w, r)
	if err != nil {
		return
	}

	res, err := h.ords.Reset(r.Context(), roomCode, req.AdminID)
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}

	if res.Success {
		h.registry.SetStatus(roomCode, domain.StatusWaiting)
		h.gateway.Broadcast(roomCode, ws.NewGameReset(roomCode))
		h.logger.Infow("game reset", "room", roomCode)
	}

	json.Write(w, http.StatusOK, res)
}

func (h *Handler) KickHandler(w http.ResponseWriter, r *http.Request) {
	roomCode, err := roomCodeParam(r)
	if err != nil {
		json.WriteValidationFailure(w, err)
		return
	}

	var req kickRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationFailure(w, err)
		return
	}
	if err := validUserID(req.UserID); err != nil {
		json.WriteValidationFailure(w, err)
		return
	}
	if !h.isAdmin(w, roomCode, req.AdminID) {
		return
	}

	res, err := h.ords.Kick(r.Context(), roomCode, req.AdminID, req.UserID)
	if err != nil {
		json.WriteUpstreamFailure(w, err)
		return
	}

	if res.Success {
		h.gateway.Broadcast(roomCode, ws.NewPlayerKicked(roomCode, req.UserID))
		h.logger.Infow("player kicked", "room", roomCode, "user", req.UserID)
	}

	json.Write(w, http.StatusOK, res)
}

// adminAction decodes the shared {adminId} body and applies the local admin
// precondition. A response has already been written when err is non-nil.
func (h *Handler) adminAction(w http.ResponseWriter, r *http.Request) (string, adminRequest, error) {
	var req adminRequest

	roomCode, err := roomCodeParam(r)
	if err != nil {
		json.WriteValidationFailure(w, err)
		return "", req, err
	}

	if err := json.Read(r, &req); err != nil {
		json.WriteValidationFailure(w, err)
		return "", req, err
	}
	if err := validUserID(req.AdminID); err != nil {
		json.WriteValidationFailure(w, err)
		return "", req, err
	}

	if !h.isAdmin(w, roomCode, req.AdminID) {
		return "", req, errors.New("not admin")
	}

	return roomCode, req, nil
}

// isAdmin applies the best-effort local admin check. When the cache has no
// admin on record the call proceeds; ORDS re-checks authoritatively.
func (h *Handler) isAdmin(w http.ResponseWriter, roomCode, userID string) bool {
	if adminID, ok := h.registry.Admin(roomCode); ok && adminID != userID {
		json.WriteAuthorizationFailure(w, "Only the room admin can do that")
		return false
	}
	return true
}

func roomCodeParam(r *http.Request) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "roomCode")))
	if err := validRoomCode(code); err != nil {
		return "", err
	}
	return code, nil
}
