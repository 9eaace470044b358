package client

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/plamen9/airline-bingo/internal/domain"
	"github.com/plamen9/airline-bingo/internal/infrastructure/ws"
)

// Player is one roster entry in the local mirror.
type Player struct {
	UserID      string
	DisplayName string
	IsAdmin     bool
}

// State is a point-in-time copy of the engine's mirrors, safe to hand to a
// render layer.
type State struct {
	RoomCode   string
	Phase      domain.Status
	Card       domain.Card
	Drawn      []domain.DrawnAirline
	Players    []Player
	HasBingo   bool
	WinnerID   string
	WinnerName string
}

// Engine mirrors room state from server pushes. It never decides anything on
// its own: every field changes only when the event that names it arrives, and
// HasBingo is recomputed from the card after every mutation so a stale or
// spoofed push can never grant eligibility directly.
type Engine struct {
	mu          sync.RWMutex
	userID      string
	displayName string

	roomCode   string
	isAdmin    bool
	phase      domain.Status
	card       domain.Card
	drawn      []domain.DrawnAirline
	players    []Player
	hasBingo   bool
	winnerID   string
	winnerName string
}

func NewEngine(userID, displayName string) *Engine {
	return &Engine{
		userID:      userID,
		displayName: displayName,
		phase:       domain.StatusWaiting,
	}
}

// SetRoom binds the engine to a room after a successful join.
func (e *Engine) SetRoom(roomCode string, isAdmin bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.roomCode = roomCode
	e.isAdmin = isAdmin
}

// SetCard installs the card fetched over REST and recomputes eligibility.
func (e *Engine) SetCard(card domain.Card) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.card = card
	e.recompute()
}

// SetDrawn replaces the drawn mirror, for a late joiner catching up.
func (e *Engine) SetDrawn(drawn []domain.DrawnAirline) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drawn = drawn
}

// SetPlayers replaces the roster mirror from a REST player list.
func (e *Engine) SetPlayers(players []Player) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.players = players
}

// HasBingo reports the advisory local eligibility flag. The server validates
// every claim independently.
func (e *Engine) HasBingo() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.hasBingo
}

func (e *Engine) Snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	card := make(domain.Card, len(e.card))
	for i, row := range e.card {
		card[i] = make([]domain.Cell, len(row))
		copy(card[i], row)
	}

	return State{
		RoomCode:   e.roomCode,
		Phase:      e.phase,
		Card:       card,
		Drawn:      append([]domain.DrawnAirline(nil), e.drawn...),
		Players:    append([]Player(nil), e.players...),
		HasBingo:   e.hasBingo,
		WinnerID:   e.winnerID,
		WinnerName: e.winnerName,
	}
}

// Apply folds one server event into the mirrors. Unknown events are an error;
// the outbound set is closed.
func (e *Engine) Apply(ev Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch ev.Event {
	case ws.EventPlayerJoined:
		var p ws.PlayerJoinedPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			return fmt.Errorf("malformed %s payload: %w", ev.Event, err)
		}
		e.upsertPlayer(Player{UserID: p.UserID, DisplayName: p.DisplayName, IsAdmin: p.IsAdmin})

	case ws.EventPlayerLeft, ws.EventPlayerDisconnected:
		var p ws.PlayerLeftPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			return fmt.Errorf("malformed %s payload: %w", ev.Event, err)
		}
		e.removePlayer(p.UserID)

	case ws.EventGameStarted:
		e.phase = domain.StatusStarted
		e.drawn = nil
		e.winnerID = ""
		e.winnerName = ""
		e.recompute()

	case ws.EventAirlineDrawn:
		var p ws.AirlineDrawnPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			return fmt.Errorf("malformed %s payload: %w", ev.Event, err)
		}
		e.drawn = append(e.drawn, domain.DrawnAirline{
			ID:    p.AirlineID,
			Name:  p.AirlineName,
			Order: p.DrawOrder,
		})
		e.card.Mark(p.AirlineName)
		e.recompute()

	case ws.EventPlayerClaimingBingo:
		// Informational only; the claim outcome arrives as bingoWinner or
		// not at all.

	case ws.EventBingoWinner:
		var p ws.BingoWinnerPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			return fmt.Errorf("malformed %s payload: %w", ev.Event, err)
		}
		e.phase = domain.StatusFinished
		e.winnerID = p.WinnerID
		e.winnerName = p.WinnerName

	case ws.EventGameReset:
		e.phase = domain.StatusWaiting
		e.card = nil
		e.drawn = nil
		e.hasBingo = false
		e.winnerID = ""
		e.winnerName = ""

	case ws.EventPlayerKicked:
		var p ws.PlayerKickedPayload
		if err := json.Unmarshal(ev.Data, &p); err != nil {
			return fmt.Errorf("malformed %s payload: %w", ev.Event, err)
		}
		if p.UserID == e.userID {
			e.clearRoom()
		} else {
			e.removePlayer(p.UserID)
		}

	case ws.EventChatMessage, ws.EventError:
		// Surfaced to the UI layer directly; no state to mirror.

	default:
		return fmt.Errorf("unknown event %q", ev.Event)
	}

	return nil
}

func (e *Engine) upsertPlayer(p Player) {
	for i := range e.players {
		if e.players[i].UserID == p.UserID {
			e.players[i] = p
			return
		}
	}
	e.players = append(e.players, p)
}

func (e *Engine) removePlayer(userID string) {
	for i := range e.players {
		if e.players[i].UserID == userID {
			e.players = append(e.players[:i], e.players[i+1:]...)
			return
		}
	}
}

func (e *Engine) clearRoom() {
	e.roomCode = ""
	e.isAdmin = false
	e.phase = domain.StatusWaiting
	e.card = nil
	e.drawn = nil
	e.players = nil
	e.hasBingo = false
	e.winnerID = ""
	e.winnerName = ""
}

// recompute derives the advisory eligibility flag from the marked grid. It is
// the only writer of hasBingo outside of resets.
func (e *Engine) recompute() {
	if len(e.card) == 0 {
		e.hasBingo = false
		return
	}
	e.hasBingo = domain.HasBingo(e.card.MarkedGrid())
}
