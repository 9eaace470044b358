package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/plamen9/airline-bingo/internal/infrastructure/ws"
)

// Event is one frame pushed by the server. Data stays raw until the engine
// decodes it against the payload type the event name implies.
type Event struct {
	Event    string          `json:"event"`
	RoomCode string          `json:"roomCode"`
	Data     json.RawMessage `json:"data"`
}

// RoomSocket is the realtime half of the client. Sends are serialized by a
// mutex; Listen owns the read side.
type RoomSocket struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	closed bool
}

// Dial connects to the backend's websocket endpoint. baseURL is the same
// http(s) URL the REST client uses.
func Dial(ctx context.Context, baseURL string) (*RoomSocket, error) {
	wsURL := strings.TrimSuffix(baseURL, "/")
	if after, ok := strings.CutPrefix(wsURL, "https://"); ok {
		wsURL = "wss://" + after
	} else if after, ok := strings.CutPrefix(wsURL, "http://"); ok {
		wsURL = "ws://" + after
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	conn, _, err := dialer.DialContext(ctx, wsURL+"/ws", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to websocket: %w", err)
	}

	return &RoomSocket{conn: conn}, nil
}

func (s *RoomSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

// Listen reads frames until the connection drops or ctx is cancelled, handing
// each one to handle. It always closes the socket on the way out.
func (s *RoomSocket) Listen(ctx context.Context, handle func(Event)) error {
	defer s.Close()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-done:
		}
	}()

	for {
		var ev Event
		if err := s.conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return fmt.Errorf("websocket read error: %w", err)
			}
			return nil
		}

		handle(ev)
	}
}

// SendJoin subscribes this connection to a room channel.
func (s *RoomSocket) SendJoin(roomCode, userID, displayName string, isAdmin bool) error {
	return s.send(ws.EventJoinRoom, ws.JoinRoomPayload{
		RoomCode:    roomCode,
		UserID:      userID,
		DisplayName: displayName,
		IsAdmin:     isAdmin,
	})
}

func (s *RoomSocket) SendLeave() error {
	return s.send(ws.EventLeaveRoom, nil)
}

func (s *RoomSocket) SendChat(message string) error {
	return s.send(ws.EventChatMessage, ws.ChatMessagePayload{Message: message})
}

// SendClaiming announces a claim attempt to the room. It is the notice half
// of the two-step claim; the REST Claim call decides the outcome.
func (s *RoomSocket) SendClaiming() error {
	return s.send(ws.EventClaimingBingo, nil)
}

func (s *RoomSocket) send(event string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("websocket connection is closed")
	}

	return s.conn.WriteJSON(map[string]any{"event": event, "data": data})
}
