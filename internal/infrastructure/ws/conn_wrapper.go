package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is the minimal connection surface the gateway needs. Production code
// wraps a gorilla connection; tests substitute fakes.
type Conn interface {
	WriteJSON(v any) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

type connWrapper struct {
	conn  *websocket.Conn
	mutex sync.Mutex
}

// NewConn wraps a gorilla connection with a write mutex so concurrent
// WriteJSON calls cannot interleave frames.
func NewConn(c *websocket.Conn) Conn {
	return &connWrapper{conn: c}
}

func (w *connWrapper) WriteJSON(v any) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.conn.WriteJSON(v)
}

func (w *connWrapper) ReadMessage() (int, []byte, error) {
	return w.conn.ReadMessage()
}

func (w *connWrapper) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.conn.Close()
}
