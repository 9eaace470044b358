package ws

import (
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one live connection handle. Room membership and user identity
// live in the gateway's connection context, not here: a Client is only an
// addressable pipe.
type Client struct {
	ID   string
	conn Conn
	send chan *Frame
}

func NewClient(conn Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan *Frame, 64), // buffered to avoid dead-locks on slow clients
	}
}

// ReadPump feeds raw frames into the gateway until the connection drops, then
// unregisters the client. Disconnect cleanup therefore follows the same path
// as an explicit leave.
func (c *Client) ReadPump(core *Core) {
	defer func() {
		core.Unregister() <- c
		_ = c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				core.logger.Warnw("ws read error", "client", c.ID, "error", err)
			}
			break
		}

		core.inbound <- inboundMsg{client: c, raw: raw}
	}
}

// WritePump drains the send channel onto the wire. It exits when the channel
// is closed by the gateway or the first write fails.
func (c *Client) WritePump(core *Core) {
	defer func() {
		_ = c.conn.Close()
	}()

	for frame := range c.send {
		if err := c.conn.WriteJSON(frame); err != nil {
			core.logger.Warnw("ws write error", "client", c.ID, "error", err)
			break
		}
	}
}
