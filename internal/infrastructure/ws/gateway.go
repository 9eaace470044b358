package ws

import (
	"time"

	"github.com/plamen9/airline-bingo/internal/domain"
	"github.com/plamen9/airline-bingo/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

type inboundMsg struct {
	client *Client
	raw    []byte
}

// connContext holds the per-connection state the gateway needs to route and
// label events. It is owned by the gateway and keyed by connection id; it is
// never stashed on the connection itself.
type connContext struct {
	roomCode    string
	userID      string
	displayName string
	isAdmin     bool
}

type broadcastMsg struct {
	roomCode string
	frame    *Frame
	exclude  string // connection id to skip, empty delivers to all
}

type BroadcastOption func(*broadcastMsg)

// ExcludeSender skips the originating connection, for events the sender
// already knows about locally.
func ExcludeSender(connID string) BroadcastOption {
	return func(m *broadcastMsg) {
		m.exclude = connID
	}
}

// Core is the realtime gateway. A single run loop owns every client handle
// and connection context, so handler bodies never race each other; REST
// handlers reach it only through the buffered broadcast channel, which also
// fixes the FIFO delivery order per room.
type Core struct {
	registry   domain.RoomRegistry
	clients    map[string]*Client
	contexts   map[string]*connContext
	register   chan *Client
	unregister chan *Client
	inbound    chan inboundMsg
	broadcast  chan broadcastMsg
	logger     *zap.SugaredLogger
	metrics    *metrics.Metrics
}

func NewCore(registry domain.RoomRegistry, logger *zap.SugaredLogger, m *metrics.Metrics) *Core {
	return &Core{
		registry:   registry,
		clients:    make(map[string]*Client),
		contexts:   make(map[string]*connContext),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundMsg, 256),
		broadcast:  make(chan broadcastMsg, 256),
		logger:     logger,
		metrics:    m,
	}
}

func (c *Core) Register() chan<- *Client {
	return c.register
}

func (c *Core) Unregister() chan<- *Client {
	return c.unregister
}

// Broadcast delivers frame to every connection subscribed to roomCode,
// in the order broadcasts were issued. Safe to call from any goroutine.
func (c *Core) Broadcast(roomCode string, frame *Frame, opts ...BroadcastOption) {
	msg := broadcastMsg{roomCode: roomCode, frame: frame}
	for _, opt := range opts {
		opt(&msg)
	}
	c.broadcast <- msg
}

func (c *Core) Run() {
	for {
		select {
		case cl := <-c.register:
			c.clients[cl.ID] = cl
			c.contexts[cl.ID] = &connContext{}
			if c.metrics != nil {
				c.metrics.ActiveConnections.Inc()
			}
			c.logger.Infow("client connected", "client", cl.ID)

		case cl := <-c.unregister:
			if _, ok := c.clients[cl.ID]; !ok {
				continue
			}
			c.handleDeparture(cl, EventPlayerDisconnected)
			delete(c.clients, cl.ID)
			delete(c.contexts, cl.ID)
			close(cl.send)
			if c.metrics != nil {
				c.metrics.ActiveConnections.Dec()
			}
			c.logger.Infow("client disconnected", "client", cl.ID)

		case msg := <-c.inbound:
			c.handleInbound(msg.client, msg.raw)

		case msg := <-c.broadcast:
			c.deliver(msg)
		}
	}
}

func (c *Core) handleInbound(cl *Client, raw []byte) {
	event, payload, err := parseInbound(raw)
	if err != nil {
		c.logger.Warnw("rejected inbound frame", "client", cl.ID, "event", event, "error", err)
		c.send(cl, NewError("", err.Error()))
		return
	}

	ctx := c.contexts[cl.ID]
	if ctx == nil {
		return
	}

	switch event {
	case EventJoinRoom:
		c.handleJoin(cl, ctx, payload.(JoinRoomPayload))

	case EventLeaveRoom:
		c.handleDeparture(cl, EventPlayerLeft)

	case EventChatMessage:
		if ctx.roomCode == "" {
			return
		}
		p := payload.(ChatMessagePayload)
		frame := NewChatMessage(ctx.roomCode, ctx.userID, ctx.displayName, p.Message, time.Now().UTC().Format(time.RFC3339))
		c.deliver(broadcastMsg{roomCode: ctx.roomCode, frame: frame})

	case EventClaimingBingo:
		if ctx.roomCode == "" {
			return
		}
		frame := NewPlayerClaimingBingo(ctx.roomCode, ctx.userID, ctx.displayName)
		c.deliver(broadcastMsg{roomCode: ctx.roomCode, frame: frame, exclude: cl.ID})
	}
}

func (c *Core) handleJoin(cl *Client, ctx *connContext, p JoinRoomPayload) {
	if ctx.roomCode == p.RoomCode && ctx.roomCode != "" {
		// Rejoining the same room is idempotent: refresh the entry, skip
		// the announcement.
		c.registry.AddParticipant(p.RoomCode, domain.Participant{
			ConnID:      cl.ID,
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			IsAdmin:     p.IsAdmin,
		})
		return
	}

	if ctx.roomCode != "" {
		// Caller error: a connection subscribes to one room at a time and
		// must leave before joining another.
		c.logger.Warnw("join rejected, already in a room", "client", cl.ID, "room", ctx.roomCode, "requested", p.RoomCode)
		c.send(cl, NewError(p.RoomCode, "already in a room; leave first"))
		return
	}

	ctx.roomCode = p.RoomCode
	ctx.userID = p.UserID
	ctx.displayName = p.DisplayName
	ctx.isAdmin = p.IsAdmin

	c.registry.Ensure(p.RoomCode)
	c.registry.AddParticipant(p.RoomCode, domain.Participant{
		ConnID:      cl.ID,
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		IsAdmin:     p.IsAdmin,
	})

	frame := NewPlayerJoined(p.RoomCode, p.UserID, p.DisplayName, p.IsAdmin, c.registry.Count(p.RoomCode))
	c.deliver(broadcastMsg{roomCode: p.RoomCode, frame: frame, exclude: cl.ID})

	c.logger.Infow("player joined room", "client", cl.ID, "room", p.RoomCode, "user", p.UserID, "name", p.DisplayName)
}

// handleDeparture removes the client from its room and announces it. Explicit
// leaves and disconnects share this path; only the event name differs.
func (c *Core) handleDeparture(cl *Client, event string) {
	ctx := c.contexts[cl.ID]
	if ctx == nil || ctx.roomCode == "" {
		return
	}

	roomCode := ctx.roomCode
	c.registry.RemoveParticipant(roomCode, cl.ID)

	count := c.registry.Count(roomCode)
	var frame *Frame
	if event == EventPlayerLeft {
		frame = NewPlayerLeft(roomCode, ctx.userID, ctx.displayName, count)
	} else {
		frame = NewPlayerDisconnected(roomCode, ctx.userID, ctx.displayName, count)
	}
	c.deliver(broadcastMsg{roomCode: roomCode, frame: frame, exclude: cl.ID})

	c.logger.Infow("player left room", "client", cl.ID, "room", roomCode, "user", ctx.userID, "event", event)

	ctx.roomCode = ""
	ctx.userID = ""
	ctx.displayName = ""
	ctx.isAdmin = false
}

func (c *Core) deliver(msg broadcastMsg) {
	if c.metrics != nil {
		c.metrics.BroadcastsTotal.WithLabelValues(msg.frame.Event).Inc()
	}

	for _, p := range c.registry.ListParticipants(msg.roomCode) {
		if p.ConnID == msg.exclude {
			continue
		}
		cl, ok := c.clients[p.ConnID]
		if !ok {
			continue
		}
		c.send(cl, msg.frame)
	}
}

func (c *Core) send(cl *Client, frame *Frame) {
	select {
	case cl.send <- frame:
	default:
		// Client is too slow; drop the frame rather than stall the room.
		if c.metrics != nil {
			c.metrics.DroppedFrames.Inc()
		}
		c.logger.Warnw("client buffer full, dropping frame", "client", cl.ID, "event", frame.Event)
	}
}
