package ws

import (
	"encoding/json"
	"fmt"
)

// Inbound frames are checked against a closed set of events before dispatch;
// anything else is rejected back to the sender.

type JoinRoomPayload struct {
	RoomCode    string `json:"roomCode"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}

type ChatMessagePayload struct {
	Message string `json:"message"`
}

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// parseInbound decodes a raw frame into its typed payload. The returned
// payload is nil for events that carry none (leaveRoom, claimingBingo).
func parseInbound(raw []byte) (event string, payload any, err error) {
	var frame inboundFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return "", nil, fmt.Errorf("malformed frame: %w", err)
	}

	switch frame.Event {
	case EventJoinRoom:
		var p JoinRoomPayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			return frame.Event, nil, fmt.Errorf("malformed joinRoom payload: %w", err)
		}
		if p.RoomCode == "" || p.UserID == "" || p.DisplayName == "" {
			return frame.Event, nil, fmt.Errorf("joinRoom requires roomCode, userId and displayName")
		}
		return frame.Event, p, nil

	case EventChatMessage:
		var p ChatMessagePayload
		if err := json.Unmarshal(frame.Data, &p); err != nil {
			return frame.Event, nil, fmt.Errorf("malformed chatMessage payload: %w", err)
		}
		if p.Message == "" {
			return frame.Event, nil, fmt.Errorf("chatMessage requires a message")
		}
		return frame.Event, p, nil

	case EventLeaveRoom, EventClaimingBingo:
		return frame.Event, nil, nil

	default:
		return frame.Event, nil, fmt.Errorf("unknown event %q", frame.Event)
	}
}
