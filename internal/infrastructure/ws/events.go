package ws

// Inbound events, sent by clients over the socket.
const (
	EventJoinRoom      = "joinRoom"
	EventLeaveRoom     = "leaveRoom"
	EventChatMessage   = "chatMessage"
	EventClaimingBingo = "claimingBingo"
)

// Outbound events, relayed to room channels.
const (
	EventPlayerJoined        = "playerJoined"
	EventPlayerLeft          = "playerLeft"
	EventPlayerDisconnected  = "playerDisconnected"
	EventGameStarted         = "gameStarted"
	EventAirlineDrawn        = "airlineDrawn"
	EventPlayerClaimingBingo = "playerClaimingBingo"
	EventBingoWinner         = "bingoWinner"
	EventGameReset           = "gameReset"
	EventPlayerKicked        = "playerKicked"
	EventError               = "error"
)

// Frame is the envelope for every message crossing the socket, in either
// direction. Data holds exactly one of the payload types below, selected by
// Event.
type Frame struct {
	Event    string `json:"event"`
	RoomCode string `json:"roomCode,omitempty"`
	Data     any    `json:"data,omitempty"`
}

type PlayerJoinedPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
	PlayerCount int    `json:"playerCount"`
}

type PlayerLeftPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PlayerCount int    `json:"playerCount"`
}

type AirlineDrawnPayload struct {
	AirlineID   int    `json:"airlineId"`
	AirlineName string `json:"airlineName"`
	DrawOrder   int    `json:"drawOrder"`
}

type ClaimingBingoPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

type BingoWinnerPayload struct {
	WinnerID   string `json:"winnerId"`
	WinnerName string `json:"winnerName"`
}

type PlayerKickedPayload struct {
	UserID string `json:"userId"`
}

type ChatPayload struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewPlayerJoined(roomCode, userID, displayName string, isAdmin bool, playerCount int) *Frame {
	return &Frame{
		Event:    EventPlayerJoined,
		RoomCode: roomCode,
		Data: PlayerJoinedPayload{
			UserID:      userID,
			DisplayName: displayName,
			IsAdmin:     isAdmin,
			PlayerCount: playerCount,
		},
	}
}

func NewPlayerLeft(roomCode, userID, displayName string, playerCount int) *Frame {
	return &Frame{
		Event:    EventPlayerLeft,
		RoomCode: roomCode,
		Data: PlayerLeftPayload{
			UserID:      userID,
			DisplayName: displayName,
			PlayerCount: playerCount,
		},
	}
}

func NewPlayerDisconnected(roomCode, userID, displayName string, playerCount int) *Frame {
	return &Frame{
		Event:    EventPlayerDisconnected,
		RoomCode: roomCode,
		Data: PlayerLeftPayload{
			UserID:      userID,
			DisplayName: displayName,
			PlayerCount: playerCount,
		},
	}
}

func NewGameStarted(roomCode string) *Frame {
	return &Frame{Event: EventGameStarted, RoomCode: roomCode}
}

func NewAirlineDrawn(roomCode string, airlineID int, airlineName string, drawOrder int) *Frame {
	return &Frame{
		Event:    EventAirlineDrawn,
		RoomCode: roomCode,
		Data: AirlineDrawnPayload{
			AirlineID:   airlineID,
			AirlineName: airlineName,
			DrawOrder:   drawOrder,
		},
	}
}

func NewPlayerClaimingBingo(roomCode, userID, displayName string) *Frame {
	return &Frame{
		Event:    EventPlayerClaimingBingo,
		RoomCode: roomCode,
		Data: ClaimingBingoPayload{
			UserID:      userID,
			DisplayName: displayName,
		},
	}
}

func NewBingoWinner(roomCode, winnerID, winnerName string) *Frame {
	return &Frame{
		Event:    EventBingoWinner,
		RoomCode: roomCode,
		Data: BingoWinnerPayload{
			WinnerID:   winnerID,
			WinnerName: winnerName,
		},
	}
}

func NewGameReset(roomCode string) *Frame {
	return &Frame{Event: EventGameReset, RoomCode: roomCode}
}

func NewPlayerKicked(roomCode, userID string) *Frame {
	return &Frame{
		Event:    EventPlayerKicked,
		RoomCode: roomCode,
		Data:     PlayerKickedPayload{UserID: userID},
	}
}

func NewChatMessage(roomCode, userID, displayName, message, timestamp string) *Frame {
	return &Frame{
		Event:    EventChatMessage,
		RoomCode: roomCode,
		Data: ChatPayload{
			UserID:      userID,
			DisplayName: displayName,
			Message:     message,
			Timestamp:   timestamp,
		},
	}
}

func NewError(roomCode, message string) *Frame {
	return &Frame{
		Event:    EventError,
		RoomCode: roomCode,
		Data:     ErrorPayload{Message: message},
	}
}
