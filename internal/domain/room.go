package domain

// Status is the cached lifecycle phase of a room. The external data service
// owns the real transitions; this mirror only decides which screen a client
// shows and is never consulted for win validation.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusStarted  Status = "STARTED"
	StatusFinished Status = "FINISHED"
)

// Participant is one live connection inside a room. All fields are fixed for
// the lifetime of the connection; a reconnect yields a new entry under a new
// connection id even for the same user.
type Participant struct {
	ConnID      string `json:"connId"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	IsAdmin     bool   `json:"isAdmin"`
}

// DrawnAirline is one entry in a room's append-only draw sequence. Order is
// strictly increasing from 1 with no gaps, and no name repeats within a room.
type DrawnAirline struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// RoomRegistry tracks which live connections belong to which room, plus a
// best-effort mirror of each room's status and admin. It is a per-process
// cache, not authoritative storage: mutations on a missing room are benign
// no-ops, and an entry is evicted once its last participant leaves.
type RoomRegistry interface {
	// Ensure creates an empty WAITING entry for the code if absent.
	Ensure(roomCode string)
	// AddParticipant inserts or replaces the entry keyed by connection id.
	AddParticipant(roomCode string, p Participant)
	// RemoveParticipant deletes the entry if present; no-op otherwise.
	RemoveParticipant(roomCode, connID string)
	// SetStatus overwrites the cached status only when the room exists.
	SetStatus(roomCode string, status Status)
	// SetAdmin records the room admin's user id when the room exists.
	SetAdmin(roomCode, adminID string)
	Status(roomCode string) (Status, bool)
	Admin(roomCode string) (string, bool)
	// ListParticipants returns an insertion-ordered snapshot copy.
	ListParticipants(roomCode string) []Participant
	Count(roomCode string) int
}
