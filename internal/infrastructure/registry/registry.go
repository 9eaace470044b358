package registry

import (
	"sync"

	"github.com/plamen9/airline-bingo/internal/domain"
)

type roomEntry struct {
	status       domain.Status
	adminID      string
	participants []domain.Participant // insertion order
}

// roomRegistry is the in-memory registry backing broadcast fan-out. Rooms
// appear lazily on first Ensure and disappear when their last participant
// leaves, so an abandoned code cannot leak an entry forever.
type roomRegistry struct {
	rooms map[string]*roomEntry
	mu    sync.RWMutex
}

func New() domain.RoomRegistry {
	return &roomRegistry{
		rooms: make(map[string]*roomEntry),
	}
}

func (r *roomRegistry) Ensure(roomCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLocked(roomCode)
}

func (r *roomRegistry) ensureLocked(roomCode string) *roomEntry {
	room, ok := r.rooms[roomCode]
	if !ok {
		room = &roomEntry{status: domain.StatusWaiting}
		r.rooms[roomCode] = room
	}
	return room
}

func (r *roomRegistry) AddParticipant(roomCode string, p domain.Participant) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := r.ensureLocked(roomCode)
	for i := range room.participants {
		if room.participants[i].ConnID == p.ConnID {
			room.participants[i] = p
			return
		}
	}
	room.participants = append(room.participants, p)
}

func (r *roomRegistry) RemoveParticipant(roomCode, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomCode]
	if !ok {
		return
	}

	for i := range room.participants {
		if room.participants[i].ConnID == connID {
			room.participants = append(room.participants[:i], room.participants[i+1:]...)
			break
		}
	}

	if len(room.participants) == 0 {
		delete(r.rooms, roomCode)
	}
}

func (r *roomRegistry) SetStatus(roomCode string, status domain.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The registry is a cache, not authoritative storage: a missing room is
	// not an error, the update is simply dropped.
	if room, ok := r.rooms[roomCode]; ok {
		room.status = status
	}
}

func (r *roomRegistry) SetAdmin(roomCode, adminID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if room, ok := r.rooms[roomCode]; ok {
		room.adminID = adminID
	}
}

func (r *roomRegistry) Status(roomCode string) (domain.Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomCode]
	if !ok {
		return "", false
	}
	return room.status, true
}

func (r *roomRegistry) Admin(roomCode string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomCode]
	if !ok || room.adminID == "" {
		return "", false
	}
	return room.adminID, true
}

func (r *roomRegistry) ListParticipants(roomCode string) []domain.Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomCode]
	if !ok {
		return nil
	}

	// Snapshot copy so callers cannot mutate registry internals.
	out := make([]domain.Participant, len(room.participants))
	copy(out, room.participants)
	return out
}

func (r *roomRegistry) Count(roomCode string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[roomCode]
	if !ok {
		return 0
	}
	return len(room.participants)
}
