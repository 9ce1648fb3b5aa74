package game

import (
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/drawdash/drawdash-backend/internal"
)

// =============================================================================
// ROOM REGISTRY
// =============================================================================

// ErrCodeSpaceExhausted means code generation failed to find an unused
// room code; with 16^6 codes this only happens under absurd load and is
// treated as unrecoverable by callers.
var ErrCodeSpaceExhausted = errors.New("room code space exhausted")

const (
	roomCodeLength  = 6
	maxCodeAttempts = 100
)

// Registry is the process-wide mapping from room code to room. It is an
// explicitly constructed object owned by the session gate; rooms are
// created here and removed when their last player leaves.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	bank  *WordBank
}

func NewRegistry(bank *WordBank) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		bank:  bank,
	}
}

// CreateRoom generates a short code, unguessable enough for casual play,
// and stores a fresh room under it. Codes are a random uuid truncated and
// upper-cased to six characters.
func (reg *Registry) CreateRoom() (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := strings.ToUpper(uuid.NewString()[:roomCodeLength])
		if _, exists := reg.rooms[code]; exists {
			continue
		}
		room := NewRoom(code, reg.bank)
		reg.rooms[code] = room
		log.Printf("[CreateRoom] created room %s (total rooms: %d)", code, len(reg.rooms))
		return room, nil
	}
	return nil, ErrCodeSpaceExhausted
}

func (reg *Registry) GetRoom(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[code]
	return room, ok
}

// RemoveRoom drops a room from the registry; idempotent.
func (reg *Registry) RemoveRoom(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.rooms[code]; exists {
		delete(reg.rooms, code)
		log.Printf("[RemoveRoom] removed room %s (total rooms: %d)", code, len(reg.rooms))
	}
}

func (reg *Registry) RoomCount() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// JoinableRoom returns the code of a room still accepting players, or ""
// when none exists.
func (reg *Registry) JoinableRoom() string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	for _, room := range reg.rooms {
		room.Mu.RLock()
		joinable := room.Phase == internal.PhaseWaiting && len(room.Players) < internal.MaxPlayersPerRoom
		code := room.Id
		room.Mu.RUnlock()

		if joinable {
			log.Printf("[JoinableRoom] found joinable room %s", code)
			return code
		}
	}
	return ""
}
