package game

import (
	"log"
	"strings"

	"github.com/drawdash/drawdash-backend/internal"
)

// =============================================================================
// BROADCASTING
// =============================================================================

// connectedPlayers snapshots the membership so writes happen without the
// room lock held.
func (r *Room) connectedPlayers() []*internal.Player {
	r.Mu.RLock()
	defer r.Mu.RUnlock()

	players := make([]*internal.Player, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, p)
	}
	return players
}

// Broadcast sends msg to every player in the room.
func (r *Room) Broadcast(msg any) {
	for _, p := range r.connectedPlayers() {
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Printf("[Broadcast] room=%s: write to player %s failed: %v", r.Id, p.Id, err)
		}
	}
}

// BroadcastExcept sends msg to everyone but one player, typically the
// sender of a relayed event.
func (r *Room) BroadcastExcept(msg any, exceptID string) {
	for _, p := range r.connectedPlayers() {
		if p.Id == exceptID {
			continue
		}
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Printf("[BroadcastExcept] room=%s: write to player %s failed: %v", r.Id, p.Id, err)
		}
	}
}

// BroadcastGameState pushes the room snapshot to every player, sanitized
// per viewer: the drawer's copy carries the word and choices, everyone
// else gets a masked word.
func (r *Room) BroadcastGameState(eventType string) {
	snapshot := r.Snapshot()
	for _, p := range r.connectedPlayers() {
		msg := internal.Message[internal.GameStateData]{
			Type: eventType,
			Data: sanitizeStateFor(snapshot, p.Id),
		}
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Printf("[BroadcastGameState] room=%s: write to player %s failed: %v", r.Id, p.Id, err)
		}
	}
}

// sanitizeStateFor applies the word-visibility policy to a snapshot.
func sanitizeStateFor(state internal.GameStateData, viewerID string) internal.GameStateData {
	if viewerID == state.CurrentDrawer {
		return state
	}
	state.MaskedWord = maskWord(state.CurrentWord)
	state.CurrentWord = ""
	state.WordChoices = nil
	return state
}

// maskWord converts each letter to an underscore, preserving spaces, in
// the "_ _ _" display format.
func maskWord(word string) string {
	if word == "" {
		return ""
	}
	masked := make([]string, 0, len(word))
	for _, c := range word {
		if c == ' ' {
			masked = append(masked, " ")
		} else {
			masked = append(masked, "_")
		}
	}
	return strings.Join(masked, " ")
}
