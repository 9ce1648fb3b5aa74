package game

import (
	"fmt"
	"log"
	"strings"

	"github.com/drawdash/drawdash-backend/internal"
)

// =============================================================================
// GUESS HANDLING & SCORING
// =============================================================================

// GuessResult reports how a guess was handled. Rejected guesses (wrong
// phase, the drawer guessing, unknown player, repeat correct guess) must
// produce no broadcast at all; evaluated-but-wrong guesses surface to the
// room as chat.
type GuessResult struct {
	Correct  bool
	Rejected bool
	Message  string
}

// MakeGuess validates and scores a guess. Comparison is case-insensitive
// after trimming surrounding whitespace. A correct guess awards the drawer
// a flat reward and the guesser a speed-scaled one; once every non-drawer
// has guessed, the turn advances after a short grace delay so clients can
// render the result first.
func (r *Room) MakeGuess(playerID, text string) GuessResult {
	r.Mu.Lock()

	if r.Phase != internal.PhaseDrawing || playerID == r.CurrentDrawer {
		r.Mu.Unlock()
		return GuessResult{Rejected: true}
	}

	player := r.Players[playerID]
	if player == nil || player.HasGuessed {
		r.Mu.Unlock()
		return GuessResult{Rejected: true}
	}

	if !strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(r.Word)) {
		r.Mu.Unlock()
		return GuessResult{Correct: false}
	}

	player.HasGuessed = true
	r.GuessedPlayers[playerID] = struct{}{}

	guesserPoints := max(internal.MinGuesserReward, r.TimeLeft/2)
	player.Score += guesserPoints
	if drawer := r.Players[r.CurrentDrawer]; drawer != nil {
		drawer.Score += internal.DrawerReward
	}

	allGuessed := len(r.GuessedPlayers) == len(r.Players)-1
	message := fmt.Sprintf("%s guessed the word!", player.Name)
	graceDelay := r.GraceDelay
	r.Mu.Unlock()

	log.Printf("[MakeGuess] room=%s: player %s guessed correctly (+%d), allGuessed=%v",
		r.Id, playerID, guesserPoints, allGuessed)

	if allGuessed {
		// Grace delay before the next turn so clients can render the
		// correct-guess event; it takes over the room's single timer slot.
		r.armTimer(graceDelay, nil, r.NextTurn)
	}

	return GuessResult{Correct: true, Message: message}
}
