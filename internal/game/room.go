package game

import (
	"log"
	"slices"
	"sync"
	"time"

	"github.com/drawdash/drawdash-backend/internal"
)

// =============================================================================
// ROOM STATE MACHINE
// =============================================================================

// Room owns one game's full state and all transition logic. Every mutation
// happens under Mu; broadcasts go out on snapshots taken under the lock and
// sent after release. Phases only ever move forward:
// waiting -> choosing -> drawing -> choosing -> ... -> finished.
type Room struct {
	Id      string
	Players map[string]*internal.Player

	// PlayerOrder is the turn rotation: join order, compacted on leave.
	PlayerOrder []string

	Phase         internal.GamePhase
	CurrentDrawer string // player id, empty before the first turn
	Word          string
	WordChoices   []string

	Round     int
	MaxRounds int

	RoundTime int // seconds of drawing time per turn
	TimeLeft  int

	DrawingData    []internal.StrokeEvent
	GuessedPlayers map[string]struct{}

	Timer *GameTimer

	// Delays, fields so tests can shorten them.
	GraceDelay    time.Duration
	ChooseTimeout time.Duration

	Mu sync.RWMutex

	bank *WordBank
}

func NewRoom(id string, bank *WordBank) *Room {
	return &Room{
		Id:             id,
		Players:        make(map[string]*internal.Player),
		PlayerOrder:    make([]string, 0),
		Phase:          internal.PhaseWaiting,
		WordChoices:    make([]string, 0),
		Round:          1,
		MaxRounds:      internal.MaxRounds,
		RoundTime:      internal.RoundTimeBudget,
		DrawingData:    make([]internal.StrokeEvent, 0),
		GuessedPlayers: make(map[string]struct{}),
		GraceDelay:     internal.GraceDelay,
		ChooseTimeout:  internal.WordSelectionTimeout,
		bank:           bank,
	}
}

// AddPlayer appends a player to the room and to the end of the turn
// rotation. Capacity is enforced by the caller.
func (r *Room) AddPlayer(player *internal.Player) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	player.Score = 0
	player.IsDrawing = false
	player.HasGuessed = false

	r.Players[player.Id] = player
	r.PlayerOrder = append(r.PlayerOrder, player.Id)

	log.Printf("[AddPlayer] room=%s: added player %s (%s), total=%d",
		r.Id, player.Id, player.Name, len(r.Players))
}

// RemovePlayer drops the player; if they were the current drawer the turn
// advances immediately so the game does not stall. Returns true when the
// room is now empty and eligible for registry removal.
func (r *Room) RemovePlayer(id string) (empty bool) {
	r.Mu.Lock()
	player := r.Players[id]
	if player == nil {
		empty = len(r.Players) == 0
		r.Mu.Unlock()
		return empty
	}

	delete(r.Players, id)
	delete(r.GuessedPlayers, id)
	r.PlayerOrder = slices.DeleteFunc(r.PlayerOrder, func(s string) bool {
		return s == id
	})

	wasDrawer := r.CurrentDrawer == id
	empty = len(r.Players) == 0

	log.Printf("[RemovePlayer] room=%s: removed player %s (%s), remaining=%d, wasDrawer=%v",
		r.Id, id, player.Name, len(r.Players), wasDrawer)
	r.Mu.Unlock()

	if wasDrawer {
		r.NextTurn()
	}
	return empty
}

// PlayerCount reports the current membership; the gate uses it for the
// capacity check on join.
func (r *Room) PlayerCount() int {
	r.Mu.RLock()
	defer r.Mu.RUnlock()
	return len(r.Players)
}

// StartGame moves waiting -> choosing and performs the first turn advance.
// Fails (no-op) with fewer than two players or once the room has left the
// waiting phase.
func (r *Room) StartGame() bool {
	r.Mu.Lock()
	if r.Phase != internal.PhaseWaiting || len(r.Players) < internal.MinPlayersToStart {
		log.Printf("[StartGame] room=%s: cannot start (phase=%s, players=%d)",
			r.Id, r.Phase, len(r.Players))
		r.Mu.Unlock()
		return false
	}

	r.Round = 1
	r.selectNextDrawerLocked()
	r.Mu.Unlock()

	log.Printf("[StartGame] room=%s: game started", r.Id)

	r.BroadcastGameState("game-started")
	r.armChoiceTimeout()
	return true
}

// selectNextDrawerLocked is the turn-rotation step. Caller holds r.Mu.
//
// The rotation walks PlayerOrder; wrapping back to index 0 increments the
// round, and passing the last round finishes the game with no further
// state mutation.
func (r *Room) selectNextDrawerLocked() {
	if len(r.PlayerOrder) == 0 {
		return
	}

	if r.CurrentDrawer == "" {
		r.CurrentDrawer = r.PlayerOrder[0]
	} else {
		// A departed drawer indexes at -1, which lands the turn on the
		// first player in order, same as a wraparound.
		currentIndex := slices.Index(r.PlayerOrder, r.CurrentDrawer)
		nextIndex := (currentIndex + 1) % len(r.PlayerOrder)
		r.CurrentDrawer = r.PlayerOrder[nextIndex]

		if nextIndex == 0 {
			r.Round++
			if r.Round > r.MaxRounds {
				r.Phase = internal.PhaseFinished
				log.Printf("[selectNextDrawer] room=%s: all rounds played, game finished", r.Id)
				return
			}
		}
	}

	for _, p := range r.Players {
		p.IsDrawing = p.Id == r.CurrentDrawer
		p.HasGuessed = false
	}
	r.GuessedPlayers = make(map[string]struct{})
	r.Word = ""
	r.WordChoices = r.bank.Sample(internal.WordChoiceCount)
	r.Phase = internal.PhaseChoosing

	log.Printf("[selectNextDrawer] room=%s: drawer=%s round=%d choices=%v",
		r.Id, r.CurrentDrawer, r.Round, r.WordChoices)
}

// SelectWord is only accepted from the current drawer while choosing. On
// success the drawing phase begins: fresh canvas, full time budget, and
// the countdown armed.
func (r *Room) SelectWord(playerID, word string) bool {
	r.Mu.Lock()
	if r.Phase != internal.PhaseChoosing {
		r.Mu.Unlock()
		return false
	}
	if playerID != r.CurrentDrawer {
		log.Printf("[SelectWord] room=%s: player %s is not the drawer, ignoring", r.Id, playerID)
		r.Mu.Unlock()
		return false
	}
	if !slices.Contains(r.WordChoices, word) {
		log.Printf("[SelectWord] room=%s: %q is not an offered choice, ignoring", r.Id, word)
		r.Mu.Unlock()
		return false
	}

	r.Word = word
	r.WordChoices = make([]string, 0)
	r.Phase = internal.PhaseDrawing
	r.TimeLeft = r.RoundTime
	r.DrawingData = make([]internal.StrokeEvent, 0)
	roundTime := r.RoundTime
	r.Mu.Unlock()

	log.Printf("[SelectWord] room=%s: drawer %s selected a word, drawing for %ds",
		r.Id, playerID, roundTime)

	r.armTimer(time.Duration(roundTime)*time.Second, r.countdownTick, r.NextTurn)
	r.BroadcastGameState("word-selected")
	return true
}

// NextTurn is the single chokepoint for advancing a turn: timer expiry,
// the drawer disconnecting, and the everyone-guessed grace delay all land
// here, so at most one countdown is ever live.
func (r *Room) NextTurn() {
	r.cancelTimer()

	r.Mu.Lock()
	if r.Phase == internal.PhaseFinished || len(r.PlayerOrder) == 0 {
		r.Mu.Unlock()
		return
	}
	r.selectNextDrawerLocked()
	phase := r.Phase
	r.Mu.Unlock()

	r.BroadcastGameState("game-state-update")
	if phase == internal.PhaseChoosing {
		r.armChoiceTimeout()
	}
}

// armChoiceTimeout auto-selects the first offered word if the drawer sits
// on the choice too long, so the choosing phase cannot stall the room.
func (r *Room) armChoiceTimeout() {
	r.Mu.RLock()
	timeout := r.ChooseTimeout
	choices := append([]string(nil), r.WordChoices...)
	drawer := r.CurrentDrawer
	r.Mu.RUnlock()

	if len(choices) == 0 {
		return
	}
	fallback := choices[0]

	r.armTimer(timeout, nil, func() {
		r.Mu.RLock()
		pending := r.Phase == internal.PhaseChoosing && r.Word == "" && r.CurrentDrawer == drawer
		r.Mu.RUnlock()
		if !pending {
			return
		}
		log.Printf("[armChoiceTimeout] room=%s: drawer %s idle, auto-selecting %q",
			r.Id, drawer, fallback)
		r.SelectWord(drawer, fallback)
	})
}

// AppendStroke records a stroke event; only the current drawer may draw.
func (r *Room) AppendStroke(playerID string, stroke internal.StrokeEvent) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if playerID != r.CurrentDrawer || r.CurrentDrawer == "" {
		return false
	}
	r.DrawingData = append(r.DrawingData, stroke)
	return true
}

// ClearCanvas wipes the current turn's drawing history; drawer only.
func (r *Room) ClearCanvas(playerID string) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	if playerID != r.CurrentDrawer || r.CurrentDrawer == "" {
		return false
	}
	r.DrawingData = make([]internal.StrokeEvent, 0)
	return true
}

// Snapshot produces the full externally-visible state. Pure read; the
// word is carried in full and masked per viewer at the protocol boundary.
func (r *Room) Snapshot() internal.GameStateData {
	r.Mu.RLock()
	defer r.Mu.RUnlock()

	players := make([]*internal.Player, 0, len(r.PlayerOrder))
	for _, id := range r.PlayerOrder {
		if p := r.Players[id]; p != nil {
			players = append(players, p.ToPublicPlayer())
		}
	}

	return internal.GameStateData{
		ID:            r.Id,
		Players:       players,
		CurrentDrawer: r.CurrentDrawer,
		CurrentWord:   r.Word,
		WordChoices:   append([]string(nil), r.WordChoices...),
		GameState:     r.Phase,
		TimeLeft:      r.TimeLeft,
		Round:         r.Round,
		MaxRounds:     r.MaxRounds,
		DrawingData:   append([]internal.StrokeEvent(nil), r.DrawingData...),
	}
}

// SanitizedSnapshot is Snapshot with the visibility policy applied for one
// viewer: only the drawer sees the word and the offered choices.
func (r *Room) SanitizedSnapshot(viewerID string) internal.GameStateData {
	return sanitizeStateFor(r.Snapshot(), viewerID)
}

// Shutdown releases the room's timer before the registry discards it.
func (r *Room) Shutdown() {
	r.cancelTimer()
	log.Printf("[Shutdown] room=%s: shut down", r.Id)
}
