package internal

import "time"

const (
	RoundTimeBudget      = 80 // seconds of drawing time per turn
	MaxRounds            = 3
	MaxPlayersPerRoom    = 8
	MinPlayersToStart    = 2
	WordChoiceCount      = 3
	DrawerReward         = 10
	MinGuesserReward     = 10
	GraceDelay           = 2 * time.Second
	WordSelectionTimeout = 15 * time.Second
)

type GamePhase string

const (
	PhaseWaiting  GamePhase = "waiting"
	PhaseChoosing GamePhase = "choosing"
	PhaseDrawing  GamePhase = "drawing"
	PhaseFinished GamePhase = "finished"
)

type StrokeKind string

const (
	StrokeStart StrokeKind = "start"
	StrokeDraw  StrokeKind = "draw"
	StrokeEnd   StrokeKind = "end"
)

// StrokeEvent is one pen-down/move/up record. A "start" begins a new
// segment; following "draw" events connect to the previous point until
// the next "start".
type StrokeEvent struct {
	Type  StrokeKind `json:"type"`
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Color string     `json:"color"`
	Size  float64    `json:"size"`
}

type ChatMessage struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
	IsGuess    bool   `json:"isGuess"`
	Timestamp  int64  `json:"timestamp"`
}

// GameStateData is the full externally-visible room state. The word and
// choices are carried in full here; masking for non-drawers happens at
// the protocol boundary before this goes on the wire.
type GameStateData struct {
	ID            string        `json:"id"`
	Players       []*Player     `json:"players"`
	CurrentDrawer string        `json:"currentDrawer,omitempty"`
	CurrentWord   string        `json:"currentWord,omitempty"`
	MaskedWord    string        `json:"maskedWord,omitempty"`
	WordChoices   []string      `json:"wordChoices,omitempty"`
	GameState     GamePhase     `json:"gameState"`
	TimeLeft      int           `json:"timeLeft"`
	Round         int           `json:"round"`
	MaxRounds     int           `json:"maxRounds"`
	DrawingData   []StrokeEvent `json:"drawingData"`
}

// Response is the envelope for the plain HTTP endpoints, with server-side
// timing attached.
type Response struct {
	StatusCode    int   `json:"status_code"`
	RespStartTime int64 `json:"resp_time_start_ms"`
	RespEndTime   int64 `json:"resp_time_end_ms"`
	NetRespTime   int64 `json:"net_resp_time_ms"`
	Data          any   `json:"data"`
}
