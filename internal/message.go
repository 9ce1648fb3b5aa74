package internal

type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

type RoomCreatedData struct {
	RoomID    string        `json:"roomId"`
	Player    *Player       `json:"player"`
	GameState GameStateData `json:"gameState"`
}

type RoomJoinedData struct {
	Player    *Player       `json:"player"`
	GameState GameStateData `json:"gameState"`
}

type PlayerJoinedData struct {
	Player    *Player       `json:"player"`
	GameState GameStateData `json:"gameState"`
}

type PlayerLeftData struct {
	PlayerID  string        `json:"playerId"`
	GameState GameStateData `json:"gameState"`
}

type CorrectGuessData struct {
	PlayerID  string        `json:"playerId"`
	Message   string        `json:"message"`
	GameState GameStateData `json:"gameState"`
}

type JoinRoomData struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type TimerUpdateData struct {
	TimeLeft  int       `json:"timeLeft"`
	GameState GamePhase `json:"gameState"`
}
