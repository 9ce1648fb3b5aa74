package internal

import "sync"

// Conn is the slice of a websocket connection the game layer needs.
// *websocket.Conn satisfies it; tests substitute a recording fake.
type Conn interface {
	WriteJSON(v any) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

type Player struct {
	Id         string    `json:"id"`
	Conn       Conn      `json:"-"`
	Name       string    `json:"name"`
	Score      int       `json:"score"`
	IsDrawing  bool `json:"isDrawing"`
	HasGuessed bool `json:"hasGuessed"`

	Mu sync.Mutex `json:"-"`
}

// SafeWriteJSON serializes writes to the underlying connection; gorilla
// connections do not allow concurrent writers.
func (p *Player) SafeWriteJSON(v any) error {
	p.Mu.Lock()
	defer p.Mu.Unlock()
	if p.Conn == nil {
		return nil
	}
	return p.Conn.WriteJSON(v)
}

// ToPublicPlayer returns a copy safe to embed in broadcast payloads
// (no connection, no mutex).
func (p *Player) ToPublicPlayer() *Player {
	return &Player{
		Id:         p.Id,
		Name:       p.Name,
		Score:      p.Score,
		IsDrawing:  p.IsDrawing,
		HasGuessed: p.HasGuessed,
	}
}
