package game

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/drawdash/drawdash-backend/internal"
)

// =============================================================================
// SESSION GATE
// =============================================================================

// session binds one live connection to a player identity and, once the
// player has created or joined a room, to that room's code. Looked up on
// every inbound event instead of stashing state on the connection.
type session struct {
	connID   string
	conn     internal.Conn
	player   *internal.Player
	roomCode string

	mu sync.Mutex
}

func (s *session) bind(player *internal.Player, roomCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = player
	s.roomCode = roomCode
}

func (s *session) binding() (*internal.Player, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player, s.roomCode
}

// Gate dispatches inbound protocol events to the right room method,
// enforces per-action authorization, and fans room output back out to the
// right set of connections.
type Gate struct {
	registry *Registry
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewGate(registry *Registry) *Gate {
	return &Gate{
		registry: registry,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*session),
	}
}

// HandleWebSocket upgrades the HTTP connection and starts the per-connection
// read loop. Events from one connection are processed in arrival order.
func (g *Gate) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[HandleWebSocket] upgrade failed:", err)
		return
	}

	sess := &session{
		connID: uuid.NewString(),
		conn:   conn,
	}

	g.mu.Lock()
	g.sessions[sess.connID] = sess
	g.mu.Unlock()

	log.Printf("[HandleWebSocket] connection %s established", sess.connID)
	go g.readLoop(sess)
}

func (g *Gate) readLoop(sess *session) {
	defer func() {
		sess.conn.Close()
		g.disconnect(sess)
	}()

	for {
		_, raw, err := sess.conn.ReadMessage()
		if err != nil {
			log.Printf("[readLoop] connection %s: read error: %v", sess.connID, err)
			return
		}

		var base internal.Message[json.RawMessage]
		if err := json.Unmarshal(raw, &base); err != nil {
			log.Printf("[readLoop] connection %s: malformed message: %v", sess.connID, err)
			continue
		}
		g.dispatch(sess, base.Type, base.Data)
	}
}

// dispatch routes one inbound event. Malformed payloads and unauthorized
// actions are dropped with no state change; only join failures are
// reported back to the sender.
func (g *Gate) dispatch(sess *session, eventType string, data json.RawMessage) {
	switch eventType {
	case "create-room":
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			log.Printf("[dispatch] connection %s: bad create-room payload: %v", sess.connID, err)
			return
		}
		g.handleCreateRoom(sess, name)

	case "join-room":
		var join internal.JoinRoomData
		if err := json.Unmarshal(data, &join); err != nil {
			log.Printf("[dispatch] connection %s: bad join-room payload: %v", sess.connID, err)
			return
		}
		g.handleJoinRoom(sess, join)

	case "start-game":
		g.handleStartGame(sess)

	case "select-word":
		var word string
		if err := json.Unmarshal(data, &word); err != nil {
			log.Printf("[dispatch] connection %s: bad select-word payload: %v", sess.connID, err)
			return
		}
		g.handleSelectWord(sess, word)

	case "draw":
		var stroke internal.StrokeEvent
		if err := json.Unmarshal(data, &stroke); err != nil {
			log.Printf("[dispatch] connection %s: bad draw payload: %v", sess.connID, err)
			return
		}
		g.handleDraw(sess, stroke)

	case "clear-canvas":
		g.handleClearCanvas(sess)

	case "guess":
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			log.Printf("[dispatch] connection %s: bad guess payload: %v", sess.connID, err)
			return
		}
		g.handleGuess(sess, text)

	case "chat-message":
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			log.Printf("[dispatch] connection %s: bad chat payload: %v", sess.connID, err)
			return
		}
		g.handleChat(sess, text)

	case "get-game-state":
		g.handleGetGameState(sess)

	default:
		log.Printf("[dispatch] connection %s: unknown event %q", sess.connID, eventType)
	}
}

// sessionRoom resolves the sender's current room, or nil when the session
// is unbound or the room is gone (protocol misuse, dropped silently).
func (g *Gate) sessionRoom(sess *session) (*internal.Player, *Room) {
	player, code := sess.binding()
	if player == nil || code == "" {
		return nil, nil
	}
	room, ok := g.registry.GetRoom(code)
	if !ok {
		return nil, nil
	}
	return player, room
}

func (g *Gate) handleCreateRoom(sess *session, name string) {
	if _, code := sess.binding(); code != "" {
		log.Printf("[handleCreateRoom] connection %s already in room %s, ignoring", sess.connID, code)
		return
	}
	if name == "" {
		name = "Anonymous"
	}

	room, err := g.registry.CreateRoom()
	if err != nil {
		g.sendError(sess, "Could not create room")
		return
	}

	player := g.newPlayer(sess, name)
	room.AddPlayer(player)
	sess.bind(player, room.Id)

	g.send(sess, internal.Message[internal.RoomCreatedData]{
		Type: "room-created",
		Data: internal.RoomCreatedData{
			RoomID:    room.Id,
			Player:    player.ToPublicPlayer(),
			GameState: room.SanitizedSnapshot(player.Id),
		},
	})
}

func (g *Gate) handleJoinRoom(sess *session, join internal.JoinRoomData) {
	if _, code := sess.binding(); code != "" {
		log.Printf("[handleJoinRoom] connection %s already in room %s, ignoring", sess.connID, code)
		return
	}

	room, ok := g.registry.GetRoom(join.RoomID)
	if !ok {
		g.sendError(sess, "Room not found")
		return
	}
	if room.PlayerCount() >= internal.MaxPlayersPerRoom {
		g.sendError(sess, "Room is full")
		return
	}

	name := join.PlayerName
	if name == "" {
		name = "Anonymous"
	}

	player := g.newPlayer(sess, name)
	room.AddPlayer(player)
	sess.bind(player, room.Id)

	g.send(sess, internal.Message[internal.RoomJoinedData]{
		Type: "room-joined",
		Data: internal.RoomJoinedData{
			Player:    player.ToPublicPlayer(),
			GameState: room.SanitizedSnapshot(player.Id),
		},
	})

	public := player.ToPublicPlayer()
	for _, p := range room.connectedPlayers() {
		if p.Id == player.Id {
			continue
		}
		msg := internal.Message[internal.PlayerJoinedData]{
			Type: "player-joined",
			Data: internal.PlayerJoinedData{
				Player:    public,
				GameState: room.SanitizedSnapshot(p.Id),
			},
		}
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Printf("[handleJoinRoom] room=%s: write to player %s failed: %v", room.Id, p.Id, err)
		}
	}
}

func (g *Gate) handleStartGame(sess *session) {
	_, room := g.sessionRoom(sess)
	if room == nil {
		return
	}
	// StartGame broadcasts game-started itself on success; failure is a
	// structural no-op with no notification.
	room.StartGame()
}

func (g *Gate) handleSelectWord(sess *session, word string) {
	player, room := g.sessionRoom(sess)
	if room == nil {
		return
	}
	// Drawer-only; SelectWord drops non-drawer attempts silently and
	// broadcasts word-selected on success.
	room.SelectWord(player.Id, word)
}

func (g *Gate) handleDraw(sess *session, stroke internal.StrokeEvent) {
	player, room := g.sessionRoom(sess)
	if room == nil {
		return
	}
	if !room.AppendStroke(player.Id, stroke) {
		return
	}
	room.BroadcastExcept(internal.Message[internal.StrokeEvent]{
		Type: "draw",
		Data: stroke,
	}, player.Id)
}

func (g *Gate) handleClearCanvas(sess *session) {
	player, room := g.sessionRoom(sess)
	if room == nil {
		return
	}
	if !room.ClearCanvas(player.Id) {
		return
	}
	room.BroadcastExcept(internal.Message[any]{
		Type: "clear-canvas",
	}, player.Id)
}

func (g *Gate) handleGuess(sess *session, text string) {
	player, room := g.sessionRoom(sess)
	if room == nil {
		return
	}

	result := room.MakeGuess(player.Id, text)
	switch {
	case result.Rejected:
		// Structural no-op: no broadcast.

	case result.Correct:
		for _, p := range room.connectedPlayers() {
			msg := internal.Message[internal.CorrectGuessData]{
				Type: "correct-guess",
				Data: internal.CorrectGuessData{
					PlayerID:  player.Id,
					Message:   result.Message,
					GameState: room.SanitizedSnapshot(p.Id),
				},
			}
			if err := p.SafeWriteJSON(msg); err != nil {
				log.Printf("[handleGuess] room=%s: write to player %s failed: %v", room.Id, p.Id, err)
			}
		}

	default:
		// Wrong guess: surfaces to the whole room as a guess-flagged chat
		// message, sender included.
		room.Broadcast(internal.Message[internal.ChatMessage]{
			Type: "chat-message",
			Data: internal.ChatMessage{
				PlayerID:   player.Id,
				PlayerName: player.Name,
				Message:    text,
				IsGuess:    true,
				Timestamp:  time.Now().UnixMilli(),
			},
		})
	}
}

func (g *Gate) handleChat(sess *session, text string) {
	player, room := g.sessionRoom(sess)
	if room == nil {
		return
	}
	room.Broadcast(internal.Message[internal.ChatMessage]{
		Type: "chat-message",
		Data: internal.ChatMessage{
			PlayerID:   player.Id,
			PlayerName: player.Name,
			Message:    text,
			IsGuess:    false,
			Timestamp:  time.Now().UnixMilli(),
		},
	})
}

// handleGetGameState is the polling fallback: an idempotent resync that
// returns the sender's sanitized snapshot and mutates nothing.
func (g *Gate) handleGetGameState(sess *session) {
	player, room := g.sessionRoom(sess)
	if room == nil {
		return
	}
	g.send(sess, internal.Message[internal.GameStateData]{
		Type: "game-state-update",
		Data: room.SanitizedSnapshot(player.Id),
	})
}

// disconnect tears down the session: player removal, forced turn advance
// if they were drawing, room removal when empty. Disconnection is not an
// error, the game continues for the rest of the room.
func (g *Gate) disconnect(sess *session) {
	g.mu.Lock()
	delete(g.sessions, sess.connID)
	g.mu.Unlock()

	player, code := sess.binding()
	if player == nil || code == "" {
		log.Printf("[disconnect] connection %s closed (never joined a room)", sess.connID)
		return
	}

	room, ok := g.registry.GetRoom(code)
	if !ok {
		return
	}

	log.Printf("[disconnect] connection %s: removing player %s from room %s",
		sess.connID, player.Id, code)

	if empty := room.RemovePlayer(player.Id); empty {
		room.Shutdown()
		g.registry.RemoveRoom(code)
		return
	}

	for _, p := range room.connectedPlayers() {
		msg := internal.Message[internal.PlayerLeftData]{
			Type: "player-left",
			Data: internal.PlayerLeftData{
				PlayerID:  player.Id,
				GameState: room.SanitizedSnapshot(p.Id),
			},
		}
		if err := p.SafeWriteJSON(msg); err != nil {
			log.Printf("[disconnect] room=%s: write to player %s failed: %v", room.Id, p.Id, err)
		}
	}
}

func (g *Gate) newPlayer(sess *session, name string) *internal.Player {
	return &internal.Player{
		Id:   sess.connID,
		Conn: sess.conn,
		Name: name,
	}
}

func (g *Gate) send(sess *session, msg any) {
	player, _ := sess.binding()
	if player != nil {
		if err := player.SafeWriteJSON(msg); err != nil {
			log.Printf("[send] connection %s: write failed: %v", sess.connID, err)
		}
		return
	}
	if err := sess.conn.WriteJSON(msg); err != nil {
		log.Printf("[send] connection %s: write failed: %v", sess.connID, err)
	}
}

func (g *Gate) sendError(sess *session, message string) {
	g.send(sess, internal.Message[string]{Type: "error", Data: message})
}
