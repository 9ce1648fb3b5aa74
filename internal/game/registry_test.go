package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawdash/drawdash-backend/internal"
)

func TestCreateRoomCodeFormat(t *testing.T) {
	registry := NewRegistry(DefaultWordBank())

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		room, err := registry.CreateRoom()
		require.NoError(t, err)

		assert.Len(t, room.Id, roomCodeLength)
		assert.Equal(t, room.Id, toUpperASCII(room.Id), "codes are upper-cased")
		assert.False(t, seen[room.Id], "duplicate room code %s", room.Id)
		seen[room.Id] = true
	}
	assert.Equal(t, 50, registry.RoomCount())
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	return string(b)
}

func TestGetRoom(t *testing.T) {
	registry := NewRegistry(DefaultWordBank())
	room, err := registry.CreateRoom()
	require.NoError(t, err)

	got, ok := registry.GetRoom(room.Id)
	assert.True(t, ok)
	assert.Same(t, room, got)

	_, ok = registry.GetRoom("NOSUCH")
	assert.False(t, ok)
}

func TestRemoveRoomIsIdempotent(t *testing.T) {
	registry := NewRegistry(DefaultWordBank())
	room, err := registry.CreateRoom()
	require.NoError(t, err)

	registry.RemoveRoom(room.Id)
	assert.Equal(t, 0, registry.RoomCount())

	registry.RemoveRoom(room.Id) // second removal is a no-op
	assert.Equal(t, 0, registry.RoomCount())
}

func TestJoinableRoom(t *testing.T) {
	registry := NewRegistry(DefaultWordBank())
	assert.Empty(t, registry.JoinableRoom())

	room, err := registry.CreateRoom()
	require.NoError(t, err)
	assert.Equal(t, room.Id, registry.JoinableRoom())

	// A room that has left the waiting phase is not joinable.
	room.AddPlayer(&internal.Player{Id: "a", Name: "A"})
	room.AddPlayer(&internal.Player{Id: "b", Name: "B"})
	require.True(t, room.StartGame())
	t.Cleanup(room.Shutdown)

	assert.Empty(t, registry.JoinableRoom())
}

func TestJoinableRoomSkipsFullRooms(t *testing.T) {
	registry := NewRegistry(DefaultWordBank())
	room, err := registry.CreateRoom()
	require.NoError(t, err)

	for i := 0; i < internal.MaxPlayersPerRoom; i++ {
		room.AddPlayer(&internal.Player{Id: string(rune('a' + i)), Name: "P"})
	}

	assert.Empty(t, registry.JoinableRoom())
}
