package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drawdash/drawdash-backend/internal"
	"github.com/drawdash/drawdash-backend/internal/game"
)

func testServer() *Server {
	registry := game.NewRegistry(game.DefaultWordBank())
	return &Server{
		port:     3001,
		registry: registry,
		gate:     game.NewGate(registry),
	}
}

func TestHealthHandler(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.RegisterRoutes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestGetRoomToJoinWhenNoneAvailable(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodGet, "/rooms-available", nil)
	rec := httptest.NewRecorder()

	s.RegisterRoutes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp internal.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No joinable rooms available", resp.Data)
}

func TestGetRoomToJoinReturnsWaitingRoom(t *testing.T) {
	s := testServer()
	room, err := s.registry.CreateRoom()
	require.NoError(t, err)
	t.Cleanup(room.Shutdown)

	req := httptest.NewRequest(http.MethodGet, "/rooms-available", nil)
	rec := httptest.NewRecorder()

	s.RegisterRoutes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp internal.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, room.Id, resp.Data)
	assert.GreaterOrEqual(t, resp.RespEndTime, resp.RespStartTime)
}

func TestCORSPreflight(t *testing.T) {
	s := testServer()
	req := httptest.NewRequest(http.MethodOptions, "/health", nil)
	rec := httptest.NewRecorder()

	s.RegisterRoutes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
