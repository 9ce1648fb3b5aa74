package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/drawdash/drawdash-backend/internal/game"
)

type Server struct {
	port int

	registry *game.Registry
	gate     *game.Gate
}

func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 3001
	}

	bank := game.DefaultWordBank()
	if path := os.Getenv("WORDS_CSV"); path != "" {
		loaded, err := game.LoadWordBankCSV(path)
		if err != nil {
			log.Printf("[NewServer] failed to load word list from %s, using built-in words: %v", path, err)
		} else {
			log.Printf("[NewServer] loaded %d words from %s", loaded.Size(), path)
			bank = loaded
		}
	}

	registry := game.NewRegistry(bank)
	newServer := &Server{
		port:     port,
		registry: registry,
		gate:     game.NewGate(registry),
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", newServer.port),
		Handler:      newServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
