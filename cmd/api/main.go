package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/drawdash/drawdash-backend/internal/server"
)

func main() {
	srv := server.NewServer()

	log.Printf("listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
