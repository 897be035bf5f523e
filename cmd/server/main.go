// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"mendicot/internal/auth"
	"mendicot/internal/config"
	"mendicot/internal/game"
	"mendicot/internal/handlers"
	"mendicot/internal/middleware"
)

func main() {
	auth.Init()
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	store := game.NewRoomStore(cfg.TrickPause, cfg.RoundPause)
	srv := handlers.NewGameServer(logger, store, cfg.AllowedOrigin)

	mux := http.NewServeMux()
	mux.Handle("/ws", middleware.LogMiddleware(logger)(srv.WSHandler()))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	addr := ":" + cfg.Port
	logger.Infof("Dealer is ready, listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
