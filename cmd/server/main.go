package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Martinez-Cris/mueblefact-pro/internal/config"
	"github.com/Martinez-Cris/mueblefact-pro/internal/server"
	"github.com/Martinez-Cris/mueblefact-pro/internal/storage"
	"github.com/Martinez-Cris/mueblefact-pro/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	var st storage.Storage
	if cfg.DatabaseDSN != "" {
		g, err := storage.OpenGorm(cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open state database: %v", err)
		}
		st = g
	} else {
		st = storage.NewFile(cfg.StateFile)
	}

	app := store.New(st)
	if err := app.Load(); err != nil {
		// Keep running with seeded defaults; persistence stays best-effort.
		log.Printf("could not load persisted state: %v", err)
	}

	log.Printf("Starting server env=%s port=%s", cfg.Env, cfg.Port)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: server.New(app)}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
