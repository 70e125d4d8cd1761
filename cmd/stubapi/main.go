package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maantrambadia/aerisgo-mobile-sub000/internal/stub"
)

const (
	defaultPort = "8080"
	holdWindow  = 600 * time.Second
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = defaultPort
	}

	store := stub.NewStore(holdWindow)
	// Two sample flights so round-trip flows work out of the box.
	// Rows 1 and 8 get extra legroom (bulkhead and exit row).
	store.AddFlight("FL001", 30, 1, 8)
	store.AddFlight("FL002", 30, 1, 8)

	server := stub.NewServer(store)
	stopReaper := server.StartReaper(time.Second)
	defer stopReaper()

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Stub booking API listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server stopped")
}
