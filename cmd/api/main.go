package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"marketAPI/cmd/app"
	"marketAPI/internal/config"
	handlers "marketAPI/internal/handler"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY is not set")
	}

	deps := app.App(cfg)
	defer deps.Close()

	handler := handlers.NewHandlers(deps.Services, deps.DB, cfg)
	router := handlers.NewRouter(handler, deps.RateLimiter())

	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("server started on %s", addr)
	log.Printf("database: %s", cfg.DB.DbNAME)

	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
