package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/broadside/internal/auth"
	"github.com/freeeve/broadside/internal/config"
	"github.com/freeeve/broadside/internal/handler"
	"github.com/freeeve/broadside/internal/logger"
	"github.com/freeeve/broadside/internal/middleware"
	"github.com/freeeve/broadside/internal/repository/memory"
	"github.com/freeeve/broadside/internal/service"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Dev: cfg.Dev})
	log.Info().
		Str("port", cfg.Port).
		Int("maxGames", cfg.MaxGames).
		Int("defaultGridSize", cfg.DefaultGridSize).
		Int64("botSeed", cfg.BotSeed).
		Msg("Config loaded")

	// Registry
	games := memory.NewGameRegistry(cfg.MaxGames)
	scores := memory.NewScoreBoard()

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret)

	// WebSocket hub
	wsHub := handler.NewHub()

	// Services
	gameSvc := service.NewGameService(games, scores, wsHub)
	gameSvc.SetDefaultGridSize(cfg.DefaultGridSize)
	gameSvc.SetSeed(cfg.BotSeed)
	reaper := service.NewIdleReaper(gameSvc, cfg.GameIdleTTL, cfg.ReapInterval)

	// Handlers
	authHandler := handler.NewAuthHandler(jwtMgr)
	gameHandler := handler.NewGameHandler(gameSvc)
	wsHandler := handler.NewWSHandler(wsHub, jwtMgr, gameSvc)

	// Router
	mux := http.NewServeMux()
	authMw := auth.Middleware(jwtMgr)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth (public)
	mux.HandleFunc("POST /auth/session", authHandler.CreateSession)
	mux.HandleFunc("POST /auth/refresh", authHandler.RefreshToken)

	// Protected API routes
	api := http.NewServeMux()
	api.HandleFunc("POST /games", gameHandler.CreateGame)
	api.HandleFunc("GET /games", gameHandler.ListGames)
	api.HandleFunc("GET /games/{id}", gameHandler.GetGame)
	api.HandleFunc("DELETE /games/{id}", gameHandler.DeleteGame)
	api.HandleFunc("POST /games/{id}/attack", gameHandler.Attack)
	api.HandleFunc("GET /games/{id}/history", gameHandler.History)
	api.HandleFunc("POST /games/{id}/undo", gameHandler.Undo)
	api.HandleFunc("POST /games/{id}/restart", gameHandler.RestartGame)
	api.HandleFunc("GET /scoreboard", gameHandler.Scoreboard)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authMw(api)))

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	// Apply global middleware
	root := middleware.Chain(mux, middleware.Recover, middleware.Logger, middleware.CORS(cfg.CORSOrigins...), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start idle reaper
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reaper.Start(ctx)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
