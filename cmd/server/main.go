package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/flintapp/flint/internal/cache"
	"github.com/flintapp/flint/internal/config"
	"github.com/flintapp/flint/internal/database"
	"github.com/flintapp/flint/internal/logger"
	postgresrepo "github.com/flintapp/flint/internal/repository/postgres"
	"github.com/flintapp/flint/internal/service"
	"github.com/flintapp/flint/internal/transport/http/handlers"
	"github.com/flintapp/flint/internal/transport/http/middleware"
	"github.com/flintapp/flint/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	logger.Init(&logger.Config{
		Level:  cfg.LogLevel,
		Format: logger.Format(cfg.LogFormat),
	})

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(context.Background(), pool); err != nil {
		logger.Error("failed to apply schema", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Redis
	redisCache := cache.New(cfg.RedisAddr)
	if err := redisCache.Ping(context.Background()); err != nil {
		logger.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	profileRepo := postgresrepo.NewProfileRepo(pool)
	photoRepo := postgresrepo.NewPhotoRepo(pool)
	swipeRepo := postgresrepo.NewSwipeRepo(pool)
	matchRepo := postgresrepo.NewMatchRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, profileRepo, cfg.JWTSecret)
	profileService := service.NewProfileService(userRepo, profileRepo, photoRepo)
	discoveryService := service.NewDiscoveryService(profileRepo, photoRepo)
	swipeService := service.NewSwipeService(swipeRepo, matchRepo, redisCache)
	matchService := service.NewMatchService(matchRepo, messageRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService)
	swipeHandler := handlers.NewSwipeHandler(discoveryService, swipeService)
	matchHandler := handlers.NewMatchHandler(matchService)

	// Websocket hub; the room registry lives in here, nowhere else.
	hub := ws.NewHub()
	go hub.Run()

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)

	// Protected - Profiles
	mux.Handle("GET /profiles/me", auth(http.HandlerFunc(profileHandler.Me)))
	mux.Handle("PUT /profiles/me", auth(http.HandlerFunc(profileHandler.UpdateMe)))
	mux.Handle("DELETE /profiles/me", auth(http.HandlerFunc(profileHandler.Deactivate)))
	mux.Handle("POST /profiles/me/photos", auth(http.HandlerFunc(profileHandler.AddPhoto)))
	mux.Handle("DELETE /profiles/me/photos/{id}", auth(http.HandlerFunc(profileHandler.DeletePhoto)))

	// Protected - Swipes
	mux.Handle("GET /swipe/next", auth(http.HandlerFunc(swipeHandler.Next)))
	mux.Handle("POST /swipe", auth(http.HandlerFunc(swipeHandler.Swipe)))
	mux.Handle("GET /swipe/liked-you/count", auth(http.HandlerFunc(swipeHandler.LikedYouCount)))

	// Protected - Matches
	mux.Handle("GET /matches", auth(http.HandlerFunc(matchHandler.List)))
	mux.Handle("GET /matches/{id}/messages", auth(http.HandlerFunc(matchHandler.ListMessages)))
	mux.Handle("POST /matches/{id}/messages", auth(http.HandlerFunc(matchHandler.SendMessage)))

	// Realtime relay (token checked in the handshake itself)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, matchService, cfg.JWTSecret))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logger.Info("starting server", "addr", addr)
	if err := http.ListenAndServe(addr, middleware.CORS(mux)); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
