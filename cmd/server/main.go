package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/dmarkovic/chirp/internal/config"
	"github.com/dmarkovic/chirp/internal/database"
	"github.com/dmarkovic/chirp/internal/logger"
	"github.com/dmarkovic/chirp/internal/media"
	"github.com/dmarkovic/chirp/internal/metrics"
	postgresrepo "github.com/dmarkovic/chirp/internal/repository/postgres"
	"github.com/dmarkovic/chirp/internal/service"
	"github.com/dmarkovic/chirp/internal/transport/http/handlers"
	"github.com/dmarkovic/chirp/internal/transport/http/middleware"
	"github.com/dmarkovic/chirp/internal/transport/ws"
)

func main() {
	cfg := config.Load()
	logger.Init()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		logrus.Fatal(err)
	}
	defer pool.Close()
	logrus.Info("Connected to database")

	// Image hosting
	uploader, err := media.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		logrus.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	notifRepo := postgresrepo.NewNotificationRepo(pool)
	postRepo := postgresrepo.NewPostRepo(pool)

	// Realtime notification push
	hub := ws.NewHub()
	go hub.Run()
	notifier := ws.NewHubNotifier(hub)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	userService := service.NewUserService(userRepo, uploader, notifier)
	postService := service.NewPostService(postRepo, userRepo, uploader)
	notifService := service.NewNotificationService(notifRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService)
	notifHandler := handlers.NewNotificationHandler(notifService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret, userRepo)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	// Protected
	mux.Handle("GET /api/auth/me", auth(http.HandlerFunc(authHandler.Me)))
	mux.Handle("GET /api/user/profile/{username}", auth(http.HandlerFunc(userHandler.Profile)))
	mux.Handle("POST /api/user/follow/{id}", auth(http.HandlerFunc(userHandler.Follow)))
	mux.Handle("GET /api/user/suggested", auth(http.HandlerFunc(userHandler.Suggested)))
	mux.Handle("POST /api/user/update", auth(http.HandlerFunc(userHandler.Update)))
	mux.Handle("POST /api/post/create", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("GET /api/post/{id}", auth(http.HandlerFunc(postHandler.Get)))
	mux.Handle("GET /api/notifications", auth(http.HandlerFunc(notifHandler.List)))

	// Start server with CORS and request metrics
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logrus.Infof("Starting server on %s", addr)
	handler := metrics.InstrumentHandler(middleware.CORS(cfg.CORSOrigin)(mux))
	logrus.Fatal(http.ListenAndServe(addr, handler))
}
