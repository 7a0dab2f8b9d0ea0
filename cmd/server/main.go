package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/skrapbuk/skrapbuk/internal/config"
	"github.com/skrapbuk/skrapbuk/internal/database"
	"github.com/skrapbuk/skrapbuk/internal/discord"
	postgresrepo "github.com/skrapbuk/skrapbuk/internal/repository/postgres"
	"github.com/skrapbuk/skrapbuk/internal/service"
	"github.com/skrapbuk/skrapbuk/internal/storage"
	"github.com/skrapbuk/skrapbuk/internal/transport/http/handlers"
	"github.com/skrapbuk/skrapbuk/internal/transport/http/middleware"
	"github.com/skrapbuk/skrapbuk/internal/transport/ws"
	"github.com/skrapbuk/skrapbuk/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg := config.Load()

	logger := logging.New()
	logger.Start()
	defer logger.Stop()

	// Event state (server, admins, start time, started flag)
	event, err := config.LoadEventStore(cfg.EventFile)
	if err != nil {
		log.Fatal(err)
	}

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	if err := database.MigrateUp(cfg); err != nil {
		log.Fatal(err)
	}

	// Repositories
	participantRepo := postgresrepo.NewParticipantRepo(pool)
	answersRepo := postgresrepo.NewAnswersRepo(pool)
	artworkRepo := postgresrepo.NewArtworkRepo(pool)
	banRepo := postgresrepo.NewBanRepo(pool)

	// Discord OAuth + guild lookups
	discordClient := discord.NewClient(cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.DiscordRedirectURL)

	// Artwork file store
	fileStore, err := storage.NewFileStore(cfg.ArtworkDir)
	if err != nil {
		log.Fatal(err)
	}

	// Services
	authService := service.NewAuthService(discordClient, cfg.JWTSecret)
	participantService := service.NewParticipantService(participantRepo, answersRepo, discordClient, event, logger)
	answersService := service.NewAnswersService(answersRepo, logger)
	artworkService := service.NewArtworkService(artworkRepo, participantRepo, fileStore, logger)
	banService := service.NewBanService(banRepo, participantRepo, logger)

	// WebSocket event feed. The event service notifies through the hub and
	// the hub answers countdown queries through the event service, so the
	// closure captures the variable assigned right after.
	var eventService *service.EventService
	hub := ws.NewHub(func() string {
		return eventService.Countdown().String()
	})
	eventService = service.NewEventService(participantRepo, event, ws.NewHubNotifier(hub), logger)
	go hub.Run()

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.FrontendURL)
	userHandler := handlers.NewUserHandler(participantService, answersService, logger)
	artworkHandler := handlers.NewArtworkHandler(artworkService, logger)
	eventHandler := handlers.NewEventHandler(eventService, logger)
	banHandler := handlers.NewBanHandler(banService, logger)

	// Gate
	gate := middleware.NewGate(cfg.JWTSecret, participantRepo, answersRepo, banRepo, event, logger)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("GET /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/auth/callback", authHandler.Callback)

	// Participants
	mux.Handle("GET /api/users/me", gate.Protect("users.me", http.HandlerFunc(userHandler.Me), gate.NotBanned()))
	mux.Handle("POST /api/users/answers", gate.Protect("users.answers.submit", http.HandlerFunc(userHandler.SubmitAnswers), gate.NotBanned()))
	mux.Handle("GET /api/users/answers", gate.Protect("users.answers.get", http.HandlerFunc(userHandler.GetAnswers), gate.NotBanned()))
	mux.Handle("POST /api/users/join", gate.Protect("users.join", http.HandlerFunc(userHandler.Join), gate.NotBanned(), gate.AnswersSubmitted()))
	mux.Handle("GET /api/users/partner", gate.Protect("users.partner", http.HandlerFunc(userHandler.Partner), gate.NotBanned(), gate.PartnerAssigned()))

	// Artwork
	mux.Handle("POST /api/artwork", gate.Protect("artwork.upload", http.HandlerFunc(artworkHandler.Upload), gate.NotBanned(), gate.PartnerAssigned()))
	mux.Handle("GET /api/artwork", gate.Protect("artwork.own", http.HandlerFunc(artworkHandler.Own), gate.NotBanned(), gate.PartnerAssigned()))
	mux.Handle("GET /api/artwork/partner", gate.Protect("artwork.partner", http.HandlerFunc(artworkHandler.FromPartner), gate.NotBanned(), gate.PartnerAssigned()))

	// Event
	mux.Handle("GET /api/event/countdown", gate.Protect("event.countdown", http.HandlerFunc(eventHandler.Countdown), gate.NotBanned()))
	mux.Handle("POST /api/event/start", gate.Protect("event.start", http.HandlerFunc(eventHandler.Start), gate.Admin()))

	// Admin
	mux.Handle("GET /api/users/all", gate.Protect("users.all", http.HandlerFunc(userHandler.All), gate.Admin()))
	mux.Handle("POST /api/bans/{snowflake}", gate.Protect("bans.ban", http.HandlerFunc(banHandler.Ban), gate.Admin()))
	mux.Handle("DELETE /api/bans/{snowflake}", gate.Protect("bans.unban", http.HandlerFunc(banHandler.Unban), gate.Admin()))

	// WebSocket
	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	// Development seed users
	if cfg.Environment == "development" && cfg.SeedUsers != "" {
		n, err := strconv.Atoi(cfg.SeedUsers)
		if err != nil {
			log.Fatalf("invalid SEED_USERS %q: %v", cfg.SeedUsers, err)
		}
		if err := participantService.SeedDev(context.Background(), n); err != nil {
			log.Fatal(err)
		}
		logger.Info("seeded development participants", logrus.Fields{"count": n})
	}

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
