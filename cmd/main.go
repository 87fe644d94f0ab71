package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Dosada05/cricket-system/config"
	"github.com/Dosada05/cricket-system/db"
	"github.com/Dosada05/cricket-system/handlers"
	"github.com/Dosada05/cricket-system/live"
	"github.com/Dosada05/cricket-system/models"
	"github.com/Dosada05/cricket-system/repositories"
	api "github.com/Dosada05/cricket-system/routes"
	"github.com/Dosada05/cricket-system/services"
	"github.com/Dosada05/cricket-system/storage"
)

// liveSource отдаёт broadcaster-у свежие снимки матча из сервисного слоя.
type liveSource struct {
	matches      services.MatchService
	performances services.PerformanceService
}

func (s liveSource) Summary(ctx context.Context, matchID int) (*models.MatchSummary, error) {
	return s.matches.Summary(ctx, matchID)
}

func (s liveSource) Performances(ctx context.Context, matchID int) ([]*models.PlayerPerformance, error) {
	return s.performances.ListByMatch(ctx, matchID)
}

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Инициализация загрузчика файлов (Cloudflare R2)
	uploader, err := storage.NewR2Uploader(context.Background(), storage.R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	// Инициализация репозиториев
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	stadiumRepo := repositories.NewPostgresStadiumRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	performanceRepo := repositories.NewPostgresPerformanceRepository(dbConn)
	standingsRepo := repositories.NewPostgresStandingsRepository(dbConn)
	logger.Info("repositories initialized")

	// Live-хаб и трансляция
	hub := live.NewHub(logger)

	// Инициализация сервисов
	authorizer := services.NewTournamentAuthorizer(tournamentRepo)
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, uploader)
	tournamentService := services.NewTournamentService(tournamentRepo, standingsRepo, authorizer)
	stadiumService := services.NewStadiumService(stadiumRepo)
	teamService := services.NewTeamService(dbConn, teamRepo, userRepo, authorizer, logger)
	performanceService := services.NewPerformanceService(performanceRepo, matchRepo, authorizer)

	broadcaster := live.NewBroadcaster(hub, nil, cfg.LiveInterval, logger)
	matchService := services.NewMatchService(
		dbConn,
		matchRepo,
		teamRepo,
		performanceRepo,
		standingsRepo,
		authorizer,
		broadcaster,
		logger,
	)
	broadcaster.SetSource(liveSource{matches: matchService, performances: performanceService})
	hub.SetRoomObserver(broadcaster)
	go hub.Run()
	logger.Info("live hub started", slog.Duration("interval", cfg.LiveInterval))
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	userHandler := handlers.NewUserHandler(userService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	stadiumHandler := handlers.NewStadiumHandler(stadiumService)
	teamHandler := handlers.NewTeamHandler(teamService)
	matchHandler := handlers.NewMatchHandler(matchService, performanceService)
	webSocketHandler := handlers.NewWebSocketHandler(hub, matchService, logger)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		userHandler,
		tournamentHandler,
		stadiumHandler,
		teamHandler,
		matchHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
