package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Dosada05/cricket-system/handlers"
	"github.com/Dosada05/cricket-system/middleware"
)

// SetupRoutes собирает все HTTP и WebSocket маршруты приложения.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tournamentHandler *handlers.TournamentHandler,
	stadiumHandler *handlers.StadiumHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(jwtSecret)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Get("/{userId}", userHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/me", userHandler.GetMe)
			r.Put("/me", userHandler.UpdateMe)
			r.Post("/me/photo", userHandler.UploadPhoto)
			r.Delete("/me", userHandler.DeleteMe)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{tournamentId}", tournamentHandler.GetByID)
		r.Get("/{tournamentId}/standings", tournamentHandler.Standings)
		r.Get("/{tournamentId}/teams", teamHandler.ListByTournament)
		r.Get("/{tournamentId}/matches", matchHandler.ListByTournament)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", tournamentHandler.Create)
			r.Post("/{tournamentId}/fixtures", matchHandler.GenerateFixtures)
			r.Delete("/{tournamentId}", tournamentHandler.Delete)
		})
	})

	router.Route("/stadiums", func(r chi.Router) {
		r.Get("/", stadiumHandler.List)
		r.Get("/{stadiumId}", stadiumHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", stadiumHandler.Create)
			r.Put("/{stadiumId}", stadiumHandler.Update)
			r.Delete("/{stadiumId}", stadiumHandler.Delete)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.List)
		r.Get("/{teamId}", teamHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", teamHandler.Create)
			r.Post("/{teamId}/players", teamHandler.AddPlayer)
			r.Delete("/{teamId}", teamHandler.Delete)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.List)
		r.Get("/{matchId}", matchHandler.GetByID)
		r.Get("/{matchId}/summary", matchHandler.GetSummary)
		r.Get("/{matchId}/scorecard", matchHandler.GetScorecard)
		r.Get("/{matchId}/performances", matchHandler.ListPerformances)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", matchHandler.Schedule)
			r.Patch("/{matchId}/score", matchHandler.ApplyBall)
			r.Patch("/{matchId}/finalize", matchHandler.Finalize)
			r.Patch("/{matchId}/performances", matchHandler.RecordPerformance)
			r.Delete("/{matchId}", matchHandler.Delete)
		})
	})

	// Live-трансляции. Авторизация не требуется, канал только на чтение.
	router.Get("/ws/matches/{matchId}", webSocketHandler.ServeMatch)
	router.Get("/ws/matches/{matchId}/details", webSocketHandler.ServeMatchDetails)
}
