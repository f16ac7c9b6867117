package routes

import (
	"github.com/Akhil2453/NRLScoringApp/handlers"
	"github.com/Akhil2453/NRLScoringApp/middleware"
	"github.com/Akhil2453/NRLScoringApp/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	scheduleHandler *handlers.ScheduleHandler,
	matchHandler *handlers.MatchHandler,
	scoreHandler *handlers.ScoreHandler,
	teamHandler *handlers.TeamHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	authenticate := middleware.Authenticator([]byte(jwtSecret))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/schedule", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireRoles(models.RoleAdmin))
		r.Post("/upload", scheduleHandler.UploadSchedule)
	})

	router.Route("/matches", func(r chi.Router) {
		// Публичные маршруты: табло и зрители читают без токена.
		r.Get("/", matchHandler.ListMatches)
		r.Get("/{matchID}/summary", matchHandler.GetMatchSummary)
		r.Get("/{matchID}/details", matchHandler.GetMatchDetails)

		// Судейские маршруты.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.With(middleware.RequireRoles(models.RoleReferee, models.RoleHeadReferee)).
				Post("/{matchID}/score/{alliance}", scoreHandler.SubmitScore)
			r.With(middleware.RequireRoles(models.RoleHeadReferee)).
				Post("/finalise", scoreHandler.FinaliseScore)
		})
	})

	router.With(authenticate, middleware.RequireRoles(models.RoleHeadReferee, models.RoleAdmin)).
		Post("/broadcast", scoreHandler.BroadcastScore)

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamNumber}", teamHandler.GetProfile)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.With(middleware.RequireRoles(models.RoleAdmin, models.RoleHeadReferee)).
				Post("/{teamNumber}/inspection", teamHandler.UpdateInspection)
			r.With(middleware.RequireRoles(models.RoleHeadReferee)).
				Post("/{teamNumber}/cards", teamHandler.AddCard)
		})
	})

	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeMatch)
	router.Get("/ws/scores", webSocketHandler.ServeScores)
}
