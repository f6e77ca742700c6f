package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/opp-dev/polla-api/handlers"
	"github.com/opp-dev/polla-api/middleware"
)

// SetupRoutes собирает публичную и админскую части API на одном роутере.
func SetupRoutes(
	router *chi.Mux,
	authHandler *handlers.AuthHandler,
	fixtureHandler *handlers.FixtureHandler,
	pickHandler *handlers.PickHandler,
	rankingHandler *handlers.RankingHandler,
	resultHandler *handlers.ResultHandler,
	settingsHandler *handlers.SettingsHandler,
	jwtSecret []byte,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Публичная часть: доска, прогнозы, таблица позиций
	router.Get("/fixtures", fixtureHandler.List)
	router.Get("/fixtures/template", fixtureHandler.Template)
	router.Get("/results", resultHandler.List)
	router.Get("/ranking", rankingHandler.Ranking)
	router.Get("/ranking/detail", rankingHandler.Detail)
	router.Get("/settings", settingsHandler.Get)
	router.Post("/picks", pickHandler.Submit)
	router.Get("/picks/{name}", pickHandler.MyPicks)

	// Админская часть за общим секретом
	router.Post("/admin/login", authHandler.Login)
	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(jwtSecret))

		r.Post("/fixtures", fixtureHandler.Upload)
		r.Post("/fixtures/sample", fixtureHandler.LoadSample)
		r.Put("/results", resultHandler.Replace)
		r.Get("/settings", settingsHandler.Get)
		r.Put("/settings", settingsHandler.Update)
	})
}
