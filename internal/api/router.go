package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/montaro/algohub/internal/api/handlers"
	"github.com/montaro/algohub/internal/auth"
	"github.com/montaro/algohub/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.TokenManager,
	users services.UserServiceProvider,
	categories services.CategoryServiceProvider,
	algorithms services.AlgorithmServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	userHandler := handlers.NewUserHandler(users, algorithms, tokens)
	categoryHandler := handlers.NewCategoryHandler(categories)
	algorithmHandler := handlers.NewAlgorithmHandler(algorithms)

	r.Route("/users", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Post("/logout", userHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(tokens.RequireAuth)
			r.Get("/algorithms", userHandler.ListAlgorithms)
			r.Get("/{id:[0-9]+}/algorithms", userHandler.ListAlgorithms)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Use(tokens.RequireAuth)
		r.Get("/", categoryHandler.List)
		r.Post("/", categoryHandler.Create)
		r.Route("/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", categoryHandler.Get)
			r.Put("/", categoryHandler.Update)
			r.Delete("/", categoryHandler.Delete)
		})
	})

	// Algorithm reads are public; everything else takes a session.
	r.Get("/", algorithmHandler.ListPublic)
	r.Get("/{algoID:[0-9]+}", algorithmHandler.Get)
	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireAuth)
		r.Post("/", algorithmHandler.Create)
		r.Put("/{algoID:[0-9]+}", algorithmHandler.Update)
		r.Delete("/{algoID:[0-9]+}", algorithmHandler.Delete)
	})

	return r
}
