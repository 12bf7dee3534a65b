package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/mkowal/todoapi/internal/services"
)

// NewRouter wires the full HTTP surface. Register and login are public;
// everything else sits behind the authentication gate.
func NewRouter(logger zerolog.Logger, accounts *services.AccountService, todos *services.TodoService) *chi.Mux {
	users := NewUserHandler(accounts)
	todoHandler := NewTodoHandler(todos)

	router := chi.NewRouter()
	router.Use(RequestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.Post("/users", users.Register)
	router.Post("/users/login", users.Login)

	router.Group(func(r chi.Router) {
		r.Use(Authenticate(accounts))

		r.Get("/users/me", users.Me)
		r.Delete("/users/me/token", users.Logout)
		r.Delete("/users/me/tokens", users.LogoutAll)

		r.Post("/todos", todoHandler.Create)
		r.Get("/todos", todoHandler.List)
		r.Get("/todos/{id}", todoHandler.Get)
		r.Patch("/todos/{id}", todoHandler.Update)
		r.Delete("/todos/{id}", todoHandler.Delete)
	})

	return router
}
