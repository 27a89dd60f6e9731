package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler) {
	r.Route("/user", func(r chi.Router) {
		r.Use(middleware.Authenticated)

		r.Get("/{id}", userHandler.FindByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RBAC(adminRole))

			r.Get("/", userHandler.FindAll)
			r.Post("/", userHandler.Create)
			r.Patch("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})
}
