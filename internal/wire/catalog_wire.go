package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireDirector(r chi.Router, directorHandler *adaptor.DirectorHandler) {
	r.Route("/director", func(r chi.Router) {
		r.Use(middleware.Authenticated)

		r.Get("/", directorHandler.FindAll)
		r.Get("/{id}", directorHandler.FindByID)

		r.With(middleware.RBAC(adminRole)).Post("/", directorHandler.Create)
		r.With(middleware.RBAC(adminRole)).Patch("/{id}", directorHandler.Update)
		r.With(middleware.RBAC(adminRole)).Delete("/{id}", directorHandler.Delete)
	})
}

func wireGenre(r chi.Router, genreHandler *adaptor.GenreHandler) {
	r.Route("/genre", func(r chi.Router) {
		r.Use(middleware.Authenticated)

		r.Get("/", genreHandler.FindAll)
		r.Get("/{id}", genreHandler.FindByID)

		r.With(middleware.RBAC(adminRole)).Post("/", genreHandler.Create)
		r.With(middleware.RBAC(adminRole)).Patch("/{id}", genreHandler.Update)
		r.With(middleware.RBAC(adminRole)).Delete("/{id}", genreHandler.Delete)
	})
}
