package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	cache cache.Cache,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/movie", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.With(middleware.Throttle(cache, config.Throttle.MovieListPerMinute, log)).Get("/", movieHandler.FindAll)
		r.Get("/recent", movieHandler.FindRecent)
		r.Get("/{id}", movieHandler.FindByID)

		// ==================== USER ROUTES ====================
		r.With(middleware.Authenticated).Post("/{id}/like", movieHandler.Like)
		r.With(middleware.Authenticated).Post("/{id}/dislike", movieHandler.Dislike)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(middleware.RBAC(adminRole))

			r.Post("/", movieHandler.Create)
			r.Patch("/{id}", movieHandler.Update)
			r.Delete("/{id}", movieHandler.Delete)
		})
	})
}
