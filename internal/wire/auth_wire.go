package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	r.Route("/auth", func(r chi.Router) {
		// Basic credentials, no bearer token needed
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.With(middleware.RequireRefresh).Post("/token/access", authHandler.RotateAccessToken)
		r.With(middleware.Authenticated).Post("/token/block", authHandler.BlockToken)
	})
}
