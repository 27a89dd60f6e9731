package wire

import (
	"net/http"

	"movie-catalog/internal/adaptor"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func wireCommon(r chi.Router, commonHandler *adaptor.CommonHandler, config *utils.Config) {
	r.Route("/common", func(r chi.Router) {
		r.Use(middleware.RBAC(adminRole))

		r.Post("/video", commonHandler.UploadVideo)
		r.Post("/presigned-url", commonHandler.PresignedURL)
	})

	// local storage serves uploads itself; s3 files are public objects
	if config.Storage.Driver == "local" {
		files := http.StripPrefix("/public/", http.FileServer(http.Dir(config.Storage.PublicDir)))
		r.Handle("/public/*", files)
	}
}

func wireChat(r chi.Router, chatHandler *adaptor.ChatHandler) {
	r.Get("/ws", chatHandler.ServeWS)
}
