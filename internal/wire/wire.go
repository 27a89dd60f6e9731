package wire

import (
	"net/http"

	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/chat"
	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/storage"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// adminRole guards every write endpoint
var adminRole = int(entity.RoleAdmin)

// App holds the router and the long running parts the server starts
type App struct {
	Router *chi.Mux
	Hub    *chat.Hub
}

// Wiring builds services, handlers and routes
func Wiring(
	repo *repository.Repository,
	cache cache.Cache,
	storage storage.Storage,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	tokens := utils.NewTokenManager(config.JWT)

	service := usecase.NewService(repo, tokens, cache, storage, config, logger)
	hub := chat.NewHub(service.Chat, logger)
	handler := adaptor.NewHandler(service, hub, tokens, cache, logger)

	router := setupRouter(handler, tokens, cache, config, logger)

	return &App{
		Router: router,
		Hub:    hub,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	tokens *utils.TokenManager,
	cache cache.Cache,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Metrics)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Bearer(tokens, cache, logger))

	// Apply routes
	wireAuth(r, handler.Auth)
	wireUser(r, handler.User)
	wireDirector(r, handler.Director)
	wireGenre(r, handler.Genre)
	wireMovie(r, handler.Movie, cache, config, logger)
	wireCommon(r, handler.Common, config)
	wireChat(r, handler.Chat)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", middleware.MetricsHandler())

	return r
}
