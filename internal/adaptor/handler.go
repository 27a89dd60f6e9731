package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"movie-catalog/internal/chat"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Director *DirectorHandler
	Genre    *GenreHandler
	Movie    *MovieHandler
	Common   *CommonHandler
	Chat     *ChatHandler
}

func NewHandler(
	service *usecase.Service,
	hub *chat.Hub,
	tokens *utils.TokenManager,
	cache cache.Cache,
	log *zap.Logger,
) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Director: NewDirectorHandler(service.Director, log),
		Genre:    NewGenreHandler(service.Genre, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Common:   NewCommonHandler(service.Common, log),
		Chat:     NewChatHandler(hub, tokens, cache, log),
	}
}

// handleServiceError maps service error kinds to responses
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	message := err.Error()

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, message)

	case errors.Is(err, usecase.ErrBadRequest),
		errors.Is(err, usecase.ErrConflict):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, message, nil)

	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, message)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, message)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeAndValidate reads a JSON body into dst and writes the 400 itself on failure
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// parseID reads the {id} URL param
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		utils.ResponseBadRequest(w, "Invalid id", nil)
		return 0, false
	}
	return id, true
}

// parseInt helper for query parameters
func parseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
