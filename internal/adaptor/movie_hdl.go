package adaptor

import (
	"net/http"
	"strings"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// parseOrder accepts repeated ?order= values as well as comma separated lists
func parseOrder(values []string) []string {
	var order []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				order = append(order, item)
			}
		}
	}
	return order
}

// FindAll handles GET /movie?cursor=&order=&take=&title=
func (h *MovieHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.MovieListRequest{
		CursorRequest: request.CursorRequest{
			Cursor: query.Get("cursor"),
			Order:  parseOrder(query["order"]),
			Take:   parseInt(query.Get("take"), request.DefaultTake),
		},
		Title: query.Get("title"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	var userID *int64
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		userID = &id
	}

	movies, err := h.service.FindAll(r.Context(), req, userID)
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// FindRecent handles GET /movie/recent
func (h *MovieHandler) FindRecent(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.FindRecent(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get recent movies")
		return
	}

	utils.ResponseSuccess(w, "Recent movies retrieved successfully", movies)
}

// FindByID handles GET /movie/{id}
func (h *MovieHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	movie, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// Create handles POST /movie (admin only)
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.MovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.Create(r.Context(), &req, userID)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// Update handles PATCH /movie/{id} (admin only)
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req request.MovieUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// Delete handles DELETE /movie/{id} (admin only)
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", response.DeletedResponse{ID: deleted})
}

// Like handles POST /movie/{id}/like
func (h *MovieHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, true)
}

// Dislike handles POST /movie/{id}/dislike
func (h *MovieHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, false)
}

func (h *MovieHandler) toggle(w http.ResponseWriter, r *http.Request, isLike bool) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	result, err := h.service.ToggleLike(r.Context(), id, userID, isLike)
	if err != nil {
		handleServiceError(w, h.log, err, "toggle movie like")
		return
	}

	utils.ResponseCreated(w, "Movie rating updated", result)
}
