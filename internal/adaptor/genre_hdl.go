package adaptor

import (
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type GenreHandler struct {
	service usecase.GenreService
	log     *zap.Logger
}

func NewGenreHandler(service usecase.GenreService, log *zap.Logger) *GenreHandler {
	return &GenreHandler{
		service: service,
		log:     log.With(zap.String("handler", "genre")),
	}
}

func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.GenreRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	genre, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create genre")
		return
	}

	utils.ResponseCreated(w, "Genre created successfully", genre)
}

// FindAll handles GET /genre; ?page= switches to page pagination.
func (h *GenreHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Has("page") {
		req := &request.PaginatedRequest{
			Page: parseInt(query.Get("page"), 1),
			Take: parseInt(query.Get("take"), request.DefaultTake),
		}

		page, err := h.service.FindPage(r.Context(), req)
		if err != nil {
			handleServiceError(w, h.log, err, "get genres")
			return
		}

		utils.ResponseSuccess(w, "Genres retrieved successfully", page)
		return
	}

	genres, err := h.service.FindAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get genres")
		return
	}

	utils.ResponseSuccess(w, "Genres retrieved successfully", genres)
}

func (h *GenreHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	genre, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get genre")
		return
	}

	utils.ResponseSuccess(w, "Genre retrieved successfully", genre)
}

func (h *GenreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req request.GenreUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	genre, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update genre")
		return
	}

	utils.ResponseSuccess(w, "Genre updated successfully", genre)
}

func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "delete genre")
		return
	}

	utils.ResponseSuccess(w, "Genre deleted successfully", response.DeletedResponse{ID: deleted})
}
