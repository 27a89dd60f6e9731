package adaptor

import (
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type DirectorHandler struct {
	service usecase.DirectorService
	log     *zap.Logger
}

func NewDirectorHandler(service usecase.DirectorService, log *zap.Logger) *DirectorHandler {
	return &DirectorHandler{
		service: service,
		log:     log.With(zap.String("handler", "director")),
	}
}

func (h *DirectorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.DirectorRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	director, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create director")
		return
	}

	utils.ResponseCreated(w, "Director created successfully", director)
}

// FindAll handles GET /director; ?page= switches to page pagination.
func (h *DirectorHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Has("page") {
		req := &request.PaginatedRequest{
			Page: parseInt(query.Get("page"), 1),
			Take: parseInt(query.Get("take"), request.DefaultTake),
		}

		page, err := h.service.FindPage(r.Context(), req)
		if err != nil {
			handleServiceError(w, h.log, err, "get directors")
			return
		}

		utils.ResponseSuccess(w, "Directors retrieved successfully", page)
		return
	}

	directors, err := h.service.FindAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get directors")
		return
	}

	utils.ResponseSuccess(w, "Directors retrieved successfully", directors)
}

func (h *DirectorHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	director, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get director")
		return
	}

	utils.ResponseSuccess(w, "Director retrieved successfully", director)
}

func (h *DirectorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req request.DirectorUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	director, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update director")
		return
	}

	utils.ResponseSuccess(w, "Director updated successfully", director)
}

func (h *DirectorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "delete director")
		return
	}

	utils.ResponseSuccess(w, "Director deleted successfully", response.DeletedResponse{ID: deleted})
}
