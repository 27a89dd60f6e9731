package adaptor

import (
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// Create handles POST /user (admin only)
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create user")
		return
	}

	utils.ResponseCreated(w, "User created successfully", user)
}

// FindAll handles GET /user (admin only)
func (h *UserHandler) FindAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.FindAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// FindByID handles GET /user/{id}
func (h *UserHandler) FindByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	user, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// Update handles PATCH /user/{id} (admin only)
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req request.UpdateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated successfully", user)
}

// Delete handles DELETE /user/{id} (admin only)
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully", response.DeletedResponse{ID: deleted})
}
