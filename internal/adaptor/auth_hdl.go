package adaptor

import (
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /auth/register with "Authorization: Basic base64(email:password)"
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Register(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		handleServiceError(w, h.log, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", user)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.service.Login(r.Context(), r.Header.Get("Authorization"))
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", tokens)
}

// RotateAccessToken handles POST /auth/token/access
func (h *AuthHandler) RotateAccessToken(w http.ResponseWriter, r *http.Request) {
	claims, _ := utils.GetClaimsFromContext(r.Context())

	token, err := h.service.RotateAccessToken(r.Context(), claims)
	if err != nil {
		handleServiceError(w, h.log, err, "rotate access token")
		return
	}

	utils.ResponseSuccess(w, "Access token issued", token)
}

// BlockToken handles POST /auth/token/block
func (h *AuthHandler) BlockToken(w http.ResponseWriter, r *http.Request) {
	var req request.BlockTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.BlockToken(r.Context(), req.Token); err != nil {
		handleServiceError(w, h.log, err, "block token")
		return
	}

	utils.ResponseSuccess(w, "Token blocked", true)
}
