package adaptor

import (
	"net/http"

	"movie-catalog/internal/chat"
	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type ChatHandler struct {
	hub      *chat.Hub
	tokens   *utils.TokenManager
	cache    cache.Cache
	upgrader *websocket.Upgrader
	log      *zap.Logger
}

func NewChatHandler(hub *chat.Hub, tokens *utils.TokenManager, cache cache.Cache, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		hub:    hub,
		tokens: tokens,
		cache:  cache,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: log.With(zap.String("handler", "chat")),
	}
}

// claims come from the bearer middleware, or from ?token= since browsers
// cannot set headers on websocket requests
func (h *ChatHandler) claims(r *http.Request) (*utils.TokenClaims, bool) {
	if claims, ok := utils.GetClaimsFromContext(r.Context()); ok {
		return claims, true
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		return nil, false
	}

	claims, err := middleware.Authenticate(r.Context(), h.tokens, h.cache, token, h.log)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// ServeWS handles GET /ws
func (h *ChatHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	if claims.Type != utils.TokenTypeAccess {
		utils.ResponseForbidden(w, "Access token required")
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		utils.ResponseUnauthorized(w, "Invalid token subject")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader already wrote the error response
		h.log.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.Serve(r.Context(), conn, userID, entity.Role(claims.Role))
}
