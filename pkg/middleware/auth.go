package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Bearer resolves "Authorization: Bearer <token>" into claims on the request
// context. Requests without the header continue anonymously; Basic credentials
// pass through untouched for the auth handlers.
func Bearer(tokens *utils.TokenManager, c cache.Cache, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.With(zap.String("middleware", "bearer"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || strings.HasPrefix(strings.ToLower(header), "basic ") {
				next.ServeHTTP(w, r)
				return
			}

			token, err := utils.ExtractBearerToken(header)
			if err != nil {
				utils.ResponseBadRequest(w, "Invalid token format. Use: Bearer <token>", nil)
				return
			}

			claims, err := Authenticate(r.Context(), tokens, c, token, logger)
			if err != nil {
				if errors.Is(err, utils.ErrInvalidToken) {
					utils.ResponseUnauthorized(w, "token expired")
					return
				}
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			ctx := utils.SetClaimsContext(r.Context(), claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authenticate verifies a raw token against the block list, the payload
// cache and finally its signature. Verification failures wrap
// utils.ErrInvalidToken.
func Authenticate(ctx context.Context, tokens *utils.TokenManager, c cache.Cache, token string, logger *zap.Logger) (*utils.TokenClaims, error) {
	blocked, err := cache.IsBlocked(ctx, c, token)
	if err != nil {
		logger.Error("Failed to check token block list", zap.Error(err))
		return nil, err
	}
	if blocked {
		logger.Warn("Blocked token used")
		return nil, utils.ErrInvalidToken
	}

	if raw, err := c.Get(ctx, cache.TokenKey(token)); err == nil {
		var claims utils.TokenClaims
		if err := json.Unmarshal(raw, &claims); err == nil {
			return &claims, nil
		}
	}

	claims, err := tokens.VerifyAny(token)
	if err != nil {
		logger.Debug("Token verification failed", zap.Error(err))
		return nil, err
	}

	if claims.ExpiresAt != nil {
		if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
			if raw, err := json.Marshal(claims); err == nil {
				if err := c.Set(ctx, cache.TokenKey(token), raw, ttl); err != nil {
					logger.Warn("Failed to cache token payload", zap.Error(err))
				}
			}
		}
	}

	return claims, nil
}

// Authenticated requires a user authenticated with an access token.
func Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := utils.GetClaimsFromContext(r.Context())
		if !ok {
			utils.ResponseUnauthorized(w, "Authentication required")
			return
		}
		if claims.Type != utils.TokenTypeAccess {
			utils.ResponseForbidden(w, "Access token required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RBAC requires an access token whose role is at least as privileged as role.
// Smaller role numbers are more privileged.
func RBAC(role int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return Authenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole, _ := utils.GetRoleFromContext(r.Context())
			if userRole > role {
				utils.ResponseForbidden(w, "Insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		}))
	}
}

// RequireRefresh requires a refresh token.
func RequireRefresh(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := utils.GetClaimsFromContext(r.Context())
		if !ok || claims.Type != utils.TokenTypeRefresh {
			utils.ResponseUnauthorized(w, "Refresh token required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
