package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

// blocked tokens expire from the cache this long before the token itself
const blockTokenMargin = 30 * time.Second

type AuthService interface {
	Register(ctx context.Context, rawToken string) (*response.UserResponse, error)
	Login(ctx context.Context, rawToken string) (*response.TokenPairResponse, error)
	RotateAccessToken(ctx context.Context, claims *utils.TokenClaims) (*response.AccessTokenResponse, error)
	BlockToken(ctx context.Context, token string) error
}

type authService struct {
	repo   *repository.Repository
	users  UserService
	tokens *utils.TokenManager
	cache  cache.Cache
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(
	repo *repository.Repository,
	users UserService,
	tokens *utils.TokenManager,
	cache cache.Cache,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		users:  users,
		tokens: tokens,
		cache:  cache,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

// Register creates a user from "Basic base64(email:password)".
func (s *authService) Register(ctx context.Context, rawToken string) (*response.UserResponse, error) {
	email, password, err := utils.ParseBasicToken(rawToken)
	if err != nil {
		return nil, badRequest("invalid token format")
	}

	return s.users.Create(ctx, &request.CreateUserRequest{
		Email:    email,
		Password: password,
	})
}

func (s *authService) Login(ctx context.Context, rawToken string) (*response.TokenPairResponse, error) {
	email, password, err := utils.ParseBasicToken(rawToken)
	if err != nil {
		return nil, badRequest("invalid token format")
	}

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("email", email))
		return nil, badRequest("invalid login")
	}

	refreshToken, err := s.tokens.Issue(user.ID, int(user.Role), utils.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	accessToken, err := s.tokens.Issue(user.ID, int(user.Role), utils.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))

	return &response.TokenPairResponse{
		RefreshToken: refreshToken,
		AccessToken:  accessToken,
	}, nil
}

// RotateAccessToken issues a new access token for the holder of a refresh token.
func (s *authService) RotateAccessToken(ctx context.Context, claims *utils.TokenClaims) (*response.AccessTokenResponse, error) {
	if claims == nil || claims.Type != utils.TokenTypeRefresh {
		return nil, unauthorized("refresh token required")
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, unauthorized("invalid token subject")
	}

	accessToken, err := s.tokens.Issue(userID, claims.Role, utils.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	return &response.AccessTokenResponse{AccessToken: accessToken}, nil
}

// BlockToken revokes a token until shortly before it would expire anyway.
func (s *authService) BlockToken(ctx context.Context, token string) error {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return badRequest("invalid token format")
	}

	ttl := time.Millisecond
	if claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Sub(s.now()) - blockTokenMargin; remaining > ttl {
			ttl = remaining
		}
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return fmt.Errorf("marshal claims: %w", err)
	}

	if err := s.cache.Set(ctx, cache.BlockTokenKey(token), payload, ttl); err != nil {
		s.log.Error("Failed to block token", zap.Error(err))
		return fmt.Errorf("block token: %w", err)
	}

	s.log.Info("Token blocked", zap.String("sub", claims.Subject), zap.Duration("ttl", ttl))
	return nil
}
