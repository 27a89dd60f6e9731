package usecase

import (
	"context"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	FindAll(ctx context.Context) ([]response.UserResponse, error)
	FindByID(ctx context.Context, id int64) (*response.UserResponse, error)
	Update(ctx context.Context, id int64, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type userService struct {
	repo       repository.UserRepository
	hashRounds int
	log        *zap.Logger
}

func NewUserService(repo repository.UserRepository, hashRounds int, log *zap.Logger) UserService {
	return &userService{
		repo:       repo,
		hashRounds: hashRounds,
		log:        log.With(zap.String("service", "user")),
	}
}

func (s *userService) Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, conflict("email %s is already registered", req.Email)
	}

	hash, err := utils.HashPassword(req.Password, s.hashRounds)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         entity.RoleUser,
	}
	if req.Role != nil {
		user.Role = entity.Role(*req.Role)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, conflictOr(err, fmt.Sprintf("email %s is already registered", req.Email), "create user")
	}

	s.log.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) FindAll(ctx context.Context) ([]response.UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	out := make([]response.UserResponse, len(users))
	for i, u := range users {
		out[i] = response.UserToResponse(u)
	}
	return out, nil
}

func (s *userService) find(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, notFound("user %d does not exist", id)
	}
	return user, nil
}

func (s *userService) FindByID(ctx context.Context, id int64) (*response.UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, id int64, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = entity.Role(*req.Role)
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password, s.hashRounds)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, conflictOr(err, fmt.Sprintf("email %s is already registered", user.Email), "update user")
	}

	s.log.Info("User updated", zap.Int64("user_id", id))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, id int64) (int64, error) {
	if _, err := s.find(ctx, id); err != nil {
		return 0, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}

	s.log.Info("User deleted", zap.Int64("user_id", id))
	return id, nil
}
