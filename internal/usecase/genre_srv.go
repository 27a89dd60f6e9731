package usecase

import (
	"context"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"

	"go.uber.org/zap"
)

type GenreService interface {
	Create(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error)
	FindAll(ctx context.Context) ([]response.GenreResponse, error)
	FindPage(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error)
	FindByID(ctx context.Context, id int64) (*response.GenreResponse, error)
	Update(ctx context.Context, id int64, req *request.GenreUpdateRequest) (*response.GenreResponse, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type genreService struct {
	repo repository.GenreRepository
	log  *zap.Logger
}

func NewGenreService(repo repository.GenreRepository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) Create(ctx context.Context, req *request.GenreRequest) (*response.GenreResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, fmt.Errorf("check genre name: %w", err)
	}
	if existing != nil {
		return nil, conflict("genre %s already exists", req.Name)
	}

	genre := &entity.Genre{Name: req.Name}
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, conflictOr(err, fmt.Sprintf("genre %s already exists", req.Name), "create genre")
	}

	s.log.Info("Genre created",
		zap.Int64("genre_id", genre.ID),
		zap.String("name", genre.Name),
	)

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) FindAll(ctx context.Context) ([]response.GenreResponse, error) {
	genres, err := s.repo.FindAll(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}
	return response.GenresToResponse(genres), nil
}

func (s *genreService) FindPage(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error) {
	genres, err := s.repo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count genres: %w", err)
	}

	return response.NewPaginatedResponse(response.GenresToResponse(genres), req.Page, req.Limit(), total), nil
}

func (s *genreService) find(ctx context.Context, id int64) (*entity.Genre, error) {
	genre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find genre: %w", err)
	}
	if genre == nil {
		return nil, notFound("genre %d does not exist", id)
	}
	return genre, nil
}

func (s *genreService) FindByID(ctx context.Context, id int64) (*response.GenreResponse, error) {
	genre, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) Update(ctx context.Context, id int64, req *request.GenreUpdateRequest) (*response.GenreResponse, error) {
	genre, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		genre.Name = *req.Name
	}

	if err := s.repo.Update(ctx, genre); err != nil {
		return nil, conflictOr(err, fmt.Sprintf("genre %s already exists", genre.Name), "update genre")
	}

	s.log.Info("Genre updated", zap.Int64("genre_id", id))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) Delete(ctx context.Context, id int64) (int64, error) {
	if _, err := s.find(ctx, id); err != nil {
		return 0, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("delete genre: %w", err)
	}

	s.log.Info("Genre deleted", zap.Int64("genre_id", id))
	return id, nil
}
