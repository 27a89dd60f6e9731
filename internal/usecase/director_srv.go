package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type DirectorService interface {
	Create(ctx context.Context, req *request.DirectorRequest) (*response.DirectorResponse, error)
	FindAll(ctx context.Context) ([]response.DirectorResponse, error)
	FindPage(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.DirectorResponse], error)
	FindByID(ctx context.Context, id int64) (*response.DirectorResponse, error)
	Update(ctx context.Context, id int64, req *request.DirectorUpdateRequest) (*response.DirectorResponse, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type directorService struct {
	repo repository.DirectorRepository
	log  *zap.Logger
}

func NewDirectorService(repo repository.DirectorRepository, log *zap.Logger) DirectorService {
	return &directorService{
		repo: repo,
		log:  log.With(zap.String("service", "director")),
	}
}

func (s *directorService) Create(ctx context.Context, req *request.DirectorRequest) (*response.DirectorResponse, error) {
	dob, err := time.Parse(dateLayout, req.Dob)
	if err != nil {
		return nil, badRequest("invalid dob: %s", req.Dob)
	}

	director := &entity.Director{
		Name:        req.Name,
		Dob:         dob,
		Nationality: req.Nationality,
	}

	if err := s.repo.Create(ctx, director); err != nil {
		return nil, fmt.Errorf("create director: %w", err)
	}

	s.log.Info("Director created",
		zap.Int64("director_id", director.ID),
		zap.String("name", director.Name),
	)

	resp := response.DirectorToResponse(director)
	return &resp, nil
}

func directorsToResponse(directors []*entity.Director) []response.DirectorResponse {
	out := make([]response.DirectorResponse, len(directors))
	for i, d := range directors {
		out[i] = response.DirectorToResponse(d)
	}
	return out
}

func (s *directorService) FindAll(ctx context.Context) ([]response.DirectorResponse, error) {
	directors, err := s.repo.FindAll(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("find directors: %w", err)
	}
	return directorsToResponse(directors), nil
}

func (s *directorService) FindPage(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.DirectorResponse], error) {
	directors, err := s.repo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find directors: %w", err)
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count directors: %w", err)
	}

	return response.NewPaginatedResponse(directorsToResponse(directors), req.Page, req.Limit(), total), nil
}

func (s *directorService) find(ctx context.Context, id int64) (*entity.Director, error) {
	director, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find director: %w", err)
	}
	if director == nil {
		return nil, notFound("director %d does not exist", id)
	}
	return director, nil
}

func (s *directorService) FindByID(ctx context.Context, id int64) (*response.DirectorResponse, error) {
	director, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.DirectorToResponse(director)
	return &resp, nil
}

func (s *directorService) Update(ctx context.Context, id int64, req *request.DirectorUpdateRequest) (*response.DirectorResponse, error) {
	director, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		director.Name = *req.Name
	}
	if req.Nationality != nil {
		director.Nationality = *req.Nationality
	}
	if req.Dob != nil {
		dob, err := time.Parse(dateLayout, *req.Dob)
		if err != nil {
			return nil, badRequest("invalid dob: %s", *req.Dob)
		}
		director.Dob = dob
	}

	if err := s.repo.Update(ctx, director); err != nil {
		return nil, fmt.Errorf("update director: %w", err)
	}

	s.log.Info("Director updated", zap.Int64("director_id", id))

	resp := response.DirectorToResponse(director)
	return &resp, nil
}

func (s *directorService) Delete(ctx context.Context, id int64) (int64, error) {
	if _, err := s.find(ctx, id); err != nil {
		return 0, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("delete director: %w", err)
	}

	s.log.Info("Director deleted", zap.Int64("director_id", id))
	return id, nil
}
