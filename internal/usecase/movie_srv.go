package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/storage"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

const (
	RecentMoviesKey   = "MOVIE_RECENT"
	recentMoviesLimit = 10
	recentMoviesTTL   = time.Minute
)

type MovieService interface {
	// FindAll lists one cursor page; userID is nil for anonymous callers.
	FindAll(ctx context.Context, req *request.MovieListRequest, userID *int64) (*response.MovieListResponse, error)
	FindRecent(ctx context.Context) ([]response.MovieResponse, error)
	FindByID(ctx context.Context, id int64) (*response.MovieResponse, error)
	Create(ctx context.Context, req *request.MovieRequest, creatorID int64) (*response.MovieResponse, error)
	Update(ctx context.Context, id int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	Delete(ctx context.Context, id int64) (int64, error)
	// ToggleLike records a like or dislike; repeating the same vote removes it.
	ToggleLike(ctx context.Context, movieID, userID int64, isLike bool) (*response.LikeResponse, error)
}

type movieService struct {
	repo    *repository.Repository
	storage storage.Storage
	cache   cache.Cache
	config  *utils.Config
	log     *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	storage storage.Storage,
	cache cache.Cache,
	config *utils.Config,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo:    repo,
		storage: storage,
		cache:   cache,
		config:  config,
		log:     log.With(zap.String("service", "movie")),
	}
}

// FileURL renders a stored movie file path as a public URL: the S3 bucket
// in production, PUBLIC_URL otherwise.
func FileURL(config *utils.Config) func(string) string {
	return func(path string) string {
		if config.App.IsProd() {
			return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
				config.Storage.Bucket, config.Storage.Region, path)
		}
		return strings.TrimRight(config.App.PublicURL, "/") + "/" + path
	}
}

func (s *movieService) toResponse(movie *entity.Movie) response.MovieResponse {
	return response.MovieToResponse(movie, FileURL(s.config))
}

func (s *movieService) attachGenres(ctx context.Context, movies []*entity.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	ids := make([]int64, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}

	genres, err := s.repo.Genre.FindByMovieIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("find movie genres: %w", err)
	}

	for _, m := range movies {
		m.Genres = genres[m.ID]
	}
	return nil
}

func (s *movieService) FindAll(ctx context.Context, req *request.MovieListRequest, userID *int64) (*response.MovieListResponse, error) {
	page, err := repository.NewCursorPage(repository.MovieCursorColumns, req.Cursor, req.Order, req.Limit())
	if err != nil {
		s.log.Warn("Invalid cursor request", zap.Error(err))
		return nil, badRequest("%s", err.Error())
	}

	movies, err := s.repo.Movie.FindAll(ctx, req.Title, page)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	count, err := s.repo.Movie.Count(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	if err := s.attachGenres(ctx, movies); err != nil {
		return nil, err
	}

	nextCursor, err := utils.GenerateNextCursor(movies, page.Order)
	if err != nil {
		return nil, fmt.Errorf("generate next cursor: %w", err)
	}

	result := &response.MovieListResponse{NextCursor: nextCursor, Count: count}

	if userID == nil {
		data := make([]response.MovieResponse, len(movies))
		for i, m := range movies {
			data[i] = s.toResponse(m)
		}
		result.Data = data
		return result, nil
	}

	ids := make([]int64, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	statuses, err := s.repo.MovieUserLike.FindStatuses(ctx, *userID, ids)
	if err != nil {
		return nil, fmt.Errorf("get like statuses: %w", err)
	}

	data := make([]response.MovieListItem, len(movies))
	for i, m := range movies {
		data[i] = response.MovieListItem{MovieResponse: s.toResponse(m)}
		if isLike, ok := statuses[m.ID]; ok {
			data[i].LikeStatus = &isLike
		}
	}
	result.Data = data

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", count),
		zap.Strings("order", page.Order),
	)

	return result, nil
}

func (s *movieService) FindRecent(ctx context.Context) ([]response.MovieResponse, error) {
	cached, err := s.cache.Get(ctx, RecentMoviesKey)
	if err == nil {
		var movies []response.MovieResponse
		if err := json.Unmarshal(cached, &movies); err == nil {
			return movies, nil
		}
		s.log.Warn("Discarding unreadable recent movies cache")
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("Failed to read recent movies cache", zap.Error(err))
	}

	movies, err := s.repo.Movie.FindRecent(ctx, recentMoviesLimit)
	if err != nil {
		return nil, fmt.Errorf("get recent movies: %w", err)
	}
	if err := s.attachGenres(ctx, movies); err != nil {
		return nil, err
	}

	data := make([]response.MovieResponse, len(movies))
	for i, m := range movies {
		data[i] = s.toResponse(m)
	}

	if raw, err := json.Marshal(data); err == nil {
		if err := s.cache.Set(ctx, RecentMoviesKey, raw, recentMoviesTTL); err != nil {
			s.log.Warn("Failed to cache recent movies", zap.Error(err))
		}
	}

	return data, nil
}

func (s *movieService) invalidateRecent(ctx context.Context) {
	if err := s.cache.Delete(ctx, RecentMoviesKey); err != nil {
		s.log.Warn("Failed to invalidate recent movies cache", zap.Error(err))
	}
}

func (s *movieService) load(ctx context.Context, id int64) (*entity.Movie, error) {
	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, notFound("movie %d does not exist", id)
	}
	if err := s.attachGenres(ctx, []*entity.Movie{movie}); err != nil {
		return nil, err
	}
	return movie, nil
}

func (s *movieService) FindByID(ctx context.Context, id int64) (*response.MovieResponse, error) {
	movie, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(movie)
	return &resp, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// checkGenres fails with not-found listing the ids that do exist.
func (s *movieService) checkGenres(ctx context.Context, ids []int64) ([]int64, error) {
	ids = uniqueIDs(ids)

	genres, err := s.repo.Genre.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}

	if len(genres) != len(ids) {
		found := make([]string, len(genres))
		for i, g := range genres {
			found[i] = fmt.Sprint(g.ID)
		}
		sort.Strings(found)
		return nil, notFound("some genres do not exist, existing ids: %s", strings.Join(found, ","))
	}

	return ids, nil
}

func (s *movieService) checkDirector(ctx context.Context, id int64) error {
	director, err := s.repo.Director.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find director: %w", err)
	}
	if director == nil {
		return notFound("director %d does not exist", id)
	}
	return nil
}

func (s *movieService) Create(ctx context.Context, req *request.MovieRequest, creatorID int64) (*response.MovieResponse, error) {
	if err := storage.ValidName(req.MovieFileName); err != nil {
		return nil, badRequest("invalid movie file name %q", req.MovieFileName)
	}

	var (
		movieID int64
		moved   bool
	)

	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkDirector(ctx, req.DirectorID); err != nil {
			return err
		}

		genreIDs, err := s.checkGenres(ctx, req.GenreIDs)
		if err != nil {
			return err
		}

		detail := &entity.MovieDetail{Detail: req.Detail}
		if err := s.repo.MovieDetail.Create(ctx, detail); err != nil {
			return fmt.Errorf("create movie detail: %w", err)
		}

		movie := &entity.Movie{
			Title:         req.Title,
			DetailID:      detail.ID,
			MovieFilePath: storage.MovieKey(req.MovieFileName),
			DirectorID:    req.DirectorID,
			CreatorID:     &creatorID,
		}
		if err := s.repo.Movie.Create(ctx, movie); err != nil {
			return conflictOr(err, fmt.Sprintf("movie %q already exists", req.Title), "create movie")
		}

		if err := s.repo.MovieGenre.CreateBatch(ctx, movie.ID, genreIDs); err != nil {
			return fmt.Errorf("create movie genres: %w", err)
		}

		// the file moves last so a failed insert leaves the upload in temp
		if _, err := s.storage.MoveToPermanent(ctx, req.MovieFileName); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return notFound("file %s does not exist", req.MovieFileName)
			}
			return fmt.Errorf("move movie file: %w", err)
		}
		moved = true

		movieID = movie.ID
		return nil
	})
	if err != nil {
		// a failed commit must not strand the file outside temp
		if moved {
			if restoreErr := s.storage.RestoreTemp(ctx, req.MovieFileName); restoreErr != nil {
				s.log.Error("Failed to restore movie file",
					zap.Error(restoreErr),
					zap.String("file", req.MovieFileName),
				)
			}
		}
		s.log.Warn("Create movie failed", zap.Error(err), zap.String("title", req.Title))
		return nil, err
	}

	s.invalidateRecent(ctx)

	s.log.Info("Movie created",
		zap.Int64("movie_id", movieID),
		zap.String("title", req.Title),
		zap.Int64("creator_id", creatorID),
	)

	return s.FindByID(ctx, movieID)
}

func (s *movieService) Update(ctx context.Context, id int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		movie, err := s.repo.Movie.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find movie: %w", err)
		}
		if movie == nil {
			return notFound("movie %d does not exist", id)
		}

		if req.DirectorID != nil {
			if err := s.checkDirector(ctx, *req.DirectorID); err != nil {
				return err
			}
			movie.DirectorID = *req.DirectorID
		}

		if req.GenreIDs != nil {
			genreIDs, err := s.checkGenres(ctx, req.GenreIDs)
			if err != nil {
				return err
			}
			if err := s.repo.MovieGenre.DeleteByMovieID(ctx, id); err != nil {
				return fmt.Errorf("clear movie genres: %w", err)
			}
			if err := s.repo.MovieGenre.CreateBatch(ctx, id, genreIDs); err != nil {
				return fmt.Errorf("create movie genres: %w", err)
			}
		}

		if req.Title != nil {
			movie.Title = *req.Title
		}

		if err := s.repo.Movie.Update(ctx, movie); err != nil {
			return conflictOr(err, fmt.Sprintf("movie %q already exists", movie.Title), "update movie")
		}

		if req.Detail != nil {
			if err := s.repo.MovieDetail.Update(ctx, &entity.MovieDetail{ID: movie.DetailID, Detail: *req.Detail}); err != nil {
				return fmt.Errorf("update movie detail: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		s.log.Warn("Update movie failed", zap.Error(err), zap.Int64("movie_id", id))
		return nil, err
	}

	s.invalidateRecent(ctx)
	s.log.Info("Movie updated", zap.Int64("movie_id", id))

	return s.FindByID(ctx, id)
}

func (s *movieService) Delete(ctx context.Context, id int64) (int64, error) {
	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		movie, err := s.repo.Movie.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("find movie: %w", err)
		}
		if movie == nil {
			return notFound("movie %d does not exist", id)
		}

		if err := s.repo.Movie.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete movie: %w", err)
		}
		if err := s.repo.MovieDetail.Delete(ctx, movie.DetailID); err != nil {
			return fmt.Errorf("delete movie detail: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidateRecent(ctx)
	s.log.Info("Movie deleted", zap.Int64("movie_id", id))

	return id, nil
}

func (s *movieService) ToggleLike(ctx context.Context, movieID, userID int64, isLike bool) (*response.LikeResponse, error) {
	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, notFound("movie %d does not exist", movieID)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, unauthorized("user does not exist")
	}

	var result *bool
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		record, err := s.repo.MovieUserLike.Find(ctx, movieID, userID)
		if err != nil {
			return err
		}

		switch {
		case record == nil:
			if err := s.repo.MovieUserLike.Create(ctx, &entity.MovieUserLike{
				MovieID: movieID,
				UserID:  userID,
				IsLike:  isLike,
			}); err != nil {
				return err
			}
			result = &isLike
		case record.IsLike == isLike:
			if err := s.repo.MovieUserLike.Delete(ctx, movieID, userID); err != nil {
				return err
			}
		default:
			record.IsLike = isLike
			if err := s.repo.MovieUserLike.Update(ctx, record); err != nil {
				return err
			}
			result = &isLike
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("toggle like: %w", err)
	}

	s.log.Debug("Movie like toggled",
		zap.Int64("movie_id", movieID),
		zap.Int64("user_id", userID),
		zap.Boolp("is_like", result),
	)

	return &response.LikeResponse{IsLike: result}, nil
}
