package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context, title string, page *CursorPage) ([]*entity.Movie, error)
	Count(ctx context.Context, title string) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Movie, error)
	Update(ctx context.Context, movie *entity.Movie) error
	Delete(ctx context.Context, id int64) error

	// RecalculateLikeCounts rewrites like_count and dislike_count from movie_user_likes.
	RecalculateLikeCounts(ctx context.Context) (int64, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

// movie row joined with its director and detail
const movieSelect = `
	SELECT m.id, m.title, m.like_count, m.dislike_count, m.detail_id, m.movie_file_path,
	       m.director_id, m.creator_id, m.created_at, m.updated_at, m.version,
	       d.id, d.name, d.dob, d.nationality, d.created_at, d.updated_at, d.version,
	       md.id, md.detail
	FROM movies m
	INNER JOIN directors d ON d.id = m.director_id
	INNER JOIN movie_details md ON md.id = m.detail_id
`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var (
		movie    entity.Movie
		director entity.Director
		detail   entity.MovieDetail
	)

	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.LikeCount,
		&movie.DislikeCount,
		&movie.DetailID,
		&movie.MovieFilePath,
		&movie.DirectorID,
		&movie.CreatorID,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.Version,
		&director.ID,
		&director.Name,
		&director.Dob,
		&director.Nationality,
		&director.CreatedAt,
		&director.UpdatedAt,
		&director.Version,
		&detail.ID,
		&detail.Detail,
	)
	if err != nil {
		return nil, err
	}

	movie.Director = &director
	movie.Detail = &detail
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, detail_id, movie_file_path, director_id, creator_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, like_count, dislike_count, created_at, updated_at, version
	`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		movie.Title,
		movie.DetailID,
		movie.MovieFilePath,
		movie.DirectorID,
		movie.CreatorID,
	).Scan(
		&movie.ID,
		&movie.LikeCount,
		&movie.DislikeCount,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.Version,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create movie %q: %w", movie.Title, ErrDuplicate)
		}
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := movieSelect + ` WHERE m.id = $1`

	movie, err := scanMovie(conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return movie, nil
}

func titleFilter(title string, argStart int) (string, []any) {
	if title == "" {
		return "", nil
	}
	return fmt.Sprintf("m.title ILIKE $%d", argStart), []any{"%" + escapeLike(title) + "%"}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// FindAll returns one keyset page of movies, optionally filtered by a
// case-insensitive title substring.
func (r *movieRepository) FindAll(ctx context.Context, title string, page *CursorPage) ([]*entity.Movie, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(movieSelect)

	var (
		conds []string
		args  []any
	)

	if cond, condArgs := titleFilter(title, len(args)+1); cond != "" {
		conds = append(conds, cond)
		args = append(args, condArgs...)
	}
	if cond, condArgs := page.Predicate(len(args) + 1); cond != "" {
		conds = append(conds, cond)
		args = append(args, condArgs...)
	}

	if len(conds) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s LIMIT $%d", page.OrderBy(), len(args)+1))
	args = append(args, page.Take)

	movies, err := r.queryMovies(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.String("title", title),
			zap.Strings("order", page.Order),
			zap.Int("take", page.Take),
		)
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Strings("order", page.Order),
	)

	return movies, nil
}

func (r *movieRepository) queryMovies(ctx context.Context, query string, args ...any) ([]*entity.Movie, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*entity.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) Count(ctx context.Context, title string) (int64, error) {
	query := `SELECT COUNT(*) FROM movies m`
	cond, args := titleFilter(title, 1)
	if cond != "" {
		query += " WHERE " + cond
	}

	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies",
			zap.Error(err),
			zap.String("title", title),
		)
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Movie, error) {
	query := movieSelect + ` ORDER BY m.created_at DESC, m.id DESC LIMIT $1`

	movies, err := r.queryMovies(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find recent movies", zap.Error(err))
		return nil, fmt.Errorf("failed to find recent movies: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, director_id = $3, movie_file_path = $4,
		    updated_at = NOW(), version = version + 1
		WHERE id = $1
		RETURNING updated_at, version
	`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		movie.ID,
		movie.Title,
		movie.DirectorID,
		movie.MovieFilePath,
	).Scan(&movie.UpdatedAt, &movie.Version)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("movie %d not found", movie.ID)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update movie %q: %w", movie.Title, ErrDuplicate)
		}
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.Int64("movie_id", movie.ID),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie %d not found", id)
	}

	r.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}

func (r *movieRepository) RecalculateLikeCounts(ctx context.Context) (int64, error) {
	query := `
		UPDATE movies m
		SET like_count = COALESCE(c.likes, 0),
		    dislike_count = COALESCE(c.dislikes, 0)
		FROM movies mm
		LEFT JOIN (
			SELECT movie_id,
			       COUNT(*) FILTER (WHERE is_like) AS likes,
			       COUNT(*) FILTER (WHERE NOT is_like) AS dislikes
			FROM movie_user_likes
			GROUP BY movie_id
		) c ON c.movie_id = mm.id
		WHERE m.id = mm.id
		  AND (m.like_count <> COALESCE(c.likes, 0) OR m.dislike_count <> COALESCE(c.dislikes, 0))
	`

	result, err := conn(ctx, r.db).Exec(ctx, query)
	if err != nil {
		r.log.Error("Failed to recalculate like counts", zap.Error(err))
		return 0, fmt.Errorf("recalculate like counts: %w", err)
	}

	return result.RowsAffected(), nil
}
