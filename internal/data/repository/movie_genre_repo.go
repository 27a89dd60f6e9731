package repository

import (
	"context"
	"fmt"

	"movie-catalog/pkg/database"

	"go.uber.org/zap"
)

type MovieGenreRepository interface {
	// Bridge table operations
	CreateBatch(ctx context.Context, movieID int64, genreIDs []int64) error
	DeleteByMovieID(ctx context.Context, movieID int64) error
}

type movieGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieGenreRepository(db database.PgxIface, log *zap.Logger) MovieGenreRepository {
	return &movieGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_genre")),
	}
}

func (r *movieGenreRepository) CreateBatch(ctx context.Context, movieID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}

	// Build batch insert
	query := `INSERT INTO movie_genres (movie_id, genre_id) VALUES `
	args := []interface{}{}

	for i, genreID := range genreIDs {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2)
		args = append(args, movieID, genreID)
	}
	query += ` ON CONFLICT DO NOTHING`

	if _, err := conn(ctx, r.db).Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create batch movie_genres",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
			zap.Int("count", len(genreIDs)),
		)
		return fmt.Errorf("failed to create batch movie_genres: %w", err)
	}

	return nil
}

func (r *movieGenreRepository) DeleteByMovieID(ctx context.Context, movieID int64) error {
	if _, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM movie_genres WHERE movie_id = $1`, movieID); err != nil {
		r.log.Error("Failed to delete movie_genres by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return fmt.Errorf("failed to delete movie_genres: %w", err)
	}

	return nil
}
