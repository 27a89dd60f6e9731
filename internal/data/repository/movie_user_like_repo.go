package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieUserLikeRepository interface {
	Find(ctx context.Context, movieID, userID int64) (*entity.MovieUserLike, error)
	// FindStatuses maps movie id to is_like for the movies the user rated.
	FindStatuses(ctx context.Context, userID int64, movieIDs []int64) (map[int64]bool, error)
	Create(ctx context.Context, like *entity.MovieUserLike) error
	Update(ctx context.Context, like *entity.MovieUserLike) error
	Delete(ctx context.Context, movieID, userID int64) error
}

type movieUserLikeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieUserLikeRepository(db database.PgxIface, log *zap.Logger) MovieUserLikeRepository {
	return &movieUserLikeRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_user_like")),
	}
}

func (r *movieUserLikeRepository) Find(ctx context.Context, movieID, userID int64) (*entity.MovieUserLike, error) {
	query := `SELECT movie_id, user_id, is_like FROM movie_user_likes WHERE movie_id = $1 AND user_id = $2`

	var like entity.MovieUserLike
	err := conn(ctx, r.db).QueryRow(ctx, query, movieID, userID).
		Scan(&like.MovieID, &like.UserID, &like.IsLike)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie like",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find movie like: %w", err)
	}

	return &like, nil
}

func (r *movieUserLikeRepository) FindStatuses(ctx context.Context, userID int64, movieIDs []int64) (map[int64]bool, error) {
	statuses := make(map[int64]bool, len(movieIDs))
	if len(movieIDs) == 0 {
		return statuses, nil
	}

	query := `SELECT movie_id, is_like FROM movie_user_likes WHERE user_id = $1 AND movie_id = ANY($2)`

	rows, err := conn(ctx, r.db).Query(ctx, query, userID, movieIDs)
	if err != nil {
		r.log.Error("Failed to find like statuses",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return nil, fmt.Errorf("find like statuses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			movieID int64
			isLike  bool
		)
		if err := rows.Scan(&movieID, &isLike); err != nil {
			return nil, fmt.Errorf("scan like status: %w", err)
		}
		statuses[movieID] = isLike
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate like statuses: %w", err)
	}

	return statuses, nil
}

func (r *movieUserLikeRepository) Create(ctx context.Context, like *entity.MovieUserLike) error {
	query := `INSERT INTO movie_user_likes (movie_id, user_id, is_like) VALUES ($1, $2, $3)`

	if _, err := conn(ctx, r.db).Exec(ctx, query, like.MovieID, like.UserID, like.IsLike); err != nil {
		r.log.Error("Failed to create movie like",
			zap.Error(err),
			zap.Int64("movie_id", like.MovieID),
			zap.Int64("user_id", like.UserID),
		)
		return fmt.Errorf("create movie like: %w", err)
	}

	return nil
}

func (r *movieUserLikeRepository) Update(ctx context.Context, like *entity.MovieUserLike) error {
	query := `UPDATE movie_user_likes SET is_like = $3 WHERE movie_id = $1 AND user_id = $2`

	if _, err := conn(ctx, r.db).Exec(ctx, query, like.MovieID, like.UserID, like.IsLike); err != nil {
		r.log.Error("Failed to update movie like",
			zap.Error(err),
			zap.Int64("movie_id", like.MovieID),
			zap.Int64("user_id", like.UserID),
		)
		return fmt.Errorf("update movie like: %w", err)
	}

	return nil
}

func (r *movieUserLikeRepository) Delete(ctx context.Context, movieID, userID int64) error {
	query := `DELETE FROM movie_user_likes WHERE movie_id = $1 AND user_id = $2`

	if _, err := conn(ctx, r.db).Exec(ctx, query, movieID, userID); err != nil {
		r.log.Error("Failed to delete movie like",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
			zap.Int64("user_id", userID),
		)
		return fmt.Errorf("delete movie like: %w", err)
	}

	return nil
}
