package repository

import (
	"context"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"go.uber.org/zap"
)

type MovieDetailRepository interface {
	Create(ctx context.Context, detail *entity.MovieDetail) error
	Update(ctx context.Context, detail *entity.MovieDetail) error
	Delete(ctx context.Context, id int64) error
}

type movieDetailRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieDetailRepository(db database.PgxIface, log *zap.Logger) MovieDetailRepository {
	return &movieDetailRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_detail")),
	}
}

func (r *movieDetailRepository) Create(ctx context.Context, detail *entity.MovieDetail) error {
	err := conn(ctx, r.db).QueryRow(ctx,
		`INSERT INTO movie_details (detail) VALUES ($1) RETURNING id`,
		detail.Detail,
	).Scan(&detail.ID)
	if err != nil {
		r.log.Error("Failed to create movie detail", zap.Error(err))
		return fmt.Errorf("create movie detail: %w", err)
	}
	return nil
}

func (r *movieDetailRepository) Update(ctx context.Context, detail *entity.MovieDetail) error {
	result, err := conn(ctx, r.db).Exec(ctx,
		`UPDATE movie_details SET detail = $2 WHERE id = $1`,
		detail.ID, detail.Detail,
	)
	if err != nil {
		r.log.Error("Failed to update movie detail",
			zap.Error(err),
			zap.Int64("detail_id", detail.ID),
		)
		return fmt.Errorf("update movie detail: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("movie detail %d not found", detail.ID)
	}
	return nil
}

func (r *movieDetailRepository) Delete(ctx context.Context, id int64) error {
	if _, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM movie_details WHERE id = $1`, id); err != nil {
		r.log.Error("Failed to delete movie detail",
			zap.Error(err),
			zap.Int64("detail_id", id),
		)
		return fmt.Errorf("delete movie detail: %w", err)
	}
	return nil
}
