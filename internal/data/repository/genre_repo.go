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

type GenreRepository interface {
	Create(ctx context.Context, genre *entity.Genre) error
	FindByID(ctx context.Context, id int64) (*entity.Genre, error)
	FindByName(ctx context.Context, name string) (*entity.Genre, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*entity.Genre, error)
	// FindAll returns every genre when limit is zero.
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Genre, error)
	CountAll(ctx context.Context) (int64, error)
	FindByMovieIDs(ctx context.Context, movieIDs []int64) (map[int64][]*entity.Genre, error)
	Update(ctx context.Context, genre *entity.Genre) error
	Delete(ctx context.Context, id int64) error
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

const genreColumns = `id, name, created_at, updated_at, version`

func scanGenre(row pgx.Row) (*entity.Genre, error) {
	var g entity.Genre
	if err := row.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt, &g.Version); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *genreRepository) Create(ctx context.Context, genre *entity.Genre) error {
	query := `
		INSERT INTO genres (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at, version
	`

	err := conn(ctx, r.db).QueryRow(ctx, query, genre.Name).
		Scan(&genre.ID, &genre.CreatedAt, &genre.UpdatedAt, &genre.Version)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create genre %s: %w", genre.Name, ErrDuplicate)
		}
		r.log.Error("Failed to create genre",
			zap.Error(err),
			zap.String("name", genre.Name),
		)
		return fmt.Errorf("create genre: %w", err)
	}

	return nil
}

func (r *genreRepository) findOne(ctx context.Context, where string, arg any) (*entity.Genre, error) {
	query := `SELECT ` + genreColumns + ` FROM genres WHERE ` + where

	genre, err := scanGenre(conn(ctx, r.db).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre",
			zap.Error(err),
			zap.Any("arg", arg),
		)
		return nil, fmt.Errorf("find genre: %w", err)
	}

	return genre, nil
}

func (r *genreRepository) FindByID(ctx context.Context, id int64) (*entity.Genre, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *genreRepository) FindByName(ctx context.Context, name string) (*entity.Genre, error) {
	return r.findOne(ctx, "name = $1", name)
}

func (r *genreRepository) queryGenres(ctx context.Context, query string, args ...any) ([]*entity.Genre, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query genres", zap.Error(err))
		return nil, fmt.Errorf("find genres: %w", err)
	}
	defer rows.Close()

	genres := []*entity.Genre{}
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}

	return genres, nil
}

func (r *genreRepository) FindByIDs(ctx context.Context, ids []int64) ([]*entity.Genre, error) {
	if len(ids) == 0 {
		return []*entity.Genre{}, nil
	}
	return r.queryGenres(ctx,
		`SELECT `+genreColumns+` FROM genres WHERE id = ANY($1) ORDER BY id`, ids)
}

func (r *genreRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Genre, error) {
	query := `SELECT ` + genreColumns + ` FROM genres ORDER BY id`
	if limit > 0 {
		return r.queryGenres(ctx, query+` LIMIT $1 OFFSET $2`, limit, offset)
	}
	return r.queryGenres(ctx, query)
}

func (r *genreRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM genres`).Scan(&total); err != nil {
		r.log.Error("Failed to count genres", zap.Error(err))
		return 0, fmt.Errorf("count genres: %w", err)
	}
	return total, nil
}

// FindByMovieIDs loads the genres of several movies with one query.
func (r *genreRepository) FindByMovieIDs(ctx context.Context, movieIDs []int64) (map[int64][]*entity.Genre, error) {
	result := make(map[int64][]*entity.Genre, len(movieIDs))
	if len(movieIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT mg.movie_id, g.id, g.name, g.created_at, g.updated_at, g.version
		FROM genres g
		INNER JOIN movie_genres mg ON g.id = mg.genre_id
		WHERE mg.movie_id = ANY($1)
		ORDER BY g.name
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, movieIDs)
	if err != nil {
		r.log.Error("Failed to find genres by movie IDs",
			zap.Error(err),
			zap.Int64s("movie_ids", movieIDs),
		)
		return nil, fmt.Errorf("find genres by movie ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			movieID int64
			g       entity.Genre
		)
		if err := rows.Scan(&movieID, &g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt, &g.Version); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		result[movieID] = append(result[movieID], &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genres: %w", err)
	}

	return result, nil
}

func (r *genreRepository) Update(ctx context.Context, genre *entity.Genre) error {
	query := `
		UPDATE genres
		SET name = $2, updated_at = NOW(), version = version + 1
		WHERE id = $1
		RETURNING updated_at, version
	`

	err := conn(ctx, r.db).QueryRow(ctx, query, genre.ID, genre.Name).
		Scan(&genre.UpdatedAt, &genre.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("genre %d not found", genre.ID)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update genre %d: %w", genre.ID, ErrDuplicate)
		}
		r.log.Error("Failed to update genre",
			zap.Error(err),
			zap.Int64("genre_id", genre.ID),
		)
		return fmt.Errorf("update genre: %w", err)
	}

	return nil
}

func (r *genreRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM genres WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete genre",
			zap.Error(err),
			zap.Int64("genre_id", id),
		)
		return fmt.Errorf("delete genre: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("genre %d not found", id)
	}

	return nil
}
