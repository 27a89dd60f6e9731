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

type DirectorRepository interface {
	Create(ctx context.Context, director *entity.Director) error
	FindByID(ctx context.Context, id int64) (*entity.Director, error)
	// FindAll returns every director when limit is zero.
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Director, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, director *entity.Director) error
	Delete(ctx context.Context, id int64) error
}

type directorRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDirectorRepository(db database.PgxIface, log *zap.Logger) DirectorRepository {
	return &directorRepository{
		db:  db,
		log: log.With(zap.String("repository", "director")),
	}
}

const directorColumns = `id, name, dob, nationality, created_at, updated_at, version`

func scanDirector(row pgx.Row) (*entity.Director, error) {
	var d entity.Director
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Dob,
		&d.Nationality,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Version,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *directorRepository) Create(ctx context.Context, director *entity.Director) error {
	query := `
		INSERT INTO directors (name, dob, nationality)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, version
	`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		director.Name,
		director.Dob,
		director.Nationality,
	).Scan(&director.ID, &director.CreatedAt, &director.UpdatedAt, &director.Version)

	if err != nil {
		r.log.Error("Failed to create director",
			zap.Error(err),
			zap.String("name", director.Name),
		)
		return fmt.Errorf("create director: %w", err)
	}

	return nil
}

func (r *directorRepository) FindByID(ctx context.Context, id int64) (*entity.Director, error) {
	query := `SELECT ` + directorColumns + ` FROM directors WHERE id = $1`

	director, err := scanDirector(conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find director by ID",
			zap.Error(err),
			zap.Int64("director_id", id),
		)
		return nil, fmt.Errorf("find director by id: %w", err)
	}

	return director, nil
}

func (r *directorRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Director, error) {
	query := `SELECT ` + directorColumns + ` FROM directors ORDER BY id`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all directors", zap.Error(err))
		return nil, fmt.Errorf("find directors: %w", err)
	}
	defer rows.Close()

	directors := []*entity.Director{}
	for rows.Next() {
		d, err := scanDirector(rows)
		if err != nil {
			r.log.Error("Failed to scan director row", zap.Error(err))
			return nil, fmt.Errorf("scan director: %w", err)
		}
		directors = append(directors, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate directors: %w", err)
	}

	return directors, nil
}

func (r *directorRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM directors`).Scan(&total); err != nil {
		r.log.Error("Failed to count directors", zap.Error(err))
		return 0, fmt.Errorf("count directors: %w", err)
	}
	return total, nil
}

func (r *directorRepository) Update(ctx context.Context, director *entity.Director) error {
	query := `
		UPDATE directors
		SET name = $2, dob = $3, nationality = $4, updated_at = NOW(), version = version + 1
		WHERE id = $1
		RETURNING updated_at, version
	`

	err := conn(ctx, r.db).QueryRow(ctx, query,
		director.ID,
		director.Name,
		director.Dob,
		director.Nationality,
	).Scan(&director.UpdatedAt, &director.Version)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("director %d not found", director.ID)
	}
	if err != nil {
		r.log.Error("Failed to update director",
			zap.Error(err),
			zap.Int64("director_id", director.ID),
		)
		return fmt.Errorf("update director: %w", err)
	}

	return nil
}

func (r *directorRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM directors WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete director",
			zap.Error(err),
			zap.Int64("director_id", id),
		)
		return fmt.Errorf("delete director: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("director %d not found", id)
	}

	return nil
}
