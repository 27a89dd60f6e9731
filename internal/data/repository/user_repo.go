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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindFirstByRole(ctx context.Context, role entity.Role) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, email, password, role, created_at, updated_at, version`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Version,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the user and fills its generated columns.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (email, password, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, version
	`

	err := conn(ctx, ur.db).QueryRow(ctx, query,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt, &user.Version)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", user.Email, ErrDuplicate)
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` LIMIT 1`

	user, err := scanUser(conn(ctx, ur.db).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user",
			zap.Error(err),
			zap.String("where", where),
			zap.Any("arg", arg),
		)
		return nil, fmt.Errorf("find user: %w", err)
	}

	return user, nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return ur.findOne(ctx, "id = $1", id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, "email = $1", email)
}

func (ur *userRepository) FindFirstByRole(ctx context.Context, role entity.Role) (*entity.User, error) {
	return ur.findOne(ctx, "role = $1 ORDER BY id", role)
}

func (ur *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := conn(ctx, ur.db).Query(ctx, query)
	if err != nil {
		ur.log.Error("Failed to find all users", zap.Error(err))
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer rows.Close()

	users := []*entity.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, password = $3, role = $4, updated_at = NOW(), version = version + 1
		WHERE id = $1
		RETURNING updated_at, version
	`

	err := conn(ctx, ur.db).QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.UpdatedAt, &user.Version)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("user %d not found", user.ID)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update user %d: %w", user.ID, ErrDuplicate)
		}
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
		)
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := conn(ctx, ur.db).Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return fmt.Errorf("delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %d not found", id)
	}

	return nil
}
