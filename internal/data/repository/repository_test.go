package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestGenreRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewGenreRepository(mock, zap.NewNop())
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO genres`).
		WithArgs("Action").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at", "version"}).
			AddRow(int64(7), now, now, 1))

	genre := &entity.Genre{Name: "Action"}
	require.NoError(t, repo.Create(context.Background(), genre))

	assert.Equal(t, int64(7), genre.ID)
	assert.Equal(t, 1, genre.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreRepository_CreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewGenreRepository(mock, zap.NewNop())

	mock.ExpectQuery(`INSERT INTO genres`).
		WithArgs("Action").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &entity.Genre{Name: "Action"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreRepository_FindByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewGenreRepository(mock, zap.NewNop())

	mock.ExpectQuery(`SELECT .+ FROM genres WHERE id = \$1`).
		WithArgs(int64(3)).
		WillReturnError(pgx.ErrNoRows)

	genre, err := repo.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, genre)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenreRepository_FindByIDsEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewGenreRepository(mock, zap.NewNop())

	genres, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, genres)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())
	now := time.Now()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("a@b.c").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password", "role", "created_at", "updated_at", "version"}).
			AddRow(int64(1), "a@b.c", "hash", entity.RoleAdmin, now, now, 1))

	user, err := repo.FindByEmail(context.Background(), "a@b.c")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, entity.RoleAdmin, user.Role)
	assert.Equal(t, "hash", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs(int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 9)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func movieRows(now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "title", "like_count", "dislike_count", "detail_id", "movie_file_path",
		"director_id", "creator_id", "created_at", "updated_at", "version",
		"d_id", "d_name", "d_dob", "d_nationality", "d_created_at", "d_updated_at", "d_version",
		"md_id", "md_detail",
	}).AddRow(
		int64(1), "Alien", 3, 1, int64(10), "public/movie/a_1.mp4",
		int64(2), nil, now, now, 1,
		int64(2), "Ridley Scott", now, "UK", now, now, 1,
		int64(10), "space horror",
	)
}

func TestMovieRepository_FindAllWithCursor(t *testing.T) {
	mock := newMock(t)
	repo := NewMovieRepository(mock, zap.NewNop())
	now := time.Now()

	cursor, err := utils.EncodeCursor(utils.Cursor{
		Value: map[string]any{"likeCount": 20, "id": 35},
		Order: []string{"likeCount_DESC", "id_DESC"},
	})
	require.NoError(t, err)
	page, err := NewCursorPage(MovieCursorColumns, cursor, nil, 5)
	require.NoError(t, err)

	mock.ExpectQuery(`WHERE m\.title ILIKE \$1 AND \(\(m\.like_count < \$2\) OR \(m\.like_count = \$2 AND m\.id < \$3\)\) ORDER BY m\.like_count DESC, m\.id DESC LIMIT \$4`).
		WithArgs("%ali%", int64(20), int64(35), 5).
		WillReturnRows(movieRows(now))

	movies, err := repo.FindAll(context.Background(), "ali", page)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Alien", movies[0].Title)
	assert.Equal(t, "Ridley Scott", movies[0].Director.Name)
	assert.Equal(t, "space horror", movies[0].Detail.Detail)
	assert.Nil(t, movies[0].CreatorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepository_FindByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewMovieRepository(mock, zap.NewNop())

	mock.ExpectQuery(`WHERE m\.id = \$1`).
		WithArgs(int64(4)).
		WillReturnError(pgx.ErrNoRows)

	movie, err := repo.FindByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Nil(t, movie)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_Commit(t *testing.T) {
	mock := newMock(t)
	log := zap.NewNop()
	tx := NewTxManager(mock, log)
	movieGenres := NewMovieGenreRepository(mock, log)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM movie_genres`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(`INSERT INTO movie_genres`).
		WithArgs(int64(1), int64(4), int64(1), int64(5)).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		if err := movieGenres.DeleteByMovieID(ctx, 1); err != nil {
			return err
		}
		return movieGenres.CreateBatch(ctx, 1, []int64{4, 5})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollbackOnError(t *testing.T) {
	mock := newMock(t)
	tx := NewTxManager(mock, zap.NewNop())
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
