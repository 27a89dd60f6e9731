package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/storage"
	"movie-catalog/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMovies struct {
	repository.MovieRepository
	calls int
	err   error
}

func (f *fakeMovies) RecalculateLikeCounts(context.Context) (int64, error) {
	f.calls++
	return 3, f.err
}

func newScheduler(t *testing.T, store storage.Storage, movies repository.MovieRepository) *Scheduler {
	t.Helper()

	s, err := New(utils.CronConfig{OrphanFiles: "0 0 * * *", LikeCounts: "* * * * *"}, store, movies, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestEraseOrphanFiles(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	files := []string{
		fmt.Sprintf("old_%d.mp4", now.Add(-25*time.Hour).UnixMilli()),
		fmt.Sprintf("fresh_%d.mp4", now.Add(-time.Hour).UnixMilli()),
		"broken_notatime.mp4",
		"presigned.mp4",
	}
	for _, name := range files {
		require.NoError(t, store.SaveTemp(ctx, name, strings.NewReader("video"), 5, "video/mp4"))
	}

	s := newScheduler(t, store, &fakeMovies{})
	s.now = func() time.Time { return now }

	require.NoError(t, s.EraseOrphanFiles(ctx))

	left, err := store.ListTemp(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{files[1], "presigned.mp4"}, left)
}

func TestCalculateMovieLikeCount(t *testing.T) {
	movies := &fakeMovies{}
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	s := newScheduler(t, store, movies)

	require.NoError(t, s.CalculateMovieLikeCount(context.Background()))
	assert.Equal(t, 1, movies.calls)

	movies.err = errors.New("db down")
	assert.Error(t, s.CalculateMovieLikeCount(context.Background()))
}

func TestNewRejectsBadSpec(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = New(utils.CronConfig{OrphanFiles: "every other tuesday"}, store, &fakeMovies{}, zap.NewNop())
	assert.Error(t, err)
}
