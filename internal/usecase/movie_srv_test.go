package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{Env: "dev", PublicURL: "http://localhost:3000/"},
		Storage: utils.StorageConfig{
			Bucket: "movies",
			Region: "ap-northeast-2",
		},
	}
}

func newMovieFixture(t *testing.T) (*fakeRepo, *fakeStorage, MovieService) {
	t.Helper()

	repo := newFakeRepo()
	repo.directors.byID[1] = &entity.Director{Name: "Bong Joon-ho"}
	for _, id := range []int64{1, 2} {
		g := &entity.Genre{Name: "genre"}
		g.ID = id
		repo.genres.byID[id] = g
	}

	store := newFakeStorage("clip_1.mp4")
	svc := NewMovieService(repo.Repository, store, cache.NewMemoryCache(), testConfig(), zap.NewNop())
	return repo, store, svc
}

func TestFileURL(t *testing.T) {
	config := testConfig()
	assert.Equal(t, "http://localhost:3000/public/movie/a.mp4", FileURL(config)("public/movie/a.mp4"))

	config.App.Env = "prod"
	assert.Equal(t, "https://movies.s3.ap-northeast-2.amazonaws.com/public/movie/a.mp4", FileURL(config)("public/movie/a.mp4"))
}

func TestMovieCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("missing director", func(t *testing.T) {
		_, _, svc := newMovieFixture(t)
		_, err := svc.Create(ctx, &request.MovieRequest{
			Title: "Parasite", Detail: "d", DirectorID: 9, GenreIDs: []int64{1}, MovieFileName: "clip_1.mp4",
		}, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing genre lists existing ids", func(t *testing.T) {
		_, _, svc := newMovieFixture(t)
		_, err := svc.Create(ctx, &request.MovieRequest{
			Title: "Parasite", Detail: "d", DirectorID: 1, GenreIDs: []int64{1, 5}, MovieFileName: "clip_1.mp4",
		}, 1)
		require.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "existing ids: 1")
	})

	t.Run("missing upload", func(t *testing.T) {
		_, _, svc := newMovieFixture(t)
		_, err := svc.Create(ctx, &request.MovieRequest{
			Title: "Parasite", Detail: "d", DirectorID: 1, GenreIDs: []int64{1}, MovieFileName: "nope.mp4",
		}, 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("file name outside temp", func(t *testing.T) {
		_, store, svc := newMovieFixture(t)
		store.temp["../../private/backup.mp4"] = true

		_, err := svc.Create(ctx, &request.MovieRequest{
			Title: "Parasite", Detail: "d", DirectorID: 1, GenreIDs: []int64{1}, MovieFileName: "../../private/backup.mp4",
		}, 1)
		assert.ErrorIs(t, err, ErrBadRequest)
		assert.Empty(t, store.permanent)
	})

	t.Run("failed commit puts the file back", func(t *testing.T) {
		repo, store, svc := newMovieFixture(t)
		repo.Tx = commitFailTx{}

		_, err := svc.Create(ctx, &request.MovieRequest{
			Title: "Parasite", Detail: "d", DirectorID: 1, GenreIDs: []int64{1}, MovieFileName: "clip_1.mp4",
		}, 1)
		require.Error(t, err)
		assert.True(t, store.temp["clip_1.mp4"])
		assert.False(t, store.permanent["clip_1.mp4"])
	})

	t.Run("success", func(t *testing.T) {
		repo, store, svc := newMovieFixture(t)
		resp, err := svc.Create(ctx, &request.MovieRequest{
			Title: "Parasite", Detail: "d", DirectorID: 1, GenreIDs: []int64{2, 1, 2}, MovieFileName: "clip_1.mp4",
		}, 7)
		require.NoError(t, err)

		assert.Equal(t, "Parasite", resp.Title)
		assert.Equal(t, "http://localhost:3000/public/movie/clip_1.mp4", resp.MovieFilePath)
		assert.True(t, store.permanent["clip_1.mp4"])
		assert.False(t, store.temp["clip_1.mp4"])

		movie := repo.movies.byID[resp.ID]
		require.NotNil(t, movie)
		require.NotNil(t, movie.CreatorID)
		assert.Equal(t, int64(7), *movie.CreatorID)
		assert.Equal(t, []int64{2, 1}, repo.movieGenres.links[resp.ID])
		assert.Equal(t, "d", repo.details.byID[movie.DetailID].Detail)
	})
}

func TestMovieUpdate(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newMovieFixture(t)

	created, err := svc.Create(ctx, &request.MovieRequest{
		Title: "Parasite", Detail: "d", DirectorID: 1, GenreIDs: []int64{1}, MovieFileName: "clip_1.mp4",
	}, 7)
	require.NoError(t, err)

	title := "Memories of Murder"
	detail := "new detail"
	resp, err := svc.Update(ctx, created.ID, &request.MovieUpdateRequest{
		Title:    &title,
		Detail:   &detail,
		GenreIDs: []int64{2},
	})
	require.NoError(t, err)
	assert.Equal(t, title, resp.Title)
	assert.Equal(t, []int64{2}, repo.movieGenres.links[created.ID])
	assert.Equal(t, detail, repo.details.byID[repo.movies.byID[created.ID].DetailID].Detail)

	missingDirector := int64(42)
	_, err = svc.Update(ctx, created.ID, &request.MovieUpdateRequest{DirectorID: &missingDirector})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, 999, &request.MovieUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieDelete(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newMovieFixture(t)

	created, err := svc.Create(ctx, &request.MovieRequest{
		Title: "Parasite", Detail: "d", DirectorID: 1, GenreIDs: []int64{1}, MovieFileName: "clip_1.mp4",
	}, 7)
	require.NoError(t, err)
	detailID := repo.movies.byID[created.ID].DetailID

	id, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)
	assert.Empty(t, repo.movies.byID)
	assert.NotContains(t, repo.details.byID, detailID)

	_, err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieFindRecentUsesCache(t *testing.T) {
	ctx := context.Background()
	repo, store, svc := newMovieFixture(t)

	_, err := svc.Create(ctx, &request.MovieRequest{
		Title: "Parasite", Detail: "d", DirectorID: 1, GenreIDs: []int64{1}, MovieFileName: "clip_1.mp4",
	}, 7)
	require.NoError(t, err)

	first, err := svc.FindRecent(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.FindRecent(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[0].Title, second[0].Title)
	assert.Equal(t, 1, repo.movies.recentCalls)

	// creating a movie invalidates the cached list
	store.temp["clip_2.mp4"] = true
	_, err = svc.Create(ctx, &request.MovieRequest{
		Title: "Mother", Detail: "d", DirectorID: 1, GenreIDs: []int64{1}, MovieFileName: "clip_2.mp4",
	}, 7)
	require.NoError(t, err)

	third, err := svc.FindRecent(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 2)
	assert.Equal(t, 2, repo.movies.recentCalls)
}

func TestMovieFindAllRejectsBadCursor(t *testing.T) {
	_, _, svc := newMovieFixture(t)

	_, err := svc.FindAll(context.Background(), &request.MovieListRequest{
		CursorRequest: request.CursorRequest{Cursor: "not-base64!"},
	}, nil)
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = svc.FindAll(context.Background(), &request.MovieListRequest{
		CursorRequest: request.CursorRequest{Order: []string{"password_ASC"}},
	}, nil)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestMovieFindAll(t *testing.T) {
	movie := func(id int64, title string, likes int) *entity.Movie {
		m := &entity.Movie{Title: title, LikeCount: likes, MovieFilePath: "public/movie/m.mp4"}
		m.ID = id
		return m
	}
	userID := int64(9)

	tests := []struct {
		name       string
		req        request.MovieListRequest
		userID     *int64
		page       []*entity.Movie
		wantCount  int64
		wantOrder  []string
		wantCursor map[string]any
		wantStatus map[int64]*bool
	}{
		{
			name:       "anonymous",
			page:       []*entity.Movie{movie(3, "Okja", 5), movie(2, "Mother", 5), movie(1, "Memories", 0)},
			wantCount:  7,
			wantOrder:  []string{"id_DESC"},
			wantCursor: map[string]any{"id": json.Number("1")},
		},
		{
			name:       "authenticated",
			userID:     &userID,
			page:       []*entity.Movie{movie(3, "Okja", 5), movie(2, "Mother", 5), movie(1, "Memories", 0)},
			wantCount:  7,
			wantOrder:  []string{"id_DESC"},
			wantCursor: map[string]any{"id": json.Number("1")},
			wantStatus: map[int64]*bool{3: boolPtr(true), 2: boolPtr(false), 1: nil},
		},
		{
			name:      "empty page filtered by title",
			req:       request.MovieListRequest{Title: "zzz"},
			userID:    &userID,
			wantCount: 0,
			wantOrder: []string{"id_DESC"},
		},
		{
			name: "multi column order",
			req: request.MovieListRequest{
				CursorRequest: request.CursorRequest{Order: []string{"likeCount_DESC", "id_DESC"}, Take: 2},
				Title:         "o",
			},
			page:       []*entity.Movie{movie(3, "Okja", 5), movie(2, "Mother", 4)},
			wantCount:  2,
			wantOrder:  []string{"likeCount_DESC", "id_DESC"},
			wantCursor: map[string]any{"likeCount": json.Number("4"), "id": json.Number("2")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := newMovieFixture(t)
			repo.movies.page = tt.page
			repo.movies.counts = map[string]int64{"": 7, "o": 2}
			repo.likes.votes[[2]int64{3, userID}] = true
			repo.likes.votes[[2]int64{2, userID}] = false

			result, err := svc.FindAll(context.Background(), &tt.req, tt.userID)
			require.NoError(t, err)

			assert.Equal(t, tt.req.Title, repo.movies.lastTitle)
			assert.Equal(t, tt.wantOrder, repo.movies.lastPage.Order)
			assert.Equal(t, tt.req.Limit(), repo.movies.lastPage.Take)
			assert.Equal(t, tt.wantCount, result.Count)

			if tt.wantCursor == nil {
				assert.Nil(t, result.NextCursor)
			} else {
				require.NotNil(t, result.NextCursor)
				cursor, err := utils.DecodeCursor(*result.NextCursor)
				require.NoError(t, err)
				assert.Equal(t, tt.wantOrder, cursor.Order)
				assert.Equal(t, tt.wantCursor, cursor.Value)
			}

			if tt.userID == nil {
				data, ok := result.Data.([]response.MovieResponse)
				require.True(t, ok, "anonymous callers get plain movies")
				assert.Len(t, data, len(tt.page))
				return
			}

			data, ok := result.Data.([]response.MovieListItem)
			require.True(t, ok, "authenticated callers get like statuses")
			require.Len(t, data, len(tt.page))
			for _, item := range data {
				assert.Equal(t, tt.wantStatus[item.ID], item.LikeStatus, "movie %d", item.ID)
			}
		})
	}
}

func TestMovieToggleLike(t *testing.T) {
	ctx := context.Background()
	repo, _, svc := newMovieFixture(t)
	repo.addUser(3, "fan@example.com", entity.RoleUser)

	movie := &entity.Movie{Title: "Okja"}
	require.NoError(t, repo.movies.Create(ctx, movie))

	steps := []struct {
		isLike bool
		want   *bool
	}{
		{true, boolPtr(true)},
		{true, nil},
		{false, boolPtr(false)},
		{true, boolPtr(true)},
	}
	for _, step := range steps {
		resp, err := svc.ToggleLike(ctx, movie.ID, 3, step.isLike)
		require.NoError(t, err)
		assert.Equal(t, step.want, resp.IsLike)
	}

	_, err := svc.ToggleLike(ctx, 999, 3, true)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ToggleLike(ctx, movie.ID, 404, true)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func boolPtr(b bool) *bool {
	return &b
}
