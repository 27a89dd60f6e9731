package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/storage"
)

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// commitFailTx runs fn like a transaction whose commit is rejected.
type commitFailTx struct{}

func (commitFailTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return errors.New("commit tx: connection reset")
}

type fakeUsers struct {
	repository.UserRepository
	byID map[int64]*entity.User
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	return f.byID[id], nil
}

func (f *fakeUsers) Create(_ context.Context, user *entity.User) error {
	user.ID = int64(len(f.byID) + 1)
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindFirstByRole(_ context.Context, role entity.Role) (*entity.User, error) {
	var found *entity.User
	for _, u := range f.byID {
		if u.Role == role && (found == nil || u.ID < found.ID) {
			found = u
		}
	}
	return found, nil
}

type fakeDirectors struct {
	repository.DirectorRepository
	byID map[int64]*entity.Director
}

func (f *fakeDirectors) FindByID(_ context.Context, id int64) (*entity.Director, error) {
	return f.byID[id], nil
}

type fakeGenres struct {
	repository.GenreRepository
	byID map[int64]*entity.Genre
}

func (f *fakeGenres) FindByIDs(_ context.Context, ids []int64) ([]*entity.Genre, error) {
	var out []*entity.Genre
	for _, id := range ids {
		if g, ok := f.byID[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGenres) FindByMovieIDs(context.Context, []int64) (map[int64][]*entity.Genre, error) {
	return map[int64][]*entity.Genre{}, nil
}

type fakeMovies struct {
	repository.MovieRepository
	byID        map[int64]*entity.Movie
	nextID      int64
	recentCalls int

	// page is what FindAll returns; counts is the Count result per title
	page      []*entity.Movie
	counts    map[string]int64
	lastTitle string
	lastPage  *repository.CursorPage
}

func (f *fakeMovies) FindAll(_ context.Context, title string, page *repository.CursorPage) ([]*entity.Movie, error) {
	f.lastTitle = title
	f.lastPage = page
	if f.page == nil {
		return []*entity.Movie{}, nil
	}
	return f.page, nil
}

func (f *fakeMovies) Count(_ context.Context, title string) (int64, error) {
	return f.counts[title], nil
}

func (f *fakeMovies) FindByID(_ context.Context, id int64) (*entity.Movie, error) {
	return f.byID[id], nil
}

func (f *fakeMovies) Create(_ context.Context, movie *entity.Movie) error {
	f.nextID++
	movie.ID = f.nextID
	movie.CreatedAt = time.Now()
	f.byID[movie.ID] = movie
	return nil
}

func (f *fakeMovies) Update(_ context.Context, movie *entity.Movie) error {
	f.byID[movie.ID] = movie
	return nil
}

func (f *fakeMovies) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeMovies) FindRecent(_ context.Context, limit int) ([]*entity.Movie, error) {
	f.recentCalls++

	out := make([]*entity.Movie, 0, len(f.byID))
	for _, m := range f.byID {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeDetails struct {
	repository.MovieDetailRepository
	byID   map[int64]*entity.MovieDetail
	nextID int64
}

func (f *fakeDetails) Create(_ context.Context, detail *entity.MovieDetail) error {
	f.nextID++
	detail.ID = f.nextID
	f.byID[detail.ID] = detail
	return nil
}

func (f *fakeDetails) Update(_ context.Context, detail *entity.MovieDetail) error {
	f.byID[detail.ID] = detail
	return nil
}

func (f *fakeDetails) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

type fakeMovieGenres struct {
	repository.MovieGenreRepository
	links map[int64][]int64
}

func (f *fakeMovieGenres) CreateBatch(_ context.Context, movieID int64, genreIDs []int64) error {
	f.links[movieID] = append(f.links[movieID], genreIDs...)
	return nil
}

func (f *fakeMovieGenres) DeleteByMovieID(_ context.Context, movieID int64) error {
	delete(f.links, movieID)
	return nil
}

type fakeLikes struct {
	repository.MovieUserLikeRepository
	votes map[[2]int64]bool
}

func (f *fakeLikes) Find(_ context.Context, movieID, userID int64) (*entity.MovieUserLike, error) {
	isLike, ok := f.votes[[2]int64{movieID, userID}]
	if !ok {
		return nil, nil
	}
	return &entity.MovieUserLike{MovieID: movieID, UserID: userID, IsLike: isLike}, nil
}

func (f *fakeLikes) FindStatuses(_ context.Context, userID int64, movieIDs []int64) (map[int64]bool, error) {
	out := map[int64]bool{}
	for _, id := range movieIDs {
		if isLike, ok := f.votes[[2]int64{id, userID}]; ok {
			out[id] = isLike
		}
	}
	return out, nil
}

func (f *fakeLikes) Create(_ context.Context, like *entity.MovieUserLike) error {
	f.votes[[2]int64{like.MovieID, like.UserID}] = like.IsLike
	return nil
}

func (f *fakeLikes) Update(_ context.Context, like *entity.MovieUserLike) error {
	f.votes[[2]int64{like.MovieID, like.UserID}] = like.IsLike
	return nil
}

func (f *fakeLikes) Delete(_ context.Context, movieID, userID int64) error {
	delete(f.votes, [2]int64{movieID, userID})
	return nil
}

type fakeRooms struct {
	repository.ChatRoomRepository
	byID   map[int64]*entity.ChatRoom
	nextID int64
}

func (f *fakeRooms) FindByID(_ context.Context, id int64) (*entity.ChatRoom, error) {
	return f.byID[id], nil
}

func (f *fakeRooms) FindFirstByUserID(_ context.Context, userID int64) (*entity.ChatRoom, error) {
	var found *entity.ChatRoom
	for _, r := range f.byID {
		if r.HasUser(userID) && (found == nil || r.ID < found.ID) {
			found = r
		}
	}
	return found, nil
}

func (f *fakeRooms) FindByUserID(_ context.Context, userID int64) ([]*entity.ChatRoom, error) {
	var out []*entity.ChatRoom
	for _, r := range f.byID {
		if r.HasUser(userID) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRooms) Create(_ context.Context, userIDs []int64) (*entity.ChatRoom, error) {
	f.nextID++
	room := &entity.ChatRoom{UserIDs: userIDs}
	room.ID = f.nextID
	f.byID[room.ID] = room
	return room, nil
}

type fakeChats struct {
	repository.ChatRepository
	saved []*entity.Chat
}

func (f *fakeChats) Create(_ context.Context, chat *entity.Chat) error {
	chat.ID = int64(len(f.saved) + 1)
	chat.CreatedAt = time.Now()
	f.saved = append(f.saved, chat)
	return nil
}

type fakeStorage struct {
	temp      map[string]bool
	permanent map[string]bool
	presign   bool
}

func newFakeStorage(temp ...string) *fakeStorage {
	s := &fakeStorage{temp: map[string]bool{}, permanent: map[string]bool{}}
	for _, name := range temp {
		s.temp[name] = true
	}
	return s
}

func (s *fakeStorage) SaveTemp(_ context.Context, name string, body io.Reader, _ int64, _ string) error {
	if _, err := io.ReadAll(body); err != nil {
		return err
	}
	s.temp[name] = true
	return nil
}

func (s *fakeStorage) MoveToPermanent(_ context.Context, name string) (string, error) {
	if !s.temp[name] {
		return "", storage.ErrNotFound
	}
	delete(s.temp, name)
	s.permanent[name] = true
	return storage.MovieKey(name), nil
}

func (s *fakeStorage) RestoreTemp(_ context.Context, name string) error {
	if !s.permanent[name] {
		return storage.ErrNotFound
	}
	delete(s.permanent, name)
	s.temp[name] = true
	return nil
}

func (s *fakeStorage) PresignUpload(_ context.Context, name string, _ time.Duration) (string, error) {
	if !s.presign {
		return "", storage.ErrUnsupported
	}
	return "https://bucket.example/" + storage.TempKey(name) + "?signed", nil
}

func (s *fakeStorage) ListTemp(context.Context) ([]string, error) {
	names := make([]string, 0, len(s.temp))
	for name := range s.temp {
		names = append(names, name)
	}
	return names, nil
}

func (s *fakeStorage) DeleteTemp(_ context.Context, name string) error {
	delete(s.temp, name)
	return nil
}

// fakeRepo wires every fake into a repository aggregate.
type fakeRepo struct {
	*repository.Repository
	users       *fakeUsers
	directors   *fakeDirectors
	genres      *fakeGenres
	movies      *fakeMovies
	details     *fakeDetails
	movieGenres *fakeMovieGenres
	likes       *fakeLikes
	rooms       *fakeRooms
	chats       *fakeChats
}

func newFakeRepo() *fakeRepo {
	f := &fakeRepo{
		users:       &fakeUsers{byID: map[int64]*entity.User{}},
		directors:   &fakeDirectors{byID: map[int64]*entity.Director{}},
		genres:      &fakeGenres{byID: map[int64]*entity.Genre{}},
		movies:      &fakeMovies{byID: map[int64]*entity.Movie{}},
		details:     &fakeDetails{byID: map[int64]*entity.MovieDetail{}},
		movieGenres: &fakeMovieGenres{links: map[int64][]int64{}},
		likes:       &fakeLikes{votes: map[[2]int64]bool{}},
		rooms:       &fakeRooms{byID: map[int64]*entity.ChatRoom{}},
		chats:       &fakeChats{},
	}

	f.Repository = &repository.Repository{
		Tx:            fakeTx{},
		User:          f.users,
		Director:      f.directors,
		Genre:         f.genres,
		Movie:         f.movies,
		MovieDetail:   f.details,
		MovieGenre:    f.movieGenres,
		MovieUserLike: f.likes,
		ChatRoom:      f.rooms,
		Chat:          f.chats,
	}
	return f
}

func (f *fakeRepo) addUser(id int64, email string, role entity.Role) *entity.User {
	u := &entity.User{Email: email, Role: role}
	u.ID = id
	f.users.byID[id] = u
	return u
}
