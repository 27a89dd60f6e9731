package usecase

import (
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/storage"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Director DirectorService
	Genre    GenreService
	Movie    MovieService
	Common   CommonService
	Chat     ChatService
}

func NewService(
	repo *repository.Repository,
	tokens *utils.TokenManager,
	cache cache.Cache,
	storage storage.Storage,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	user := NewUserService(repo.User, config.App.HashRounds, log)

	return &Service{
		Auth:     NewAuthService(repo, user, tokens, cache, log),
		User:     user,
		Director: NewDirectorService(repo.Director, log),
		Genre:    NewGenreService(repo.Genre, log),
		Movie:    NewMovieService(repo, storage, cache, config, log),
		Common:   NewCommonService(storage, log),
		Chat:     NewChatService(repo, log),
	}
}
