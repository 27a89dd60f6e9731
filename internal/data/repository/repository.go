package repository

import (
	"movie-catalog/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Tx            TxManager
	User          UserRepository
	Director      DirectorRepository
	Genre         GenreRepository
	Movie         MovieRepository
	MovieDetail   MovieDetailRepository
	MovieGenre    MovieGenreRepository
	MovieUserLike MovieUserLikeRepository
	ChatRoom      ChatRoomRepository
	Chat          ChatRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Tx:            NewTxManager(db, log),
		User:          NewUserRepository(db, log),
		Director:      NewDirectorRepository(db, log),
		Genre:         NewGenreRepository(db, log),
		Movie:         NewMovieRepository(db, log),
		MovieDetail:   NewMovieDetailRepository(db, log),
		MovieGenre:    NewMovieGenreRepository(db, log),
		MovieUserLike: NewMovieUserLikeRepository(db, log),
		ChatRoom:      NewChatRoomRepository(db, log),
		Chat:          NewChatRepository(db, log),
	}
}
