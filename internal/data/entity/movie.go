package entity

type MovieDetail struct {
	ID     int64  `db:"id"`
	Detail string `db:"detail"`
}

type Movie struct {
	Base
	Title         string `db:"title"`
	LikeCount     int    `db:"like_count"`
	DislikeCount  int    `db:"dislike_count"`
	DetailID      int64  `db:"detail_id"`
	MovieFilePath string `db:"movie_file_path"`
	DirectorID    int64  `db:"director_id"`
	CreatorID     *int64 `db:"creator_id"`

	// loaded by joins
	Detail   *MovieDetail
	Director *Director
	Genres   []*Genre
}

// CursorValue exposes the sortable columns under their API names.
func (m *Movie) CursorValue(column string) (any, bool) {
	switch column {
	case "id":
		return m.ID, true
	case "title":
		return m.Title, true
	case "likeCount":
		return m.LikeCount, true
	case "dislikeCount":
		return m.DislikeCount, true
	case "createdAt":
		return m.CreatedAt, true
	default:
		return nil, false
	}
}

type MovieUserLike struct {
	MovieID int64 `db:"movie_id"`
	UserID  int64 `db:"user_id"`
	IsLike  bool  `db:"is_like"`
}
