package request

type MovieRequest struct {
	Title         string  `json:"title" validate:"required,min=1,max=255"`
	Detail        string  `json:"detail" validate:"required"`
	DirectorID    int64   `json:"directorId" validate:"required,gt=0"`
	GenreIDs      []int64 `json:"genreIds" validate:"required,min=1,dive,gt=0"`
	MovieFileName string  `json:"movieFileName" validate:"required,max=255,excludesall=/\\"`
}

type MovieUpdateRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Detail     *string `json:"detail,omitempty"`
	DirectorID *int64  `json:"directorId,omitempty" validate:"omitempty,gt=0"`
	GenreIDs   []int64 `json:"genreIds,omitempty" validate:"omitempty,min=1,dive,gt=0"`
}

// MovieListRequest is GET /movie: cursor pagination plus a title filter.
type MovieListRequest struct {
	CursorRequest
	Title string `json:"title" validate:"omitempty,max=255"`
}
