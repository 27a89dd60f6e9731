package response

import (
	"time"

	"movie-catalog/internal/data/entity"
)

type MovieDetailResponse struct {
	ID     int64  `json:"id"`
	Detail string `json:"detail"`
}

type MovieResponse struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	LikeCount     int                  `json:"likeCount"`
	DislikeCount  int                  `json:"dislikeCount"`
	MovieFilePath string               `json:"movieFilePath"`
	Detail        *MovieDetailResponse `json:"detail,omitempty"`
	Director      *DirectorResponse    `json:"director,omitempty"`
	Genres        []GenreResponse      `json:"genres"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
	Version       int                  `json:"version"`
}

// MovieListItem adds the caller's like status; it is only rendered for
// authenticated callers, where null means "not rated".
type MovieListItem struct {
	MovieResponse
	LikeStatus *bool `json:"likeStatus"`
}

type MovieListResponse struct {
	Data       any     `json:"data"`
	NextCursor *string `json:"nextCursor"`
	Count      int64   `json:"count"`
}

type LikeResponse struct {
	IsLike *bool `json:"isLike"`
}

type DeletedResponse struct {
	ID int64 `json:"id"`
}

// MovieToResponse renders a movie; fileURL turns the stored path into a public URL.
func MovieToResponse(movie *entity.Movie, fileURL func(string) string) MovieResponse {
	resp := MovieResponse{
		ID:            movie.ID,
		Title:         movie.Title,
		LikeCount:     movie.LikeCount,
		DislikeCount:  movie.DislikeCount,
		MovieFilePath: fileURL(movie.MovieFilePath),
		Genres:        GenresToResponse(movie.Genres),
		CreatedAt:     movie.CreatedAt,
		UpdatedAt:     movie.UpdatedAt,
		Version:       movie.Version,
	}

	if movie.Detail != nil {
		resp.Detail = &MovieDetailResponse{ID: movie.Detail.ID, Detail: movie.Detail.Detail}
	}
	if movie.Director != nil {
		d := DirectorToResponse(movie.Director)
		resp.Director = &d
	}

	return resp
}
