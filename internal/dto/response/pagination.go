package response

import "movie-catalog/pkg/utils"

type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Take       int   `json:"take"`
	TotalPages int   `json:"totalPages"`
}

func NewPaginatedResponse[T any](data []T, page, take int, total int64) *PaginatedResponse[T] {
	return &PaginatedResponse[T]{
		Data: data,
		Pagination: PaginationMeta{
			Page:       page,
			Take:       take,
			Total:      total,
			TotalPages: utils.TotalPages(total, take),
		},
	}
}
