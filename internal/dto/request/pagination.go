package request

import "movie-catalog/pkg/utils"

const (
	DefaultTake = utils.DefaultTake
	MaxTake     = utils.MaxTake
)

type PaginatedRequest struct {
	Page int `json:"page" validate:"min=1"`
	Take int `json:"take" validate:"min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	return utils.PageOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	return utils.ClampTake(p.Take)
}

// CursorRequest carries an opaque cursor and "<column>_<ASC|DESC>" order items.
type CursorRequest struct {
	Cursor string   `json:"cursor"`
	Order  []string `json:"order"`
	Take   int      `json:"take" validate:"min=1,max=100"`
}

func (c CursorRequest) Limit() int {
	return utils.ClampTake(c.Take)
}
