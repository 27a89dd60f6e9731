package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"movie-catalog/pkg/utils"
)

type columnKind int

const (
	kindInt columnKind = iota
	kindString
	kindTime
)

// CursorColumn maps an API column name to SQL and to the type of its cursor value.
type CursorColumn struct {
	SQL  string
	Kind columnKind
}

// MovieCursorColumns is the set of columns movies can be ordered by.
var MovieCursorColumns = map[string]CursorColumn{
	"id":           {SQL: "m.id", Kind: kindInt},
	"title":        {SQL: "m.title", Kind: kindString},
	"likeCount":    {SQL: "m.like_count", Kind: kindInt},
	"dislikeCount": {SQL: "m.dislike_count", Kind: kindInt},
	"createdAt":    {SQL: "m.created_at", Kind: kindTime},
}

var DefaultCursorOrder = []string{"id_DESC"}

type cursorTerm struct {
	column    CursorColumn
	direction string
	value     any
}

// CursorPage is a validated keyset position: the effective order plus,
// when a cursor was given, the values of the last row already seen.
type CursorPage struct {
	Order []string
	Take  int
	terms []cursorTerm
	after bool
}

// NewCursorPage validates order against columns and decodes cursor. A
// cursor carries its own order which replaces the requested one.
func NewCursorPage(columns map[string]CursorColumn, cursor string, order []string, take int) (*CursorPage, error) {
	var decoded *utils.Cursor
	if cursor != "" {
		c, err := utils.DecodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		decoded = c
		order = c.Order
	}
	if len(order) == 0 {
		order = DefaultCursorOrder
	}

	items, err := utils.ParseOrder(order)
	if err != nil {
		return nil, err
	}

	page := &CursorPage{Order: order, Take: take, after: decoded != nil}
	for _, item := range items {
		column, ok := columns[item.Column]
		if !ok {
			return nil, fmt.Errorf("%w: unknown order column %q", utils.ErrInvalidCursor, item.Column)
		}

		term := cursorTerm{column: column, direction: item.Direction}
		if decoded != nil {
			raw, ok := decoded.Value[item.Column]
			if !ok {
				return nil, fmt.Errorf("%w: missing value for %q", utils.ErrInvalidCursor, item.Column)
			}
			value, err := convertCursorValue(column.Kind, raw)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", utils.ErrInvalidCursor, item.Column, err)
			}
			term.value = value
		}
		page.terms = append(page.terms, term)
	}

	return page, nil
}

func convertCursorValue(kind columnKind, raw any) (any, error) {
	switch kind {
	case kindInt:
		switch v := raw.(type) {
		case json.Number:
			return v.Int64()
		case float64:
			return int64(v), nil
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		}
	case kindString:
		if v, ok := raw.(string); ok {
			return v, nil
		}
	case kindTime:
		switch v := raw.(type) {
		case string:
			return time.Parse(time.RFC3339Nano, v)
		case time.Time:
			return v, nil
		}
	}
	return nil, fmt.Errorf("unexpected value %v", raw)
}

// Predicate renders the keyset condition "rows strictly after the cursor"
// with placeholders starting at $argStart. It is empty without a cursor.
//
// For order (a DESC, b ASC) it yields (a < $1) OR (a = $1 AND b > $2).
func (p *CursorPage) Predicate(argStart int) (string, []any) {
	if !p.after {
		return "", nil
	}

	args := make([]any, 0, len(p.terms))
	for _, t := range p.terms {
		args = append(args, t.value)
	}

	ors := make([]string, 0, len(p.terms))
	for i, t := range p.terms {
		ands := make([]string, 0, i+1)
		for j := 0; j < i; j++ {
			ands = append(ands, fmt.Sprintf("%s = $%d", p.terms[j].column.SQL, argStart+j))
		}
		op := ">"
		if t.direction == utils.OrderDESC {
			op = "<"
		}
		ands = append(ands, fmt.Sprintf("%s %s $%d", t.column.SQL, op, argStart+i))
		ors = append(ors, "("+strings.Join(ands, " AND ")+")")
	}

	return "(" + strings.Join(ors, " OR ") + ")", args
}

func (p *CursorPage) OrderBy() string {
	parts := make([]string, 0, len(p.terms))
	for _, t := range p.terms {
		parts = append(parts, t.column.SQL+" "+t.direction)
	}
	return strings.Join(parts, ", ")
}
