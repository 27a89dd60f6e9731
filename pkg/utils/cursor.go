package utils

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCursor covers every malformed cursor or order parameter.
var ErrInvalidCursor = errors.New("invalid cursor")

const (
	OrderASC  = "ASC"
	OrderDESC = "DESC"
)

// OrderItem is one parsed "<column>_<ASC|DESC>" entry.
type OrderItem struct {
	Column    string
	Direction string
}

func (o OrderItem) String() string {
	return o.Column + "_" + o.Direction
}

// Cursor is the decoded form of the opaque pagination cursor:
//
//	{"value": {"likeCount": 20, "id": 35}, "order": ["likeCount_DESC", "id_DESC"]}
type Cursor struct {
	Value map[string]any `json:"value"`
	Order []string       `json:"order"`
}

// CursorValuer exposes sortable fields of a row by their API column name.
type CursorValuer interface {
	CursorValue(column string) (any, bool)
}

func ParseOrder(order []string) ([]OrderItem, error) {
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: order is empty", ErrInvalidCursor)
	}

	items := make([]OrderItem, 0, len(order))
	for _, o := range order {
		idx := strings.LastIndex(o, "_")
		if idx <= 0 {
			return nil, fmt.Errorf("%w: order %q must be <column>_ASC or <column>_DESC", ErrInvalidCursor, o)
		}

		column, direction := o[:idx], o[idx+1:]
		if direction != OrderASC && direction != OrderDESC {
			return nil, fmt.Errorf("%w: order direction must be ASC or DESC, got %q", ErrInvalidCursor, direction)
		}

		items = append(items, OrderItem{Column: column, Direction: direction})
	}

	return items, nil
}

func EncodeCursor(c Cursor) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeCursor keeps numbers as json.Number so callers can convert them per column.
func DecodeCursor(encoded string) (*Cursor, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var c Cursor
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	if len(c.Order) == 0 || len(c.Value) == 0 {
		return nil, fmt.Errorf("%w: value and order are required", ErrInvalidCursor)
	}

	return &c, nil
}

// GenerateNextCursor builds the cursor pointing after the last row, or nil for an empty page.
func GenerateNextCursor[T CursorValuer](results []T, order []string) (*string, error) {
	if len(results) == 0 {
		return nil, nil
	}

	items, err := ParseOrder(order)
	if err != nil {
		return nil, err
	}

	last := results[len(results)-1]
	value := make(map[string]any, len(items))
	for _, item := range items {
		v, ok := last.CursorValue(item.Column)
		if !ok {
			return nil, fmt.Errorf("%w: unknown order column %q", ErrInvalidCursor, item.Column)
		}
		value[item.Column] = v
	}

	encoded, err := EncodeCursor(Cursor{Value: value, Order: order})
	if err != nil {
		return nil, err
	}
	return &encoded, nil
}
