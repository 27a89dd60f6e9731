package utils

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id    int64
	title string
}

func (r row) CursorValue(column string) (any, bool) {
	switch column {
	case "id":
		return r.id, true
	case "title":
		return r.title, true
	}
	return nil, false
}

func TestParseOrder(t *testing.T) {
	items, err := ParseOrder([]string{"likeCount_DESC", "id_ASC"})
	require.NoError(t, err)
	assert.Equal(t, []OrderItem{
		{Column: "likeCount", Direction: OrderDESC},
		{Column: "id", Direction: OrderASC},
	}, items)

	for _, bad := range [][]string{nil, {"id"}, {"_DESC"}, {"id_desc"}, {"id_UP"}} {
		_, err := ParseOrder(bad)
		assert.ErrorIs(t, err, ErrInvalidCursor, "order %v", bad)
	}
}

func TestGenerateNextCursor(t *testing.T) {
	rows := []row{{id: 3, title: "c"}, {id: 2, title: "b"}}

	next, err := GenerateNextCursor(rows, []string{"title_DESC", "id_DESC"})
	require.NoError(t, err)
	require.NotNil(t, next)

	decoded, err := DecodeCursor(*next)
	require.NoError(t, err)
	assert.Equal(t, []string{"title_DESC", "id_DESC"}, decoded.Order)
	assert.Equal(t, "b", decoded.Value["title"])
	assert.Equal(t, json.Number("2"), decoded.Value["id"])
}

func TestGenerateNextCursor_Empty(t *testing.T) {
	next, err := GenerateNextCursor([]row{}, []string{"id_DESC"})
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestGenerateNextCursor_UnknownColumn(t *testing.T) {
	_, err := GenerateNextCursor([]row{{id: 1}}, []string{"rating_DESC"})
	assert.ErrorIs(t, err, ErrInvalidCursor)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	encode := func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(s))
	}

	tests := map[string]string{
		"not base64":    "***",
		"not json":      encode("nope"),
		"missing order": encode(`{"value":{"id":1}}`),
		"missing value": encode(`{"order":["id_DESC"]}`),
	}

	for name, cursor := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCursor(cursor)
			assert.ErrorIs(t, err, ErrInvalidCursor)
		})
	}
}
