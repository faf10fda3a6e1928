package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationParamsValidate(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 0}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)

	p = &PaginationParams{Page: 3, PerPage: 500}
	p.Validate()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PerPage)
}

func TestPaginationParamsOffset(t *testing.T) {
	p := &PaginationParams{Page: 4, PerPage: 15}
	assert.Equal(t, 45, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pg := NewPagination(2, 15, 31)
	assert.Equal(t, 3, pg.TotalPages)
	assert.True(t, pg.HasNext)
	assert.True(t, pg.HasPrev)

	pg = NewPagination(1, 15, 10)
	assert.Equal(t, 1, pg.TotalPages)
	assert.False(t, pg.HasNext)
	assert.False(t, pg.HasPrev)
}

func TestCursorParamsValidate(t *testing.T) {
	c := &CursorParams{Limit: 0}
	c.Validate()
	assert.Equal(t, 15, c.Limit)
	assert.Equal(t, CursorDirectionNext, c.Direction)

	c = &CursorParams{Limit: 1000, Direction: CursorDirectionPrev}
	c.Validate()
	assert.Equal(t, 100, c.Limit)
	assert.Equal(t, CursorDirectionPrev, c.Direction)
}

func TestCursorRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	encoded := EncodeCursor("abc-123", created)

	params := &CursorParams{Cursor: encoded}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, "abc-123", cursor.ID)
	assert.True(t, cursor.CreatedAt.Equal(created))
}

func TestDecodeCursorEmpty(t *testing.T) {
	params := &CursorParams{}
	cursor, err := params.DecodeCursor()
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestDecodeCursorInvalid(t *testing.T) {
	params := &CursorParams{Cursor: "not base64!!"}
	_, err := params.DecodeCursor()
	assert.Error(t, err)
}

type cursorItem struct {
	ID        string
	CreatedAt time.Time
}

func TestNewCursorPaginationTrimsExtraItem(t *testing.T) {
	now := time.Now()
	items := []cursorItem{
		{ID: "a", CreatedAt: now},
		{ID: "b", CreatedAt: now.Add(time.Minute)},
		{ID: "c", CreatedAt: now.Add(2 * time.Minute)},
	}

	pg, trimmed := NewCursorPagination(items, 2,
		func(i cursorItem) string { return i.ID },
		func(i cursorItem) time.Time { return i.CreatedAt },
	)

	require.Len(t, trimmed, 2)
	assert.True(t, pg.HasNext)
	require.NotNil(t, pg.NextCursor)
	require.NotNil(t, pg.PrevCursor)

	next, err := (&CursorParams{Cursor: *pg.NextCursor}).DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, "b", next.ID)

	prev, err := (&CursorParams{Cursor: *pg.PrevCursor}).DecodeCursor()
	require.NoError(t, err)
	assert.Equal(t, "a", prev.ID)
}

func TestNewCursorPaginationLastPage(t *testing.T) {
	items := []cursorItem{{ID: "a", CreatedAt: time.Now()}}

	pg, trimmed := NewCursorPagination(items, 2,
		func(i cursorItem) string { return i.ID },
		func(i cursorItem) time.Time { return i.CreatedAt },
	)

	assert.Len(t, trimmed, 1)
	assert.False(t, pg.HasNext)
}
