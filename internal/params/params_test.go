package params

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	t.Run("defaults to page one", func(t *testing.T) {
		p := ParsePagination(url.Values{}, 12)

		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 12, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("computes offset from page", func(t *testing.T) {
		q := url.Values{"page": {"3"}}
		p := ParsePagination(q, 12)

		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 24, p.Offset)
	})

	t.Run("clamps an absurd page so the offset stays positive", func(t *testing.T) {
		q := url.Values{"page": {"4611686018427387904"}}
		p := ParsePagination(q, 12)

		assert.Equal(t, maxPage, p.Page)
		assert.Equal(t, (maxPage-1)*12, p.Offset)
		assert.Positive(t, p.Offset)
	})

	t.Run("ignores invalid page values", func(t *testing.T) {
		for _, page := range []string{"abc", "0", "-2", "  "} {
			q := url.Values{"page": {page}}
			p := ParsePagination(q, 12)

			assert.Equal(t, 1, p.Page, "page=%q", page)
			assert.Equal(t, 0, p.Offset, "page=%q", page)
		}
	})
}

func TestComputeMeta(t *testing.T) {
	t.Run("middle page", func(t *testing.T) {
		p := ParsePagination(url.Values{"page": {"2"}}, 12)
		p.ComputeMeta(30)

		assert.Equal(t, 30, p.Total)
		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("last page", func(t *testing.T) {
		p := ParsePagination(url.Values{"page": {"3"}}, 12)
		p.ComputeMeta(30)

		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrev)
	})

	t.Run("empty result set", func(t *testing.T) {
		p := ParsePagination(url.Values{}, 12)
		p.ComputeMeta(0)

		assert.Equal(t, 0, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.False(t, p.HasPrev)
	})

	t.Run("exact multiple of page size", func(t *testing.T) {
		p := ParsePagination(url.Values{}, 12)
		p.ComputeMeta(24)

		assert.Equal(t, 2, p.TotalPages)
		assert.True(t, p.HasNext)
	})
}
