package businesses

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterParse(t *testing.T) {
	t.Run("empty query leaves all fields nil", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/businesses", nil)

		f, err := Filter{}.Parse(r)

		require.NoError(t, err)
		assert.Nil(t, f.Search)
		assert.Nil(t, f.Category)
		assert.Nil(t, f.City)
		assert.Nil(t, f.PriceRange)
		assert.Nil(t, f.Rating)
	})

	t.Run("parses every supported parameter", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/businesses?search=coffee&category=Cafe&city=Austin&price_range=2&rating=4", nil)

		f, err := Filter{}.Parse(r)

		require.NoError(t, err)
		require.NotNil(t, f.Search)
		assert.Equal(t, "coffee", *f.Search)
		require.NotNil(t, f.Category)
		assert.Equal(t, "Cafe", *f.Category)
		require.NotNil(t, f.City)
		assert.Equal(t, "Austin", *f.City)
		require.NotNil(t, f.PriceRange)
		assert.Equal(t, 2.0, *f.PriceRange)
		require.NotNil(t, f.Rating)
		assert.Equal(t, 4.0, *f.Rating)
	})

	t.Run("trims whitespace and treats blank as unset", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/businesses?search=%20%20tacos%20&city=%20%20", nil)

		f, err := Filter{}.Parse(r)

		require.NoError(t, err)
		require.NotNil(t, f.Search)
		assert.Equal(t, "tacos", *f.Search)
		assert.Nil(t, f.City)
	})

	t.Run("rejects non-numeric price_range", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/businesses?price_range=cheap", nil)

		_, err := Filter{}.Parse(r)

		assert.Error(t, err)
	})

	t.Run("rejects non-numeric rating", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/businesses?rating=high", nil)

		_, err := Filter{}.Parse(r)

		assert.Error(t, err)
	})

	t.Run("rejects rating outside 0-5", func(t *testing.T) {
		for _, rating := range []string{"-1", "5.1", "99"} {
			r := httptest.NewRequest("GET", "/v1/businesses?rating="+rating, nil)

			_, err := Filter{}.Parse(r)

			assert.Error(t, err, "rating=%s", rating)
		}
	})

	t.Run("accepts fractional rating", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/businesses?rating=3.5", nil)

		f, err := Filter{}.Parse(r)

		require.NoError(t, err)
		require.NotNil(t, f.Rating)
		assert.Equal(t, 3.5, *f.Rating)
	})
}

func TestFilterApplied(t *testing.T) {
	t.Run("empty filter yields empty map", func(t *testing.T) {
		assert.Empty(t, Filter{}.Applied())
	})

	t.Run("echoes set values as strings", func(t *testing.T) {
		search := "coffee"
		rating := 4.5
		f := Filter{Search: &search, Rating: &rating}

		applied := f.Applied()

		assert.Equal(t, map[string]string{
			"search": "coffee",
			"rating": "4.5",
		}, applied)
	})
}
