package businesses

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Filter holds the optional listing criteria. A nil field means
// "no constraint", never "match nothing".
type Filter struct {
	Search     *string  // case-insensitive substring on name OR description OR category
	Category   *string  // exact match
	City       *string  // exact match
	PriceRange *float64 // inclusive ceiling on the price tier
	Rating     *float64 // minimum mean review rating

	Page  int
	Limit int
}

// Parse extracts filter parameters from the request URL and populates the
// Filter. Malformed values are rejected here, before any query is built.
func (f Filter) Parse(r *http.Request) (Filter, error) {
	params := r.URL.Query()

	if search := strings.TrimSpace(params.Get("search")); search != "" {
		f.Search = &search
	}

	if category := strings.TrimSpace(params.Get("category")); category != "" {
		f.Category = &category
	}

	if city := strings.TrimSpace(params.Get("city")); city != "" {
		f.City = &city
	}

	if priceStr := params.Get("price_range"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return f, fmt.Errorf("invalid price_range value: %w", err)
		}
		f.PriceRange = &price
	}

	if ratingStr := params.Get("rating"); ratingStr != "" {
		rating, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil {
			return f, fmt.Errorf("invalid rating value: %w", err)
		}
		if rating < 0 || rating > 5 {
			return f, fmt.Errorf("invalid rating value: must be between 0 and 5")
		}
		f.Rating = &rating
	}

	return f, nil
}

// Applied returns the currently-set filters as strings, in the shape the
// presentation layer echoes back so page links preserve them.
func (f Filter) Applied() map[string]string {
	applied := make(map[string]string)
	if f.Search != nil {
		applied["search"] = *f.Search
	}
	if f.Category != nil {
		applied["category"] = *f.Category
	}
	if f.City != nil {
		applied["city"] = *f.City
	}
	if f.PriceRange != nil {
		applied["price_range"] = strconv.FormatFloat(*f.PriceRange, 'f', -1, 64)
	}
	if f.Rating != nil {
		applied["rating"] = strconv.FormatFloat(*f.Rating, 'f', -1, 64)
	}
	return applied
}
