package businesses

import (
	"context"
	"errors"
	"time"
)

var ErrBusinessNotFound = errors.New("business not found")

// Business represents a business in the database
type Business struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Phone       *string   `json:"phone,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Website     *string   `json:"website,omitempty"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     string    `json:"zip_code"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	PriceRange  float64   `json:"price_range"` // 1-4 scale
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BusinessListing is the listing-page projection of a Business, decorated
// with aggregates computed at read time. ReviewsCount and AverageRating are
// never stored; AverageRating is 0 for a business with no reviews.
type BusinessListing struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	ImageURL      *string `json:"image_url,omitempty"`
	PriceRange    float64 `json:"price_range"`
	ReviewsCount  int     `json:"reviews_count"`
	AverageRating float64 `json:"average_rating"`
}

// ListResult is a single page of listings plus the unpaginated match count.
type ListResult struct {
	Businesses []BusinessListing
	Total      int
}

// FilterOptions holds the distinct sorted category and city values across
// all active businesses, for populating filter controls.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Cities     []string `json:"cities"`
}

type Store interface {
	List(ctx context.Context, filter Filter) (*ListResult, error)
	GetByID(ctx context.Context, businessID int64) (*Business, error)
	GetFilterOptions(ctx context.Context) (*FilterOptions, error)
	Create(ctx context.Context, business *Business) error
}
