package businesses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// statsCTE pre-aggregates per-business review stats so the rating filter is
// evaluated against each business's own mean, not row-by-row on reviews.
const statsCTE = `
	WITH business_stats AS (
		SELECT business_id, COUNT(*) AS reviews_count, AVG(rating) AS average_rating
		FROM reviews
		GROUP BY business_id
	)`

// buildWhere assembles the conjunctive WHERE clause for List. Every set
// filter ANDs onto the active-only base predicate; the returned args line up
// with the $n placeholders starting at $1.
func buildWhere(filter Filter) (string, []any) {
	var (
		where      []string
		args       []any
		argCounter = 1
	)

	where = append(where, "b.is_active = true")

	if filter.Search != nil {
		where = append(where, fmt.Sprintf(
			"(b.name ILIKE '%%' || $%d || '%%' OR b.description ILIKE '%%' || $%d || '%%' OR b.category ILIKE '%%' || $%d || '%%')",
			argCounter, argCounter, argCounter,
		))
		args = append(args, *filter.Search)
		argCounter++
	}

	if filter.Category != nil {
		where = append(where, fmt.Sprintf("b.category = $%d", argCounter))
		args = append(args, *filter.Category)
		argCounter++
	}

	if filter.City != nil {
		where = append(where, fmt.Sprintf("b.city = $%d", argCounter))
		args = append(args, *filter.City)
		argCounter++
	}

	if filter.PriceRange != nil {
		where = append(where, fmt.Sprintf("b.price_range <= $%d", argCounter))
		args = append(args, *filter.PriceRange)
		argCounter++
	}

	// Zero-review businesses aggregate to 0, so any positive threshold
	// excludes them.
	if filter.Rating != nil {
		where = append(where, fmt.Sprintf("COALESCE(bs.average_rating, 0) >= $%d", argCounter))
		args = append(args, *filter.Rating)
	}

	return " WHERE " + strings.Join(where, " AND "), args
}

// List returns one page of active businesses matching every supplied filter,
// each decorated with reviews_count and average_rating, plus the total match
// count for pagination. Filters compose with AND; the search term is a
// three-way OR across name, description and category.
func (r *Repository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	whereSQL, args := buildWhere(filter)

	// ---- 1) total count ----
	countQ := statsCTE + `
		SELECT COUNT(*)
		FROM businesses b
		LEFT JOIN business_stats bs ON b.id = bs.business_id` + whereSQL

	var total int
	if err := r.db.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count businesses: %w", err)
	}

	// ---- 2) page data ----
	limitPos := len(args) + 1
	offsetPos := len(args) + 2

	dataQ := fmt.Sprintf(statsCTE+`
		SELECT
			b.id,
			b.name,
			b.description,
			b.category,
			b.city,
			b.state,
			b.image_url,
			b.price_range,
			COALESCE(bs.reviews_count, 0) AS reviews_count,
			COALESCE(bs.average_rating, 0) AS average_rating
		FROM businesses b
		LEFT JOIN business_stats bs ON b.id = bs.business_id
		%s
		ORDER BY b.name
		LIMIT $%d OFFSET $%d
	`, whereSQL, limitPos, offsetPos)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.Query(ctx, dataQ, args...)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	// Initialized so zero matches serialize as an empty array, not null.
	out := []BusinessListing{}
	for rows.Next() {
		var b BusinessListing
		if err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Description,
			&b.Category,
			&b.City,
			&b.State,
			&b.ImageURL,
			&b.PriceRange,
			&b.ReviewsCount,
			&b.AverageRating,
		); err != nil {
			return nil, fmt.Errorf("scan business row: %w", err)
		}
		out = append(out, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows businesses: %w", err)
	}

	return &ListResult{Businesses: out, Total: total}, nil
}

// GetByID retrieves a business by its ID.
func (r *Repository) GetByID(ctx context.Context, businessID int64) (*Business, error) {
	query := `
		SELECT id, name, description, category, phone, email, website,
		       address, city, state, zip_code, latitude, longitude,
		       image_url, price_range, is_active, created_at, updated_at
		FROM businesses
		WHERE id = $1`

	var b Business
	err := r.db.QueryRow(ctx, query, businessID).Scan(
		&b.ID,
		&b.Name,
		&b.Description,
		&b.Category,
		&b.Phone,
		&b.Email,
		&b.Website,
		&b.Address,
		&b.City,
		&b.State,
		&b.ZipCode,
		&b.Latitude,
		&b.Longitude,
		&b.ImageURL,
		&b.PriceRange,
		&b.IsActive,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return &b, nil
}

// GetFilterOptions returns the distinct category and city values across all
// active businesses, each sorted ascending.
func (r *Repository) GetFilterOptions(ctx context.Context) (*FilterOptions, error) {
	categories, err := r.distinctValues(ctx, `SELECT DISTINCT category FROM businesses WHERE is_active = true ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("distinct categories: %w", err)
	}

	cities, err := r.distinctValues(ctx, `SELECT DISTINCT city FROM businesses WHERE is_active = true ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("distinct cities: %w", err)
	}

	return &FilterOptions{Categories: categories, Cities: cities}, nil
}

func (r *Repository) distinctValues(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Create inserts a new business. Businesses are written only by the seed
// and administrative tooling, never by end users.
func (r *Repository) Create(ctx context.Context, business *Business) error {
	query := `
		INSERT INTO businesses (
			name, description, category, phone, email, website,
			address, city, state, zip_code, latitude, longitude,
			image_url, price_range, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		business.Name,
		business.Description,
		business.Category,
		business.Phone,
		business.Email,
		business.Website,
		business.Address,
		business.City,
		business.State,
		business.ZipCode,
		business.Latitude,
		business.Longitude,
		business.ImageURL,
		business.PriceRange,
		business.IsActive,
	).Scan(&business.ID, &business.CreatedAt, &business.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}
