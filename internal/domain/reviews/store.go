package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// Create inserts a new review. The UNIQUE (user_id, business_id) constraint
// is the real duplicate enforcement; 23505 from a concurrent insert maps to
// ErrDuplicateReview so exactly one of two racing creates succeeds.
func (r *Repository) Create(ctx context.Context, review *Review) error {
	query := `
        INSERT INTO reviews (business_id, user_id, rating, comment)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		review.BusinessID,
		review.UserID,
		review.Rating,
		review.Comment,
	).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateReview
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, reviewID int64) (*Review, error) {
	query := `
        SELECT id, business_id, user_id, rating, comment, created_at, updated_at
        FROM reviews
        WHERE id = $1
    `
	var review Review
	err := r.db.QueryRow(ctx, query, reviewID).Scan(
		&review.ID,
		&review.BusinessID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

// Update overwrites the review's rating and comment. Like Delete, the
// user_id predicate keeps the write scoped to the owner even if the
// handler-level guard is bypassed.
func (r *Repository) Update(ctx context.Context, review *Review) error {
	query := `
        UPDATE reviews
        SET rating = $1, comment = $2, updated_at = now()
        WHERE id = $3 AND user_id = $4
        RETURNING updated_at
    `
	err := r.db.QueryRow(ctx, query,
		review.Rating,
		review.Comment,
		review.ID,
		review.UserID,
	).Scan(&review.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

// Delete removes the review. The user_id predicate keeps the write scoped to
// the owner even if the handler-level guard is bypassed.
func (r *Repository) Delete(ctx context.Context, reviewID, userID int64) error {
	query := `
        DELETE FROM reviews
        WHERE id = $1 AND user_id = $2
    `
	result, err := r.db.Exec(ctx, query, reviewID, userID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *Repository) GetForBusiness(ctx context.Context, businessID int64) ([]Review, error) {
	query := `
        SELECT br.id, br.business_id, br.user_id, br.rating, br.comment,
               br.created_at, br.updated_at, u.first_name
        FROM reviews br
        JOIN users u ON u.id = br.user_id
        WHERE br.business_id = $1
        ORDER BY br.created_at DESC
    `
	rows, err := r.db.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialized so a business with no reviews serializes as an empty
	// array, not null.
	reviews := []Review{}
	for rows.Next() {
		var review Review
		err := rows.Scan(
			&review.ID,
			&review.BusinessID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			&review.CreatedAt,
			&review.UpdatedAt,
			&review.UserName,
		)
		if err != nil {
			return nil, err
		}

		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// GetReviewStats aggregates over the business's own review set. COALESCE
// keeps an empty set at average 0 instead of NULL.
func (r *Repository) GetReviewStats(ctx context.Context, businessID int64) (total int, average float64, err error) {
	query := `
        SELECT
            COUNT(id) as reviews_count,
            COALESCE(AVG(rating), 0) as average_rating
        FROM reviews
        WHERE business_id = $1
    `
	err = r.db.QueryRow(ctx, query, businessID).Scan(&total, &average)
	return total, average, err
}

// HasReview returns true if a review by this user on this business already
// exists. Only a friendlier pre-check; the unique constraint is the source
// of truth.
func (r *Repository) HasReview(ctx context.Context, businessID, userID int64) (bool, error) {
	var exists bool
	query := `
        SELECT EXISTS (
          SELECT 1 FROM reviews
          WHERE business_id = $1 AND user_id = $2
        )
    `
	err := r.db.QueryRow(ctx, query, businessID, userID).Scan(&exists)
	return exists, err
}
