package reviews

import (
	"context"
	"errors"
	"time"
)

var (
	ErrDuplicateReview = errors.New("user has already reviewed this business")
	ErrReviewNotFound  = errors.New("review not found")
)

type Review struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	UserID     int64     `json:"user_id"`
	Rating     int       `json:"rating"` // 1-5
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Joined fields
	UserName string `json:"user_name,omitempty"`
}

// CanModify is the ownership guard shared by update and delete: only the
// user who created a review may change it.
func CanModify(actingUserID, ownerID int64) bool {
	return actingUserID == ownerID
}

type Store interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, reviewID int64) (*Review, error)
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, reviewID, userID int64) error
	GetForBusiness(ctx context.Context, businessID int64) ([]Review, error)
	GetReviewStats(ctx context.Context, businessID int64) (int, float64, error)
	HasReview(ctx context.Context, businessID, userID int64) (bool, error)
}
