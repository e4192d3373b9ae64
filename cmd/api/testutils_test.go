package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bizdir/internal/auth"
	"bizdir/internal/domain/businesses"
	"bizdir/internal/domain/reviews"
	"bizdir/internal/domain/storage"
	"bizdir/internal/domain/users"
	"bizdir/internal/ratelimiter"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUserStore struct {
	users map[int64]*users.User
}

func (s *stubUserStore) GetByID(_ context.Context, userID int64) (*users.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, users.ErrNotFound
	}
	return user, nil
}

func (s *stubUserStore) GetByEmail(_ context.Context, email string) (*users.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, users.ErrNotFound
}

func (s *stubUserStore) Create(_ context.Context, user *users.User) error {
	s.users[user.ID] = user
	return nil
}

type stubBusinessStore struct {
	listResult *businesses.ListResult
	listErr    error
	lastFilter businesses.Filter

	byID    map[int64]*businesses.Business
	options *businesses.FilterOptions
}

func (s *stubBusinessStore) List(_ context.Context, filter businesses.Filter) (*businesses.ListResult, error) {
	s.lastFilter = filter
	if s.listErr != nil {
		return nil, s.listErr
	}
	if s.listResult == nil {
		return &businesses.ListResult{}, nil
	}
	return s.listResult, nil
}

func (s *stubBusinessStore) GetByID(_ context.Context, businessID int64) (*businesses.Business, error) {
	business, ok := s.byID[businessID]
	if !ok {
		return nil, businesses.ErrBusinessNotFound
	}
	return business, nil
}

func (s *stubBusinessStore) GetFilterOptions(_ context.Context) (*businesses.FilterOptions, error) {
	if s.options == nil {
		return &businesses.FilterOptions{}, nil
	}
	return s.options, nil
}

func (s *stubBusinessStore) Create(_ context.Context, business *businesses.Business) error {
	if s.byID == nil {
		s.byID = map[int64]*businesses.Business{}
	}
	s.byID[business.ID] = business
	return nil
}

type stubReviewStore struct {
	byID        map[int64]*reviews.Review
	hasReview   bool
	createErr   error
	created     []*reviews.Review
	forBusiness []reviews.Review
	statsCount  int
	statsAvg    float64
	deleted     []int64
	updated     []*reviews.Review
}

func (s *stubReviewStore) Create(_ context.Context, review *reviews.Review) error {
	if s.createErr != nil {
		return s.createErr
	}
	review.ID = int64(len(s.created) + 1)
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt
	s.created = append(s.created, review)
	return nil
}

func (s *stubReviewStore) GetByID(_ context.Context, reviewID int64) (*reviews.Review, error) {
	review, ok := s.byID[reviewID]
	if !ok {
		return nil, reviews.ErrReviewNotFound
	}
	return review, nil
}

func (s *stubReviewStore) Update(_ context.Context, review *reviews.Review) error {
	existing, ok := s.byID[review.ID]
	if !ok || existing.UserID != review.UserID {
		return reviews.ErrReviewNotFound
	}
	review.UpdatedAt = time.Now()
	s.updated = append(s.updated, review)
	return nil
}

func (s *stubReviewStore) Delete(_ context.Context, reviewID, userID int64) error {
	review, ok := s.byID[reviewID]
	if !ok || review.UserID != userID {
		return reviews.ErrReviewNotFound
	}
	delete(s.byID, reviewID)
	s.deleted = append(s.deleted, reviewID)
	return nil
}

func (s *stubReviewStore) GetForBusiness(_ context.Context, _ int64) ([]reviews.Review, error) {
	return s.forBusiness, nil
}

func (s *stubReviewStore) GetReviewStats(_ context.Context, _ int64) (int, float64, error) {
	return s.statsCount, s.statsAvg, nil
}

func (s *stubReviewStore) HasReview(_ context.Context, _, _ int64) (bool, error) {
	return s.hasReview, nil
}

type stubMailer struct {
	mu    sync.Mutex
	sends []string
}

func (m *stubMailer) Send(templateFile, _, email string, _ any) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, templateFile+" -> "+email)
	return http.StatusOK, nil
}

func newTestApplication(t *testing.T, store *storage.Container) *application {
	t.Helper()

	return &application{
		config: config{
			env: "test",
			auth: authConfig{
				basic: basicConfig{user: "admin", pass: "admin"},
				token: tokenConfig{secret: "test-secret", refreshSecret: "test-refresh", iss: "bizdir-test"},
			},
			rateLimiter: ratelimiter.Config{
				RequestsPerTimeFrame: 100,
				TimeFrame:            time.Second * 5,
				Enabled:              false,
			},
		},
		store:         store,
		logger:        zap.NewNop().Sugar(),
		mailer:        &stubMailer{},
		authenticator: auth.NewJWTAuthenticator("test-secret", "test-refresh", "bizdir-test", "bizdir-test"),
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(100, time.Second*5),
	}
}

func bearerToken(t *testing.T, app *application, userID int64) string {
	t.Helper()

	access, _, err := app.authenticator.GenerateTokens(userID)
	require.NoError(t, err)
	return "Bearer " + access
}

func executeRequest(req *http.Request, mux http.Handler) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}
