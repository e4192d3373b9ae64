package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bizdir/internal/domain/businesses"
	"bizdir/internal/domain/reviews"
	"bizdir/internal/domain/storage"
	"bizdir/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewApp(t *testing.T) (*application, *stubReviewStore) {
	t.Helper()

	businessEmail := "hello@bluefinch.example.com"
	businessStore := &stubBusinessStore{
		byID: map[int64]*businesses.Business{
			1: {ID: 1, Name: "Blue Finch Coffee", Email: &businessEmail, IsActive: true},
		},
	}
	reviewStore := &stubReviewStore{
		byID: map[int64]*reviews.Review{
			10: {ID: 10, BusinessID: 1, UserID: 2, Rating: 4, Comment: "Great pour-over and friendly staff."},
		},
	}
	userStore := &stubUserStore{
		users: map[int64]*users.User{
			2: {ID: 2, FirstName: "Maya", LastName: "Rivera", Email: "maya.rivera@example.com", IsActive: true},
			3: {ID: 3, FirstName: "Jordan", LastName: "Chen", Email: "jordan.chen@example.com", IsActive: true},
		},
	}
	store := &storage.Container{
		Users:      userStore,
		Businesses: businessStore,
		Reviews:    reviewStore,
	}

	return newTestApplication(t, store), reviewStore
}

func reviewBody(t *testing.T, rating int, comment string) *bytes.Reader {
	t.Helper()

	body, err := json.Marshal(reviewPayload{Rating: rating, Comment: comment})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestCreateReviewHandler(t *testing.T) {
	t.Run("creates a review and notifies the business", func(t *testing.T) {
		app, reviewStore := newReviewApp(t)
		mailer := &stubMailer{}
		app.mailer = mailer
		mux := app.mount()

		req := httptest.NewRequest(http.MethodPost, "/v1/businesses/1/reviews", reviewBody(t, 5, "Best espresso in the neighborhood by far."))
		req.Header.Set("Authorization", bearerToken(t, app, 2))
		rr := executeRequest(req, mux)

		require.Equal(t, http.StatusCreated, rr.Code)
		require.Len(t, reviewStore.created, 1)
		assert.Equal(t, int64(1), reviewStore.created[0].BusinessID)
		assert.Equal(t, int64(2), reviewStore.created[0].UserID)
		assert.Equal(t, 5, reviewStore.created[0].Rating)

		var envelope struct {
			Data reviews.Review `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
		assert.Equal(t, "Maya", envelope.Data.UserName)

		assert.Eventually(t, func() bool {
			mailer.mu.Lock()
			defer mailer.mu.Unlock()
			return len(mailer.sends) == 1
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("401 without a bearer token", func(t *testing.T) {
		app, _ := newReviewApp(t)
		mux := app.mount()

		req := httptest.NewRequest(http.MethodPost, "/v1/businesses/1/reviews", reviewBody(t, 5, "Best espresso in the neighborhood by far."))
		rr := executeRequest(req, mux)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("404 for a missing business", func(t *testing.T) {
		app, _ := newReviewApp(t)
		mux := app.mount()

		req := httptest.NewRequest(http.MethodPost, "/v1/businesses/999/reviews", reviewBody(t, 5, "Best espresso in the neighborhood by far."))
		req.Header.Set("Authorization", bearerToken(t, app, 2))
		rr := executeRequest(req, mux)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("409 when the user already reviewed the business", func(t *testing.T) {
		app, reviewStore := newReviewApp(t)
		reviewStore.hasReview = true
		mux := app.mount()

		req := httptest.NewRequest(http.MethodPost, "/v1/businesses/1/reviews", reviewBody(t, 5, "Best espresso in the neighborhood by far."))
		req.Header.Set("Authorization", bearerToken(t, app, 2))
		rr := executeRequest(req, mux)

		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Empty(t, reviewStore.created)
	})

	t.Run("409 when the insert trips the unique constraint", func(t *testing.T) {
		app, reviewStore := newReviewApp(t)
		reviewStore.createErr = reviews.ErrDuplicateReview
		mux := app.mount()

		req := httptest.NewRequest(http.MethodPost, "/v1/businesses/1/reviews", reviewBody(t, 5, "Best espresso in the neighborhood by far."))
		req.Header.Set("Authorization", bearerToken(t, app, 2))
		rr := executeRequest(req, mux)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("400 for an invalid payload", func(t *testing.T) {
		app, _ := newReviewApp(t)
		mux := app.mount()

		cases := map[string]reviewPayload{
			"rating too high":   {Rating: 6, Comment: "Best espresso in the neighborhood by far."},
			"rating missing":    {Comment: "Best espresso in the neighborhood by far."},
			"comment too short": {Rating: 5, Comment: "meh"},
		}

		for name, payload := range cases {
			body, err := json.Marshal(payload)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/v1/businesses/1/reviews", bytes.NewReader(body))
			req.Header.Set("Authorization", bearerToken(t, app, 2))
			rr := executeRequest(req, mux)

			assert.Equal(t, http.StatusBadRequest, rr.Code, name)
		}
	})
}

func TestUpdateReviewHandler(t *testing.T) {
	t.Run("owner updates their review", func(t *testing.T) {
		app, reviewStore := newReviewApp(t)
		mux := app.mount()

		req := httptest.NewRequest(http.MethodPut, "/v1/reviews/10", reviewBody(t, 2, "Quality dropped since my last visit, sadly."))
		req.Header.Set("Authorization", bearerToken(t, app, 2))
		rr := executeRequest(req, mux)

		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, reviewStore.updated, 1)
		assert.Equal(t, 2, reviewStore.updated[0].Rating)
		assert.Equal(t, "Quality dropped since my last visit, sadly.", reviewStore.updated[0].Comment)
	})

	t.Run("403 for a non-owner", func(t *testing.T) {
		app, reviewStore := newReviewApp(t)
		mux := app.mount()

		req := httptest.NewRequest(http.MethodPut, "/v1/reviews/10", reviewBody(t, 2, "Quality dropped since my last visit, sadly."))
		req.Header.Set("Authorization", bearerToken(t, app, 3))
		rr := executeRequest(req, mux)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Empty(t, reviewStore.updated)
	})

	t.Run("404 for a missing review", func(t *testing.T) {
		app, _ := newReviewApp(t)
		mux := app.mount()

		req := httptest.NewRequest(http.MethodPut, "/v1/reviews/999", reviewBody(t, 2, "Quality dropped since my last visit, sadly."))
		req.Header.Set("Authorization", bearerToken(t, app, 2))
		rr := executeRequest(req, mux)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("401 without a bearer token", func(t *testing.T) {
		app, _ := newReviewApp(t)
		mux := app.mount()

		req := httptest.NewRequest(http.MethodPut, "/v1/reviews/10", reviewBody(t, 2, "Quality dropped since my last visit, sadly."))
		rr := executeRequest(req, mux)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestDeleteReviewHandler(t *testing.T) {
	t.Run("owner deletes their review", func(t *testing.T) {
		app, reviewStore := newReviewApp(t)
		mux := app.mount()

		req := httptest.NewRequest(http.MethodDelete, "/v1/reviews/10", nil)
		req.Header.Set("Authorization", bearerToken(t, app, 2))
		rr := executeRequest(req, mux)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []int64{10}, reviewStore.deleted)
	})

	t.Run("403 for a non-owner", func(t *testing.T) {
		app, reviewStore := newReviewApp(t)
		mux := app.mount()

		req := httptest.NewRequest(http.MethodDelete, "/v1/reviews/10", nil)
		req.Header.Set("Authorization", bearerToken(t, app, 3))
		rr := executeRequest(req, mux)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Empty(t, reviewStore.deleted)
	})

	t.Run("404 for a missing review", func(t *testing.T) {
		app, _ := newReviewApp(t)
		mux := app.mount()

		req := httptest.NewRequest(http.MethodDelete, "/v1/reviews/999", nil)
		req.Header.Set("Authorization", bearerToken(t, app, 2))
		rr := executeRequest(req, mux)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
