package main

import (
	"errors"
	"net/http"
	"strconv"

	"bizdir/internal/domain/businesses"
	"bizdir/internal/domain/reviews"
	"bizdir/internal/mailer"

	"github.com/go-chi/chi/v5"
)

type reviewPayload struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=10,max=500"`
}

// CreateReview godoc
//
//	@Summary		Create a review
//	@Description	Creates a review for a business. A user may review each business at most once.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			businessID	path		int				true	"Business ID"
//	@Param			payload		body		reviewPayload	true	"Review payload"
//	@Success		201			{object}	reviews.Review
//	@Failure		400			{object}	error	"Invalid payload"
//	@Failure		401			{object}	error	"Unauthorized"
//	@Failure		404			{object}	error	"Business not found"
//	@Failure		409			{object}	error	"Already reviewed"
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/businesses/{businessID}/reviews [post]
func (app *application) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(chi.URLParam(r, "businessID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid business ID"))
		return
	}

	var payload reviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	business, err := app.store.Businesses.GetByID(r.Context(), businessID)
	if err != nil {
		switch {
		case errors.Is(err, businesses.ErrBusinessNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	// Friendly early rejection; the unique constraint on
	// (user_id, business_id) remains the source of truth.
	alreadyReviewed, err := app.store.Reviews.HasReview(r.Context(), businessID, user.ID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if alreadyReviewed {
		app.conflictResponse(w, r, reviews.ErrDuplicateReview)
		return
	}

	review := &reviews.Review{
		BusinessID: businessID,
		UserID:     user.ID,
		Rating:     payload.Rating,
		Comment:    payload.Comment,
	}

	if err := app.store.Reviews.Create(r.Context(), review); err != nil {
		switch {
		case errors.Is(err, reviews.ErrDuplicateReview):
			app.conflictResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	review.UserName = user.FirstName

	if business.Email != nil {
		go func() {
			data := struct {
				BusinessName string
				ReviewerName string
				Rating       int
				Comment      string
			}{
				BusinessName: business.Name,
				ReviewerName: user.FirstName,
				Rating:       review.Rating,
				Comment:      review.Comment,
			}

			status, err := app.mailer.Send(mailer.ReviewNotificationTemplate, business.Name, *business.Email, data)
			if err != nil {
				app.logger.Errorw("error sending review notification email", "error", err)
				return
			}
			app.logger.Infow("review notification email sent", "status code", status)
		}()
	}

	if err := app.jsonResponse(w, http.StatusCreated, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// UpdateReview godoc
//
//	@Summary		Update a review
//	@Description	Updates the rating and comment of a review owned by the authenticated user
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			reviewID	path		int				true	"Review ID"
//	@Param			payload		body		reviewPayload	true	"Review payload"
//	@Success		200			{object}	reviews.Review
//	@Failure		400			{object}	error	"Invalid payload"
//	@Failure		401			{object}	error	"Unauthorized"
//	@Failure		403			{object}	error	"Not the review owner"
//	@Failure		404			{object}	error	"Review not found"
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [put]
func (app *application) updateReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	var payload reviewPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	review, err := app.store.Reviews.GetByID(r.Context(), reviewID)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if !reviews.CanModify(user.ID, review.UserID) {
		app.forbiddenResponse(w, r)
		return
	}

	review.Rating = payload.Rating
	review.Comment = payload.Comment

	if err := app.store.Reviews.Update(r.Context(), review); err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, review); err != nil {
		app.internalServerError(w, r, err)
	}
}

// DeleteReview godoc
//
//	@Summary		Delete a review
//	@Description	Deletes a review owned by the authenticated user
//	@Tags			Reviews
//	@Produce		json
//	@Param			reviewID	path		int	true	"Review ID"
//	@Success		200			{object}	map[string]string
//	@Failure		400			{object}	error	"Invalid review ID"
//	@Failure		401			{object}	error	"Unauthorized"
//	@Failure		403			{object}	error	"Not the review owner"
//	@Failure		404			{object}	error	"Review not found"
//	@Failure		500			{object}	error
//	@Security		ApiKeyAuth
//	@Router			/reviews/{reviewID} [delete]
func (app *application) deleteReviewHandler(w http.ResponseWriter, r *http.Request) {
	reviewID, err := strconv.ParseInt(chi.URLParam(r, "reviewID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid review ID"))
		return
	}

	user := getUserFromContext(r)

	review, err := app.store.Reviews.GetByID(r.Context(), reviewID)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if !reviews.CanModify(user.ID, review.UserID) {
		app.forbiddenResponse(w, r)
		return
	}

	if err := app.store.Reviews.Delete(r.Context(), reviewID, user.ID); err != nil {
		switch {
		case errors.Is(err, reviews.ErrReviewNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, map[string]string{"message": "review deleted"}); err != nil {
		app.internalServerError(w, r, err)
	}
}
