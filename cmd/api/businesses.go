package main

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"bizdir/internal/domain/businesses"
	"bizdir/internal/domain/reviews"
	"bizdir/internal/params"

	"github.com/go-chi/chi/v5"
)

// listingPageSize is the fixed page size for the listing endpoint.
const listingPageSize = 12

type businessListResponse struct {
	Businesses []businesses.BusinessListing `json:"businesses"`
	Pagination params.Pagination            `json:"pagination"`
	Filters    map[string]string            `json:"filters"`
	Categories []string                     `json:"categories"`
	Cities     []string                     `json:"cities"`
}

// ListBusinesses godoc
//
//	@Summary		List businesses
//	@Description	Returns a paginated page of active businesses with review aggregates, filterable by search, category, city, price_range and minimum rating
//	@Tags			Businesses
//	@Produce		json
//	@Param			search		query		string	false	"Substring match on name, description or category"
//	@Param			category	query		string	false	"Exact category"
//	@Param			city		query		string	false	"Exact city"
//	@Param			price_range	query		number	false	"Maximum price tier (1-4)"
//	@Param			rating		query		number	false	"Minimum average rating (0-5)"
//	@Param			page		query		int		false	"Page number, 12 per page"
//	@Success		200			{object}	businessListResponse
//	@Failure		400			{object}	error	"Invalid filter value"
//	@Failure		500			{object}	error
//	@Router			/businesses [get]
func (app *application) listBusinessesHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := businesses.Filter{}.Parse(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	p := params.ParsePagination(r.URL.Query(), listingPageSize)
	filter.Page = p.Page
	filter.Limit = p.Limit

	result, err := app.store.Businesses.List(r.Context(), filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	options, err := app.store.Businesses.GetFilterOptions(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	p.ComputeMeta(result.Total)

	listings := result.Businesses
	if listings == nil {
		listings = []businesses.BusinessListing{}
	}
	for i := range listings {
		listings[i].AverageRating = roundRating(listings[i].AverageRating)
	}

	response := businessListResponse{
		Businesses: listings,
		Pagination: p,
		Filters:    filter.Applied(),
		Categories: options.Categories,
		Cities:     options.Cities,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

type businessDetail struct {
	businesses.Business
	ReviewsCount  int     `json:"reviews_count"`
	AverageRating float64 `json:"average_rating"`
}

type businessDetailResponse struct {
	Business businessDetail   `json:"business"`
	Reviews  []reviews.Review `json:"reviews"`
}

// GetBusiness godoc
//
//	@Summary		Get business detail
//	@Description	Returns one business with its review aggregates and full review list, newest first
//	@Tags			Businesses
//	@Produce		json
//	@Param			businessID	path		int	true	"Business ID"
//	@Success		200			{object}	businessDetailResponse
//	@Failure		400			{object}	error	"Invalid business ID"
//	@Failure		404			{object}	error	"Business not found"
//	@Failure		500			{object}	error
//	@Router			/businesses/{businessID} [get]
func (app *application) getBusinessHandler(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(chi.URLParam(r, "businessID"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("invalid business ID"))
		return
	}

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

	reviewList, err := app.store.Reviews.GetForBusiness(r.Context(), businessID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if reviewList == nil {
		reviewList = []reviews.Review{}
	}

	count, average, err := app.store.Reviews.GetReviewStats(r.Context(), businessID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := businessDetailResponse{
		Business: businessDetail{
			Business:      *business,
			ReviewsCount:  count,
			AverageRating: roundRating(average),
		},
		Reviews: reviewList,
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// roundRating rounds a mean rating to one decimal place for presentation.
func roundRating(v float64) float64 {
	return math.Round(v*10) / 10
}
