package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	h "artistbooking/internal/delivery/http/helpers"
	mw "artistbooking/internal/delivery/http/middleware"
	"artistbooking/internal/domain"
)

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	ArtistID      string  `json:"artist_id"`
	VenueID       string  `json:"venue_id"`
	EventName     string  `json:"event_name"`
	EventDate     string  `json:"event_date"` // YYYY-MM-DD
	StartTime     string  `json:"start_time"` // RFC 3339
	EndTime       string  `json:"end_time"`   // RFC 3339
	VenueName     string  `json:"venue_name"`
	VenueLocation string  `json:"venue_location"`
	Description   *string `json:"description"`
	PriceCents    int64   `json:"price_cents"`
	Notes         *string `json:"notes"`
}

// Validate implements Validator.
func (b CreateBookingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(b.ArtistID) == "" {
		errs = append(errs, "artist_id is required")
	}
	if strings.TrimSpace(b.VenueID) == "" {
		errs = append(errs, "venue_id is required")
	}
	if strings.TrimSpace(b.EventName) == "" {
		errs = append(errs, "event_name is required")
	}
	if _, err := time.Parse("2006-01-02", b.EventDate); err != nil {
		errs = append(errs, "event_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(time.RFC3339, b.StartTime); err != nil {
		errs = append(errs, "start_time must be RFC 3339")
	}
	if _, err := time.Parse(time.RFC3339, b.EndTime); err != nil {
		errs = append(errs, "end_time must be RFC 3339")
	}
	if b.PriceCents < 0 {
		errs = append(errs, "price_cents must not be negative")
	}
	return errs
}

// UpdateBookingStatusRequest is the request body for PATCH /bookings/{bookingID}/status.
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (u UpdateBookingStatusRequest) Validate() []string {
	switch u.Status {
	case domain.BookingConfirmed, domain.BookingCancelled, domain.BookingCompleted:
		return nil
	default:
		return []string{"status must be \"confirmed\", \"cancelled\", or \"completed\""}
	}
}

type BookingController struct {
	Logger   *slog.Logger
	Bookings domain.BookingService
}

func NewBookingController(logger *slog.Logger, bookings domain.BookingService) *BookingController {
	return &BookingController{Logger: logger, Bookings: bookings}
}

// Create godoc
// @Summary Create a booking
// @Description Creates a pending booking for an artist. The caller must be an organiser; the booking is owned by their organiser profile.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookingRequest true "Booking data"
// @Success 201 {object} helpers.APIResponse "data contains the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /bookings [post]
func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := mw.UserIDFromContext(r.Context())

	var req CreateBookingRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	eventDate, _ := time.Parse("2006-01-02", req.EventDate)
	startTime, _ := time.Parse(time.RFC3339, req.StartTime)
	endTime, _ := time.Parse(time.RFC3339, req.EndTime)

	booking := &domain.Booking{
		ArtistID:      req.ArtistID,
		VenueID:       req.VenueID,
		EventName:     req.EventName,
		EventDate:     eventDate,
		StartTime:     startTime,
		EndTime:       endTime,
		VenueName:     req.VenueName,
		VenueLocation: req.VenueLocation,
		Description:   req.Description,
		PriceCents:    req.PriceCents,
		Notes:         req.Notes,
	}
	created, err := c.Bookings.CreateBooking(r.Context(), userID, booking)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, created)
}

// BookingListResponse is one page of bookings plus pagination metadata.
type BookingListResponse struct {
	Bookings   []*domain.Booking `json:"bookings"`
	Pagination h.PaginationMeta  `json:"pagination"`
}

// ListMine godoc
// @Summary List the caller's bookings
// @Description Returns one page of bookings owned by the caller's organiser profile, newest event first.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse{data=BookingListResponse}
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /bookings [get]
func (c *BookingController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, _ := mw.UserIDFromContext(r.Context())
	page := h.ParsePagination(r)

	bookings, total, err := c.Bookings.ListMyBookings(r.Context(), userID, page)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, BookingListResponse{
		Bookings:   bookings,
		Pagination: h.NewPaginationMeta(page.Page, page.PageSize, total),
	})
}

// ListByArtist godoc
// @Summary List an artist's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param artistID path string true "Artist ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse{data=BookingListResponse}
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /artists/{artistID}/bookings [get]
func (c *BookingController) ListByArtist(w http.ResponseWriter, r *http.Request) {
	artistID := r.PathValue("artistID")
	page := h.ParsePagination(r)

	bookings, total, err := c.Bookings.ListArtistBookings(r.Context(), artistID, page)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, BookingListResponse{
		Bookings:   bookings,
		Pagination: h.NewPaginationMeta(page.Page, page.PageSize, total),
	})
}

// UpdateStatus godoc
// @Summary Change a booking's status
// @Description Applies a status transition. Allowed: pending to confirmed or cancelled, confirmed to completed or cancelled. The caller must own the booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID"
// @Param body body UpdateBookingStatusRequest true "New status"
// @Success 200 {object} helpers.APIResponse "data contains the updated booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /bookings/{bookingID}/status [patch]
func (c *BookingController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := mw.UserIDFromContext(r.Context())
	bookingID := r.PathValue("bookingID")

	var req UpdateBookingStatusRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Bookings.UpdateStatus(r.Context(), userID, bookingID, req.Status)
	if err != nil {
		h.WriteDomainError(w, r, c.Logger, err)
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, booking)
}
