package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/careloop/booking-platform/internal/api/metrics"
	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

// BookingHandler handles booking creation, the admin listing and status
// transitions.
type BookingHandler struct {
	bookings ports.BookingService
}

func NewBookingHandler(bookings ports.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingRequest struct {
	ServiceID     string `json:"service_id"     validate:"required"`
	AddressID     string `json:"address_id"     validate:"required"`
	ScheduledDate string `json:"scheduled_date" validate:"required"`
	ScheduledTime string `json:"scheduled_time" validate:"required"`
	ProviderID    string `json:"provider_id,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type listBookingsResponse struct {
	Data       []*domain.Booking  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// Create books a service for the authenticated customer.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking details"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := parseDate(req.ScheduledDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "scheduled_date must be YYYY-MM-DD")
	}

	booking, err := h.bookings.Create(c.Request().Context(), ports.CreateBookingInput{
		CustomerID:    userID,
		ServiceID:     req.ServiceID,
		AddressID:     req.AddressID,
		ScheduledDate: date,
		ScheduledTime: req.ScheduledTime,
		ProviderID:    req.ProviderID,
		Notes:         req.Notes,
	})
	if err != nil {
		return err
	}

	metrics.BookingsCreatedTotal.WithLabelValues(strconv.FormatBool(booking.ProviderID != "")).Inc()
	return c.JSON(http.StatusCreated, booking)
}

// UpdateStatus applies a status transition requested by the bound provider or
// an admin.
//
// @Summary      Update booking status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Booking id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Booking
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.bookings.UpdateStatus(c.Request().Context(), ports.UpdateStatusInput{
		BookingID: c.Param("id"),
		Target:    domain.BookingStatus(req.Status),
		ActorID:   userID,
		ActorRole: role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// ListAll returns a page of all bookings, optionally filtered by status.
// Admin only.
//
// @Summary      List all bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Rows per page"
// @Success      200     {object}  listBookingsResponse
// @Failure      403     {object}  errorResponse
// @Router       /bookings/all [get]
func (h *BookingHandler) ListAll(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.bookings.ListAll(c.Request().Context(), ports.BookingListFilter{
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listBookingsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
