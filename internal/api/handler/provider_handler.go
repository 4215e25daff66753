package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

// ProviderHandler serves the provider's jobs, profile, earnings and report
// uploads. Job decisions and status changes go through the booking service so
// completion accounting lives in one place.
type ProviderHandler struct {
	providers ports.ProviderService
	bookings  ports.BookingService
}

func NewProviderHandler(providers ports.ProviderService, bookings ports.BookingService) *ProviderHandler {
	return &ProviderHandler{providers: providers, bookings: bookings}
}

type acceptRejectRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
	Reason string `json:"reason,omitempty"`
}

type earningsResponse struct {
	Earnings       domain.Earnings   `json:"earnings"`
	RecentBookings []*domain.Booking `json:"recent_bookings"`
}

// Jobs returns the provider's assigned bookings, optionally filtered by
// status.
//
// @Summary      List my jobs
// @Tags         provider
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "Filter by status"
// @Success      200  {array}  domain.Booking
// @Router       /provider/jobs [get]
func (h *ProviderHandler) Jobs(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	jobs, err := h.providers.Jobs(c.Request().Context(), userID, c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobs)
}

// Profile returns the provider's profile.
//
// @Summary      Get my profile
// @Tags         provider
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.ProviderProfile
// @Failure      404  {object}  errorResponse
// @Router       /provider/profile [get]
func (h *ProviderHandler) Profile(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.providers.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Earnings returns the running earnings tally and recent completed jobs.
//
// @Summary      Get my earnings
// @Tags         provider
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  earningsResponse
// @Failure      404  {object}  errorResponse
// @Router       /provider/earnings [get]
func (h *ProviderHandler) Earnings(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.providers.Earnings(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, earningsResponse{
		Earnings:       result.Earnings,
		RecentBookings: result.RecentBookings,
	})
}

// AcceptReject records the provider's decision on an assigned job.
//
// @Summary      Accept or reject a job
// @Tags         provider
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Booking id"
// @Param        body  body      acceptRejectRequest  true  "Decision"
// @Success      200   {object}  domain.Booking
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /provider/jobs/{id}/accept-reject [patch]
func (h *ProviderHandler) AcceptReject(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req acceptRejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	booking, err := h.bookings.AcceptReject(c.Request().Context(), ports.AcceptRejectInput{
		BookingID: c.Param("id"),
		ActorID:   userID,
		Accept:    req.Action == "accept",
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}

// UpdateStatus moves an assigned job along its lifecycle.
//
// @Summary      Update job status
// @Tags         provider
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Booking id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Booking
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /provider/jobs/{id}/status [patch]
func (h *ProviderHandler) UpdateStatus(c echo.Context) error {
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

// UploadReport stores a report file against one of the provider's bookings.
// Expects a multipart form with a "report" file field and a "booking_id"
// field.
//
// @Summary      Upload a booking report
// @Tags         provider
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        booking_id  formData  string  true  "Booking id"
// @Param        report      formData  file    true  "Report file"
// @Success      201  {object}  domain.Report
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /provider/upload-report [post]
func (h *ProviderHandler) UploadReport(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	bookingID := c.FormValue("booking_id")
	if bookingID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "booking_id is required")
	}

	fileHeader, err := c.FormFile("report")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "report file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read report file")
	}
	defer file.Close()

	report, err := h.providers.UploadReport(c.Request().Context(), userID, bookingID, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, report)
}
