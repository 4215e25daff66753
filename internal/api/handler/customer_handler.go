package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

// CustomerHandler serves the customer's address book and booking history.
type CustomerHandler struct {
	customers ports.CustomerService
	bookings  ports.BookingService
}

func NewCustomerHandler(customers ports.CustomerService, bookings ports.BookingService) *CustomerHandler {
	return &CustomerHandler{customers: customers, bookings: bookings}
}

type coordinatesRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type addressRequest struct {
	Label        string              `json:"label"         validate:"required"`
	AddressLine1 string              `json:"address_line1" validate:"required"`
	AddressLine2 string              `json:"address_line2"`
	City         string              `json:"city"          validate:"required"`
	State        string              `json:"state"         validate:"required"`
	Pincode      string              `json:"pincode"       validate:"required"`
	Country      string              `json:"country"       validate:"required"`
	Coordinates  *coordinatesRequest `json:"coordinates,omitempty"`
	IsDefault    bool                `json:"is_default"`
}

func (r addressRequest) toInput() ports.AddressInput {
	input := ports.AddressInput{
		Label:        r.Label,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		Country:      r.Country,
		IsDefault:    r.IsDefault,
	}
	if r.Coordinates != nil {
		input.Coordinates = &domain.Coordinates{
			Latitude:  r.Coordinates.Latitude,
			Longitude: r.Coordinates.Longitude,
		}
	}
	return input
}

// AddAddress creates a new address for the authenticated customer.
//
// @Summary      Add an address
// @Tags         customer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addressRequest  true  "Address details"
// @Success      201   {object}  domain.Address
// @Failure      400   {object}  errorResponse
// @Router       /customer/addresses [post]
func (h *CustomerHandler) AddAddress(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	addr, err := h.customers.AddAddress(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, addr)
}

// ListAddresses returns the customer's addresses.
//
// @Summary      List addresses
// @Tags         customer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Address
// @Router       /customer/addresses [get]
func (h *CustomerHandler) ListAddresses(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	addresses, err := h.customers.ListAddresses(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, addresses)
}

// UpdateAddress replaces an address owned by the customer.
//
// @Summary      Update an address
// @Tags         customer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Address id"
// @Param        body  body      addressRequest  true  "Address details"
// @Success      200   {object}  domain.Address
// @Failure      404   {object}  errorResponse
// @Router       /customer/addresses/{id} [put]
func (h *CustomerHandler) UpdateAddress(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req addressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	addr, err := h.customers.UpdateAddress(c.Request().Context(), userID, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, addr)
}

// DeleteAddress removes an address owned by the customer.
//
// @Summary      Delete an address
// @Tags         customer
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Address id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /customer/addresses/{id} [delete]
func (h *CustomerHandler) DeleteAddress(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.customers.DeleteAddress(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "address deleted"})
}

// Bookings returns the customer's booking history, newest first.
//
// @Summary      List my bookings
// @Tags         customer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Booking
// @Router       /customer/bookings [get]
func (h *CustomerHandler) Bookings(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookings.ListByCustomer(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookings)
}

// Booking returns one of the customer's bookings by id.
//
// @Summary      Get one of my bookings
// @Tags         customer
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Booking id"
// @Success      200  {object}  domain.Booking
// @Failure      404  {object}  errorResponse
// @Router       /customer/bookings/{id} [get]
func (h *CustomerHandler) Booking(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	booking, err := h.bookings.GetForCustomer(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, booking)
}
