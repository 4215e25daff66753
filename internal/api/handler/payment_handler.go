package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/careloop/booking-platform/internal/core/ports"
)

// PaymentHandler handles gateway order creation and capture verification.
type PaymentHandler struct {
	payments ports.PaymentService
}

func NewPaymentHandler(payments ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

type createOrderRequest struct {
	BookingID string `json:"booking_id" validate:"required"`
}

type createOrderResponse struct {
	OrderID     string `json:"order_id"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id,omitempty"`
	PaymentID   string `json:"payment_id"`
}

type verifyPaymentRequest struct {
	PaymentID        string `json:"payment_id"         validate:"required"`
	OrderID          string `json:"order_id"           validate:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" validate:"required"`
	Signature        string `json:"signature"          validate:"required"`
}

// CreateOrder opens a gateway order for one of the customer's bookings.
//
// @Summary      Create a payment order
// @Tags         payment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Booking id"
// @Success      201   {object}  createOrderResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /payment/create-order [post]
func (h *PaymentHandler) CreateOrder(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.payments.CreateOrder(c.Request().Context(), ports.CreateOrderInput{
		BookingID:  req.BookingID,
		CustomerID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createOrderResponse{
		OrderID:     result.OrderID,
		AmountMinor: result.AmountMinor,
		Currency:    result.Currency,
		KeyID:       result.KeyID,
		PaymentID:   result.PaymentID,
	})
}

// Verify checks the capture signature the client received from the gateway
// checkout and finalizes the payment.
//
// @Summary      Verify a payment
// @Tags         payment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      verifyPaymentRequest  true  "Gateway identifiers"
// @Success      200   {object}  domain.Payment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /payment/verify [post]
func (h *PaymentHandler) Verify(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req verifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	payment, err := h.payments.Verify(c.Request().Context(), ports.VerifyInput{
		PaymentID:        req.PaymentID,
		OrderID:          req.OrderID,
		GatewayPaymentID: req.GatewayPaymentID,
		Signature:        req.Signature,
		CustomerID:       userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}
