package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

// AdminHandler serves user management, the provider approval queue, catalog
// CRUD and the dashboard.
type AdminHandler struct {
	admin   ports.AdminService
	catalog ports.CatalogService
}

func NewAdminHandler(admin ports.AdminService, catalog ports.CatalogService) *AdminHandler {
	return &AdminHandler{admin: admin, catalog: catalog}
}

type listUsersResponse struct {
	Data       []*domain.User     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

type blockUserRequest struct {
	Blocked bool `json:"blocked"`
}

type pendingProviderResponse struct {
	User    *domain.User            `json:"user"`
	Profile *domain.ProviderProfile `json:"profile,omitempty"`
}

type approveRejectRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Reason string `json:"reason,omitempty"`
}

type approveRejectResponse struct {
	User    *domain.User            `json:"user"`
	Profile *domain.ProviderProfile `json:"profile"`
}

type discountRequest struct {
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
	ValidUntil string  `json:"valid_until,omitempty"`
}

type createServiceRequest struct {
	Name            string           `json:"name"             validate:"required"`
	Description     string           `json:"description"      validate:"required"`
	Icon            string           `json:"icon"`
	BasePrice       float64          `json:"base_price"       validate:"gte=0"`
	DurationMinutes int              `json:"duration_minutes" validate:"required,gte=15"`
	IsActive        *bool            `json:"is_active,omitempty"`
	Discount        *discountRequest `json:"discount,omitempty"`
}

type updateServiceRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Icon            *string          `json:"icon,omitempty"`
	BasePrice       *float64         `json:"base_price,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
	Discount        *discountRequest `json:"discount,omitempty"`
}

type dashboardStatsResponse struct {
	TotalCustomers    int64             `json:"total_customers"`
	TotalProviders    int64             `json:"total_providers"`
	ApprovedProviders int64             `json:"approved_providers"`
	PendingProviders  int64             `json:"pending_providers"`
	BlockedUsers      int64             `json:"blocked_users"`
	TotalBookings     int64             `json:"total_bookings"`
	PendingBookings   int64             `json:"pending_bookings"`
	CompletedBookings int64             `json:"completed_bookings"`
	CancelledBookings int64             `json:"cancelled_bookings"`
	TotalRevenue      float64           `json:"total_revenue"`
	TotalServices     int64             `json:"total_services"`
	ActiveServices    int64             `json:"active_services"`
	RecentBookings    []*domain.Booking `json:"recent_bookings"`
}

// ListUsers returns a page of users, optionally filtered by role or block
// flag.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role     query     string  false  "Filter by role"
// @Param        blocked  query     bool    false  "Filter by block flag"
// @Param        page     query     int     false  "Page number (1-based)"
// @Param        limit    query     int     false  "Rows per page"
// @Success      200      {object}  listUsersResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	filter := ports.UserListFilter{
		Role:  c.QueryParam("role"),
		Page:  page,
		Limit: limit,
	}
	if raw := c.QueryParam("blocked"); raw != "" {
		blocked, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "blocked must be a boolean")
		}
		filter.Blocked = &blocked
	}

	result, err := h.admin.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// BlockUser toggles a user's block flag. Admin accounts cannot be blocked.
//
// @Summary      Block or unblock a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "User id"
// @Param        body  body      blockUserRequest  true  "Block flag"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/users/{id}/block [patch]
func (h *AdminHandler) BlockUser(c echo.Context) error {
	var req blockUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.admin.SetBlocked(c.Request().Context(), c.Param("id"), req.Blocked)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// PendingProviders returns provider accounts awaiting approval.
//
// @Summary      List pending providers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  pendingProviderResponse
// @Router       /admin/providers/pending [get]
func (h *AdminHandler) PendingProviders(c echo.Context) error {
	pending, err := h.admin.PendingProviders(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]pendingProviderResponse, 0, len(pending))
	for _, p := range pending {
		out = append(out, pendingProviderResponse{User: p.User, Profile: p.Profile})
	}
	return c.JSON(http.StatusOK, out)
}

// ApproveRejectProvider resolves a pending provider registration.
//
// @Summary      Approve or reject a provider
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Provider user id"
// @Param        body  body      approveRejectRequest  true  "Decision"
// @Success      200   {object}  approveRejectResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/providers/{id}/approve-reject [patch]
func (h *AdminHandler) ApproveRejectProvider(c echo.Context) error {
	var req approveRejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, profile, err := h.admin.ApproveRejectProvider(c.Request().Context(), ports.ApproveRejectInput{
		ProviderUserID:  c.Param("id"),
		Approve:         req.Action == "approve",
		RejectionReason: req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, approveRejectResponse{User: user, Profile: profile})
}

// ListServices returns the full catalog including inactive entries.
//
// @Summary      List all services
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ServiceCategory
// @Router       /admin/services [get]
func (h *AdminHandler) ListServices(c echo.Context) error {
	services, err := h.catalog.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, services)
}

// CreateService adds a catalog entry.
//
// @Summary      Create a service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createServiceRequest  true  "Service details"
// @Success      201   {object}  domain.ServiceCategory
// @Failure      400   {object}  errorResponse
// @Router       /admin/services [post]
func (h *AdminHandler) CreateService(c echo.Context) error {
	var req createServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	discount, err := parseDiscount(req.Discount)
	if err != nil {
		return err
	}

	created, err := h.catalog.Create(c.Request().Context(), ports.CreateServiceInput{
		Name:            req.Name,
		Description:     req.Description,
		Icon:            req.Icon,
		BasePrice:       req.BasePrice,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive,
		Discount:        discount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdateService patches a catalog entry; absent fields stay unchanged.
//
// @Summary      Update a service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Service id"
// @Param        body  body      updateServiceRequest  true  "Fields to change"
// @Success      200   {object}  domain.ServiceCategory
// @Failure      404   {object}  errorResponse
// @Router       /admin/services/{id} [patch]
func (h *AdminHandler) UpdateService(c echo.Context) error {
	var req updateServiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	discount, err := parseDiscount(req.Discount)
	if err != nil {
		return err
	}

	updated, err := h.catalog.Update(c.Request().Context(), c.Param("id"), ports.ServiceUpdate{
		Name:            req.Name,
		Description:     req.Description,
		Icon:            req.Icon,
		BasePrice:       req.BasePrice,
		DurationMinutes: req.DurationMinutes,
		IsActive:        req.IsActive,
		Discount:        discount,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteService removes a catalog entry.
//
// @Summary      Delete a service
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Service id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/services/{id} [delete]
func (h *AdminHandler) DeleteService(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "service deleted"})
}

// DashboardStats returns the admin dashboard aggregate.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardStatsResponse
// @Router       /admin/dashboard/stats [get]
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	stats, err := h.admin.DashboardStats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardStatsResponse{
		TotalCustomers:    stats.TotalCustomers,
		TotalProviders:    stats.TotalProviders,
		ApprovedProviders: stats.ApprovedProviders,
		PendingProviders:  stats.PendingProviders,
		BlockedUsers:      stats.BlockedUsers,
		TotalBookings:     stats.TotalBookings,
		PendingBookings:   stats.PendingBookings,
		CompletedBookings: stats.CompletedBookings,
		CancelledBookings: stats.CancelledBookings,
		TotalRevenue:      stats.TotalRevenue,
		TotalServices:     stats.TotalServices,
		ActiveServices:    stats.ActiveServices,
		RecentBookings:    stats.RecentBookings,
	})
}

func parseDiscount(req *discountRequest) (*domain.Discount, error) {
	if req == nil {
		return nil, nil
	}

	d := &domain.Discount{Percentage: req.Percentage}
	if req.ValidUntil != "" {
		t, err := parseDate(req.ValidUntil)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "valid_until must be YYYY-MM-DD")
		}
		d.ValidUntil = &t
	}
	return d, nil
}
