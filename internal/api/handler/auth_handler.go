package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type providerFieldsRequest struct {
	Specialization     string   `json:"specialization"   validate:"required"`
	ExperienceYears    int      `json:"experience_years" validate:"gte=0"`
	LicenseNumber      string   `json:"license_number"   validate:"required"`
	Bio                string   `json:"bio"              validate:"required"`
	ServiceCategoryIDs []string `json:"service_category_ids"`
}

type registerRequest struct {
	Name     string                 `json:"name"     validate:"required"`
	Email    string                 `json:"email"    validate:"required,email"`
	Phone    string                 `json:"phone"    validate:"required"`
	Password string                 `json:"password" validate:"required,min=6"`
	Role     string                 `json:"role"     validate:"required,oneof=customer provider"`
	Provider *providerFieldsRequest `json:"provider,omitempty"`
}

type registerResponse struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type verifyOTPRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Code   string `json:"code"    validate:"required,len=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Code        string `json:"code"         validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// registerRequestFromForm reads a multipart registration. Provider fields
// arrive flat; service_category_ids is comma separated.
func registerRequestFromForm(c echo.Context) registerRequest {
	req := registerRequest{
		Name:     c.FormValue("name"),
		Email:    c.FormValue("email"),
		Phone:    c.FormValue("phone"),
		Password: c.FormValue("password"),
		Role:     c.FormValue("role"),
	}
	if req.Role == domain.RoleProvider {
		years, _ := strconv.Atoi(c.FormValue("experience_years"))
		p := &providerFieldsRequest{
			Specialization:  c.FormValue("specialization"),
			ExperienceYears: years,
			LicenseNumber:   c.FormValue("license_number"),
			Bio:             c.FormValue("bio"),
		}
		if ids := c.FormValue("service_category_ids"); ids != "" {
			p.ServiceCategoryIDs = strings.Split(ids, ",")
		}
		req.Provider = p
	}
	return req
}

// Register creates a new customer or provider account and issues an OTP.
// Provider registration may be sent as multipart/form-data to attach the
// license document under the "license_document" file field.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		req = registerRequestFromForm(c)
	} else if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Role == domain.RoleProvider && req.Provider == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "provider fields are required")
	}

	input := ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	}
	if req.Provider != nil {
		input.Provider = &ports.ProviderRegistration{
			Specialization:     req.Provider.Specialization,
			ExperienceYears:    req.Provider.ExperienceYears,
			LicenseNumber:      req.Provider.LicenseNumber,
			Bio:                req.Provider.Bio,
			ServiceCategoryIDs: req.Provider.ServiceCategoryIDs,
		}
		if fileHeader, err := c.FormFile("license_document"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "cannot read license document")
			}
			defer file.Close()
			input.Provider.LicenseFile = file
		}
	}

	result, err := h.authService.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		UserID:  result.UserID,
		Message: "verification code sent",
	})
}

// VerifyOTP confirms the registration OTP. Customers receive a token;
// providers must wait for admin approval.
//
// @Summary      Verify registration OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      verifyOTPRequest  true  "User id and code"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.VerifyOTP(c.Request().Context(), req.UserID, req.Code)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// ForgotPassword issues a password reset OTP.
//
// @Summary      Request a password reset code
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  errorResponse
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "reset code sent"})
}

// ResetPassword sets a new password after OTP validation.
//
// @Summary      Reset password with OTP
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Email, code and new password"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ResetPassword(c.Request().Context(), req.Email, req.Code, req.NewPassword); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "password updated"})
}

// Me returns the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
