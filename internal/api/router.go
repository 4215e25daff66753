package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/careloop/booking-platform/internal/api/handler"
	"github.com/careloop/booking-platform/internal/api/middleware"
	"github.com/careloop/booking-platform/internal/core/domain"
	"github.com/careloop/booking-platform/internal/core/ports"
)

// Deps bundles everything the router needs to wire handlers.
type Deps struct {
	Auth      ports.AuthService
	Bookings  ports.BookingService
	Payments  ports.PaymentService
	Providers ports.ProviderService
	Customers ports.CustomerService
	Catalog   ports.CatalogService
	Admin     ports.AdminService

	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("careloop"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	auth := middleware.Auth(deps.JWTSecret)
	customerOnly := middleware.RBAC(domain.RoleCustomer)
	providerOnly := middleware.RBAC(domain.RoleProvider)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	bookingHandler := handler.NewBookingHandler(deps.Bookings)
	paymentHandler := handler.NewPaymentHandler(deps.Payments)
	providerHandler := handler.NewProviderHandler(deps.Providers, deps.Bookings)
	customerHandler := handler.NewCustomerHandler(deps.Customers, deps.Bookings)
	catalogHandler := handler.NewCatalogHandler(deps.Catalog)
	adminHandler := handler.NewAdminHandler(deps.Admin, deps.Catalog)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/verify-otp", authHandler.VerifyOTP)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)
	e.GET("/auth/me", authHandler.Me, auth)

	// --- Public catalog ---
	e.GET("/services", catalogHandler.List)

	// --- Bookings ---
	bookings := e.Group("/bookings", auth)
	bookings.POST("", bookingHandler.Create, customerOnly)
	bookings.GET("/all", bookingHandler.ListAll, adminOnly)
	bookings.PATCH("/:id/status", bookingHandler.UpdateStatus, middleware.RBAC(domain.RoleProvider, domain.RoleAdmin))

	// --- Payments ---
	payment := e.Group("/payment", auth, customerOnly)
	payment.POST("/create-order", paymentHandler.CreateOrder)
	payment.POST("/verify", paymentHandler.Verify)

	// --- Customer surface ---
	customer := e.Group("/customer", auth, customerOnly)
	customer.POST("/addresses", customerHandler.AddAddress)
	customer.GET("/addresses", customerHandler.ListAddresses)
	customer.PUT("/addresses/:id", customerHandler.UpdateAddress)
	customer.DELETE("/addresses/:id", customerHandler.DeleteAddress)
	customer.GET("/bookings", customerHandler.Bookings)
	customer.GET("/bookings/:id", customerHandler.Booking)

	// --- Provider surface ---
	provider := e.Group("/provider", auth, providerOnly)
	provider.GET("/jobs", providerHandler.Jobs)
	provider.GET("/profile", providerHandler.Profile)
	provider.GET("/earnings", providerHandler.Earnings)
	provider.PATCH("/jobs/:id/accept-reject", providerHandler.AcceptReject)
	provider.PATCH("/jobs/:id/status", providerHandler.UpdateStatus)
	provider.POST("/upload-report", providerHandler.UploadReport)

	// --- Admin surface ---
	admin := e.Group("/admin", auth, adminOnly)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/block", adminHandler.BlockUser)
	admin.GET("/providers/pending", adminHandler.PendingProviders)
	admin.PATCH("/providers/:id/approve-reject", adminHandler.ApproveRejectProvider)
	admin.GET("/services", adminHandler.ListServices)
	admin.POST("/services", adminHandler.CreateService)
	admin.PATCH("/services/:id", adminHandler.UpdateService)
	admin.DELETE("/services/:id", adminHandler.DeleteService)
	admin.GET("/dashboard/stats", adminHandler.DashboardStats)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
