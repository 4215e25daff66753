package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/careloop/booking-platform/internal/api"
	"github.com/careloop/booking-platform/internal/core/service"
	"github.com/careloop/booking-platform/internal/infrastructure/db/mongo"
	"github.com/careloop/booking-platform/internal/infrastructure/db/redis"
	"github.com/careloop/booking-platform/internal/infrastructure/notify"
	"github.com/careloop/booking-platform/internal/infrastructure/payment"
	"github.com/careloop/booking-platform/internal/infrastructure/upload"
	"github.com/careloop/booking-platform/internal/pkg/config"
	"github.com/careloop/booking-platform/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	providerRepo := mongo.NewProviderRepository(db)
	bookingRepo := mongo.NewBookingRepository(db)
	paymentRepo := mongo.NewPaymentRepository(db)
	catalogRepo := mongo.NewCatalogRepository(db)
	addressRepo := mongo.NewAddressRepository(db)
	statsRepo := mongo.NewStatsRepository(db)

	for _, idx := range []interface {
		EnsureIndexes(context.Context) error
	}{userRepo, providerRepo, bookingRepo, paymentRepo, catalogRepo, addressRepo} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	// --- Collaborators ---
	otpStore := redis.NewOTPStore(rdb)

	emailSender := notify.NewEmailSender(notify.EmailConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, log)
	smsSender := notify.NewSMSSender(notify.SMSConfig{
		APIURL: cfg.SMS.APIURL,
		APIKey: cfg.SMS.APIKey,
		Sender: cfg.SMS.Sender,
	}, log)

	dispatcher := notify.NewDispatcher(cfg.NotifyWorkers, emailSender, smsSender, log)
	dispatcher.Start(ctx)

	uploader, err := upload.NewCloudinaryUploader(upload.Config{
		CloudName: cfg.Cloudinary.CloudName,
		APIKey:    cfg.Cloudinary.APIKey,
		APISecret: cfg.Cloudinary.APISecret,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cloudinary init failed")
	}

	gateway := payment.NewRazorpayGateway(payment.Config{
		Enabled:   cfg.Razorpay.Enabled,
		KeyID:     cfg.Razorpay.KeyID,
		KeySecret: cfg.Razorpay.KeySecret,
	}, log)

	// --- Services ---
	authService := service.NewAuthService(userRepo, providerRepo, otpStore, dispatcher, uploader, cfg.JWTSecret, cfg.TokenTTL, cfg.OTPTTL, log)
	bookingService := service.NewBookingService(bookingRepo, catalogRepo, providerRepo, userRepo, dispatcher, log)
	paymentService := service.NewPaymentService(paymentRepo, bookingRepo, gateway, log)
	providerService := service.NewProviderService(providerRepo, bookingRepo, uploader, log)
	customerService := service.NewCustomerService(addressRepo, userRepo, log)
	catalogService := service.NewCatalogService(catalogRepo, log)
	adminService := service.NewAdminService(userRepo, providerRepo, statsRepo, dispatcher, log)

	e := api.NewRouter(api.Deps{
		Auth:      authService,
		Bookings:  bookingService,
		Payments:  paymentService,
		Providers: providerService,
		Customers: customerService,
		Catalog:   catalogService,
		Admin:     adminService,
		DB:        db,
		Redis:     rdb,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
