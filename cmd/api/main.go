// Command api serves the event booking HTTP API.
//
// @title Event Booking API
// @version 1.0
// @description Events, registration and seat booking with QR tickets.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventbooking/config"
	_ "eventbooking/docs"
	"eventbooking/internal/adapters/auth"
	"eventbooking/internal/adapters/email"
	"eventbooking/internal/adapters/storage"
	"eventbooking/internal/adapters/ticket"
	httpdelivery "eventbooking/internal/delivery/http"
	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/repository/postgres"
	"eventbooking/internal/services"
)

const (
	qrCodeSize     = 256
	shutdownPeriod = 5 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
	logger.Info("server exited cleanly")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	// Close DB connection last
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close db", "err", err)
		}
	}()

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(initCtx); err != nil {
		return err
	}
	if err := postgres.Migrate(initCtx, db); err != nil {
		return err
	}
	logger.Info("database schema initialized")

	// Adapters
	images, err := storage.NewFilesystemStore(storage.Config{
		Root:         filepath.Join(cfg.UploadsDir, "events"),
		PublicPrefix: "/uploads/events",
	}, logger)
	if err != nil {
		return err
	}
	qrcodes, err := storage.NewFilesystemStore(storage.Config{
		Root:         filepath.Join(cfg.UploadsDir, "qrcodes"),
		PublicPrefix: "/uploads/qrcodes",
	}, logger)
	if err != nil {
		return err
	}
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return err
	}
	hasher := auth.NewBcryptHasher(0)
	tokenIssuer := auth.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := auth.NewJWTVerifier(cfg.JWTSecret)

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	// Services
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, renderer, logger)
	userService := services.NewUserService(userRepo, hasher, emailService, logger, cfg.ServiceTimeout)
	authService := services.NewAuthService(userService, tokenIssuer, cfg.JWTExpiry)
	eventService := services.NewEventService(eventRepo, images, qrcodes, logger, cfg.ServiceTimeout)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, userRepo, qrcodes,
		ticket.NewQRRenderer(qrCodeSize), emailService, logger, cfg.ServiceTimeout)

	if cfg.SeedAdmin() {
		u, created, err := userService.EnsureAdmin(initCtx, cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			logger.Info("admin account created", "username", u.Username)
		}
	}

	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:            logger,
		TokenVerifier:     tokenVerifier,
		AuthController:    controllers.NewAuthController(logger, authService, userService),
		EventController:   controllers.NewEventController(logger, eventService),
		BookingController: controllers.NewBookingController(logger, bookingService),
		UploadsDir:        cfg.UploadsDir,
	})

	var handler http.Handler = router
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.Recoverer(logger, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
	}
	return nil
}
