// @title Event Booking API
// @version 1.0
// @description Event listings and bookings. Organizer endpoints require a bearer token from /auth/login.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the organizer JWT.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventbooking/config"
	_ "eventbooking/docs"
	"eventbooking/internal/adapters/auth"
	"eventbooking/internal/adapters/calendar"
	"eventbooking/internal/adapters/email"
	deliveryhttp "eventbooking/internal/delivery/http"
	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/domain"
	"eventbooking/internal/repository/postgres"
	"eventbooking/internal/services"
)

const (
	bcryptCost      = 12
	shutdownTimeout = 10 * time.Second
)

func main() {
	migrate := flag.Bool("migrate", true, "apply pending database migrations on startup")
	flag.Parse()

	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger, *migrate); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, migrate bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DBUrl, postgres.PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate {
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			return err
		}
	}

	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		return err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}
	emailService := services.NewEmailService(mailer, renderer)

	eventService := services.NewEventService(eventRepo, bookingRepo, cfg.RequestTimeout)
	bookingService := services.NewBookingService(eventRepo, bookingRepo, emailService, logger, cfg.PublicBaseURL, cfg.RequestTimeout)

	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set; organizer login is disabled")
	}
	authService := services.NewAuthService(
		services.OrganizerCredentials{Email: cfg.AdminEmail, PasswordHash: cfg.AdminPasswordHash},
		auth.NewBcryptHasher(bcryptCost),
		auth.NewJWTIssuer(cfg.JWTSecret),
		cfg.JWTExpiry,
	)

	router := deliveryhttp.NewRouter(deliveryhttp.RouterConfig{
		Logger:             logger,
		EventController:    controllers.NewEventController(logger, eventService, calendar.NewICSExporter(cfg.PublicBaseURL)),
		BookingController:  controllers.NewBookingController(logger, bookingService),
		AuthController:     controllers.NewAuthController(logger, authService),
		TokenVerifier:      auth.NewJWTVerifier(cfg.JWTSecret, domain.RoleOrganizer),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
