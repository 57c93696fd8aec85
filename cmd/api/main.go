package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"artistbooking/config"
	_ "artistbooking/docs"
	authadapter "artistbooking/internal/adapters/auth"
	emailadapter "artistbooking/internal/adapters/email"
	storageadapter "artistbooking/internal/adapters/storage"
	httpdelivery "artistbooking/internal/delivery/http"
	"artistbooking/internal/delivery/http/controllers"
	"artistbooking/internal/delivery/http/middleware"
	"artistbooking/internal/repository/postgres"
	"artistbooking/internal/services"
)

// @title ArtistBooking API
// @version 1.0
// @description Multi-tenant booking platform for artists, venues, and event organisers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("migration failed", "err", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	artistRepo := postgres.NewArtistRepository(db)
	venueRepo := postgres.NewVenueRepository(db)
	organiserRepo := postgres.NewOrganiserRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	followRepo := postgres.NewFollowRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	// Adapters
	hasher := authadapter.NewBcryptHasher(0)
	tokenIssuer := authadapter.NewJWTIssuer(cfg.JWTSecret)
	tokenVerifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	fileStorage, err := storageadapter.NewLocalStorage(cfg.StorageDir, cfg.StorageBaseURL)
	if err != nil {
		logger.Error("failed to init file storage", "err", err)
		os.Exit(1)
	}
	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: emailadapter.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureTLS,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to init mailer", "err", err)
		os.Exit(1)
	}

	// Services
	emailService := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer(), logger)
	accessService := services.NewAccessService(roleRepo, logger)
	artistService := services.NewArtistService(artistRepo, userRepo, followRepo, bookingRepo, fileStorage, logger)
	followService := services.NewFollowService(followRepo, artistRepo)
	bookingService := services.NewBookingService(bookingRepo, artistRepo, organiserRepo)
	sessionService := services.NewSessionService(sessionRepo)
	authService := services.NewAuthService(
		userRepo, artistRepo, venueRepo, organiserRepo, roleRepo, sessionRepo,
		hasher, tokenIssuer, tokenVerifier, cfg.JWTExpiry, fileStorage, emailService,
		cfg.AppBaseURL, logger,
	)

	// Delivery
	mux := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger:     logger,
		Verifier:   tokenVerifier,
		Sessions:   sessionRepo,
		Access:     accessService,
		StorageDir: cfg.StorageDir,
		Auth:       controllers.NewAuthController(logger, authService),
		Artist:     controllers.NewArtistController(logger, artistService, followService),
		Profile:    controllers.NewProfileController(logger, artistService),
		Booking:    controllers.NewBookingController(logger, bookingService),
		Session:    controllers.NewSessionController(logger, sessionService),
		Admin:      controllers.NewAdminController(logger, userRepo, sessionRepo),
	})

	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
