// Command server runs the BloodX HTTP API.
//
//	@title						BloodX API
//	@version					1.0
//	@description				Blood donation backend: users, donation requests, fund payments and stats.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/bloodx-backend/internal/config"
	httpapi "github.com/tbourn/bloodx-backend/internal/http"
	"github.com/tbourn/bloodx-backend/internal/identity"
	"github.com/tbourn/bloodx-backend/internal/observability"
	"github.com/tbourn/bloodx-backend/internal/payment"
	"github.com/tbourn/bloodx-backend/internal/repo"
	"github.com/tbourn/bloodx-backend/internal/scheduler"
	"github.com/tbourn/bloodx-backend/internal/sysutil"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	gin.SetMode(cfg.GinMode)
	sysutil.ConfigureLogging(cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.OTEL, sysutil.BuildVersion())
	if err != nil {
		log.Fatal().Err(err).Msg("tracing setup")
	}

	db, err := repo.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open record store")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate record store")
	}

	deps := httpapi.Deps{DB: db, Config: cfg}
	if cfg.Identity.Enabled() {
		v, err := identity.NewFirebaseVerifier(ctx, cfg.Identity.CredentialsFile)
		if err != nil {
			log.Fatal().Err(err).Msg("identity provider")
		}
		deps.Verifier = v
	} else {
		log.Warn().Msg("FIREBASE_CREDENTIALS_FILE not set; authenticated routes will answer 503")
	}
	if cfg.Payment.Enabled() {
		deps.Gateway = payment.NewStripeGateway(cfg.Payment.SecretKey)
	} else {
		log.Warn().Msg("STRIPE_SECRET_KEY not set; checkout and payment confirmation will answer 503")
	}

	jobs, err := scheduler.NewManager(db)
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler")
	}
	if err := jobs.RegisterPurge(cfg.IdempotencyPurgeInterval); err != nil {
		log.Fatal().Err(err).Msg("register purge job")
	}
	jobs.Start()

	r := gin.New()
	httpapi.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", sysutil.BuildVersion()).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	_ = jobs.Stop()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracer shutdown")
	}
	if err := repo.Close(db); err != nil {
		log.Error().Err(err).Msg("close record store")
	}
	log.Info().Dur("grace", cfg.ShutdownTimeout).Msg("server stopped")
}
