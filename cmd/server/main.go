package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/restaurante/reservations-api/docs" // swagger docs

	"github.com/restaurante/reservations-api/internal/api"
	"github.com/restaurante/reservations-api/internal/api/handler"
	"github.com/restaurante/reservations-api/internal/core/ports"
	"github.com/restaurante/reservations-api/internal/core/service"
	mongodb "github.com/restaurante/reservations-api/internal/infrastructure/db/mongo"
	redisdb "github.com/restaurante/reservations-api/internal/infrastructure/db/redis"
	"github.com/restaurante/reservations-api/internal/infrastructure/security"
	"github.com/restaurante/reservations-api/internal/pkg/config"
	"github.com/restaurante/reservations-api/internal/pkg/i18n"
	"github.com/restaurante/reservations-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Restaurant Reservations API
// @version 1.0
// @description Reservations and user accounts behind a JWT authentication gate.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "reservations-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	users := mongodb.NewUserRepository(db)
	reservations := mongodb.NewReservationRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := reservations.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("reservation indexes: %w", err)
	}

	checks := map[string]handler.Check{"mongodb": mongodb.HealthCheck(client)}

	var throttle ports.LoginThrottle
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		throttle = redisdb.NewLoginThrottle(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
		checks["redis"] = redisdb.HealthCheck(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	var jwtOpts []security.JWTOption
	if cfg.JWT.Issuer != "" {
		jwtOpts = append(jwtOpts, security.WithIssuer(cfg.JWT.Issuer))
	}
	tokens := security.NewJWTCodec(cfg.JWT.Secret, cfg.JWT.TTL, jwtOpts...)
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	e := api.NewRouter(api.Dependencies{
		Auth:         service.NewAuthService(users, hasher, tokens, throttle, log),
		Users:        service.NewUserService(users, reservations, hasher, log),
		Reservations: service.NewReservationService(reservations, log),
		Tokens:       tokens,
		Identities:   service.NewIdentityService(users),
		Messages:     i18n.New(cfg.DefaultLocale),
		HealthChecks: checks,
		Registerer:   prometheus.DefaultRegisterer,
		Gatherer:     prometheus.DefaultGatherer,
		Logger:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server start: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
