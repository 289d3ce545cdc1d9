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

	"github.com/rs/zerolog"

	"github.com/teampulse/feedback-system/internal/api"
	"github.com/teampulse/feedback-system/internal/api/handler"
	"github.com/teampulse/feedback-system/internal/core/ports"
	"github.com/teampulse/feedback-system/internal/core/service"
	mongostore "github.com/teampulse/feedback-system/internal/infrastructure/db/mongo"
	redisstore "github.com/teampulse/feedback-system/internal/infrastructure/db/redis"
	"github.com/teampulse/feedback-system/internal/infrastructure/queue"
	"github.com/teampulse/feedback-system/internal/pkg/config"
	"github.com/teampulse/feedback-system/internal/pkg/security"
	"github.com/teampulse/feedback-system/pkg/logger"
)

// @title                       Employee Feedback API
// @version                     1.0
// @description                 Managers give structured feedback to their direct reports; employees review and acknowledge it.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
func main() {
	cfg := config.MustLoad()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "feedback-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("service stopped with error")
	}
	log.Info().Msg("service stopped")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Record store ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		Timeout:     cfg.Mongo.Timeout,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	users := mongostore.NewUserRepository(db)
	feedback := mongostore.NewFeedbackRepository(db)

	readiness := []handler.DependencyCheck{{
		Name: "mongodb",
		Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}}

	// --- Auth core ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	codec := security.NewJWTCodec(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime)
	authService := service.NewAuthService(users, hasher, codec, cfg.Auth.TokenLifetime, logger.Component("auth"))
	resolver := service.NewIdentityResolver(users, codec)

	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
		} else {
			defer func() { _ = rdb.Close() }()
			authService.WithThrottle(redisstore.NewLoginThrottle(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginAttemptWindow))
			readiness = append(readiness, handler.DependencyCheck{
				Name: "redis",
				Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			})
		}
	}

	// --- Feedback events ---
	var notifier ports.FeedbackNotifier = queue.NewLogNotifier(logger.Component("notifier"))
	if cfg.Notify.AMQPURL != "" {
		publisher, err := queue.NewAMQPNotifier(cfg.Notify.AMQPURL, cfg.Notify.Queue)
		if err != nil {
			return err
		}
		defer func() { _ = publisher.Close() }()
		notifier = publisher
		log.Info().Str("queue", cfg.Notify.Queue).Msg("publishing feedback events to amqp")
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, notifier, logger.Component("dispatcher"))
	dispatcher.Start(workerCtx)

	feedbackService := service.NewFeedbackService(users, feedback, dispatcher, logger.Component("feedback"))

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Auth:        authService,
		Resolver:    resolver,
		Feedback:    feedbackService,
		Readiness:   readiness,
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	stopWorkers()
	dispatcher.Wait()
	return nil
}
