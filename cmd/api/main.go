package main

import (
	"context"
	"log"
	"time"

	"github.com/devphaseX/buyr-payments/internal/env"
	"github.com/devphaseX/buyr-payments/internal/events"
	"github.com/devphaseX/buyr-payments/internal/payment"
	"github.com/devphaseX/buyr-payments/internal/validator"
	"github.com/devphaseX/buyr-payments/internal/webhook"
	"go.uber.org/zap"
)

const version = "0.1.0"

var validate = validator.New()

func main() {
	envErr := env.Load()

	cfg := config{
		addr:    env.GetString("ADDR", ":3003"),
		env:     env.GetString("ENV", "development"),
		version: version,
		stripe: stripeConfig{
			secretKey:      env.GetString("STRIPE_SECRET_KEY", ""),
			endpointSecret: env.GetString("STRIPE_ENDPOINT_SECRET", ""),
			successURL:     env.GetString("STRIPE_SUCCESS_URL", "http://localhost:3003/v1/payments/success"),
			cancelURL:      env.GetString("STRIPE_CANCEL_URL", "http://localhost:3003/v1/payments/cancel"),
		},
		events: eventsConfig{
			driver:         env.GetString("EVENTS_DRIVER", "asynq"),
			publishTimeout: env.GetDuration("EVENTS_PUBLISH_TIMEOUT", 10*time.Second),
			kafkaBrokers:   env.GetStrings("KAFKA_BROKERS", []string{"localhost:9092"}),
			snsTopicARN:    env.GetString("SNS_TOPIC_ARN", ""),
		},
		redis: redisConfig{
			addr:     env.GetString("REDIS_ADDR", "localhost:6379"),
			password: env.GetString("REDIS_PASSWORD", ""),
			db:       env.GetInt("REDIS_DB", 0),
		},
		cors: corsConfig{
			allowedOrigins: env.GetStrings("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		rateLimit: rateLimitConfig{
			enabled: env.GetBool("RATELIMIT_ENABLED", true),
			rate:    env.GetString("RATELIMIT_RATE", "20-M"),
			store:   env.GetString("RATELIMIT_STORE", "memory"),
		},
	}

	logger := newLogger(cfg.env)
	defer logger.Sync()

	if envErr != nil {
		logger.Fatalw("failed to load environment file", "error", envErr)
	}

	if err := cfg.validate(); err != nil {
		logger.Fatalw("invalid configuration", "error", err)
	}

	publisher, err := newPublisher(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatalw("failed to create event publisher", "driver", cfg.events.driver, "error", err)
	}

	emitter := events.NewAsync(publisher, logger, cfg.events.publishTimeout)

	paymentService, err := payment.NewPayment("stripe", &payment.Config{
		Stripe: payment.StripeConfig{
			SecretKey:  cfg.stripe.secretKey,
			SuccessURL: cfg.stripe.successURL,
			CancelURL:  cfg.stripe.cancelURL,
		},
	})
	if err != nil {
		logger.Fatalw("failed to create payment service", "error", err)
	}

	app := &application{
		cfg:      cfg,
		logger:   logger,
		payment:  paymentService,
		verifier: webhook.NewVerifier(cfg.stripe.endpointSecret),
		relay:    webhook.NewRelay(emitter, logger),
		emitter:  emitter,
	}

	app.rateLimiter, err = app.newRateLimiter()
	if err != nil {
		logger.Fatalw("failed to create rate limiter", "error", err)
	}

	err = app.serve()

	if err != nil {
		log.Panic(err)
	}
}

func newLogger(environment string) *zap.SugaredLogger {
	if environment == "production" {
		return zap.Must(zap.NewProduction()).Sugar()
	}
	return zap.Must(zap.NewDevelopment()).Sugar()
}
