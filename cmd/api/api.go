package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devphaseX/buyr-payments/internal/events"
	"github.com/devphaseX/buyr-payments/internal/payment"
	"github.com/devphaseX/buyr-payments/internal/webhook"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"go.uber.org/zap"
)

type application struct {
	cfg         config
	logger      *zap.SugaredLogger
	payment     payment.Payment
	verifier    *webhook.Verifier
	relay       *webhook.Relay
	emitter     *events.Async
	rateLimiter *stdlib.Middleware
}

type config struct {
	addr    string
	env     string
	version string

	stripe    stripeConfig
	events    eventsConfig
	redis     redisConfig
	cors      corsConfig
	rateLimit rateLimitConfig
}

type stripeConfig struct {
	secretKey      string
	endpointSecret string
	successURL     string
	cancelURL      string
}

type eventsConfig struct {
	driver         string
	publishTimeout time.Duration
	kafkaBrokers   []string
	snsTopicARN    string
}

type redisConfig struct {
	addr     string
	password string
	db       int
}

type corsConfig struct {
	allowedOrigins []string
}

type rateLimitConfig struct {
	enabled bool
	rate    string
	store   string
}

func (cfg config) validate() error {
	switch {
	case cfg.stripe.secretKey == "":
		return errors.New("STRIPE_SECRET_KEY is required")
	case cfg.stripe.endpointSecret == "":
		return errors.New("STRIPE_ENDPOINT_SECRET is required")
	case cfg.stripe.successURL == "" || cfg.stripe.cancelURL == "":
		return errors.New("STRIPE_SUCCESS_URL and STRIPE_CANCEL_URL are required")
	}
	return nil
}

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: app.cfg.cors.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.notFoundResponse(w, r)
	})
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)

		r.Route("/payments", func(r chi.Router) {
			r.With(app.rateLimit).Post("/create-payment-session", app.createPaymentSessionHandler)
			r.Get("/success", app.paymentSuccessHandler)
			r.Get("/cancel", app.paymentCancelHandler)
			r.Post("/webhook", app.stripeWebhookHandler)
		})
	})

	return r
}

func (app *application) serve() error {
	srv := &http.Server{
		Addr:    app.cfg.addr,
		Handler: app.routes(),
	}

	shutdownError := make(chan error)

	go func() {

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit

		app.logger.Infow("caught signal", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*20)
		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			shutdownError <- err
			return
		}

		app.logger.Infow("waiting for in-flight events", "addr", srv.Addr)
		shutdownError <- app.emitter.Close()
	}()

	app.logger.Infow("server has started", "addr", app.cfg.addr, "env", app.cfg.env, "events_driver", app.cfg.events.driver)
	err := srv.ListenAndServe()

	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.cfg.addr, "env", app.cfg.env)
	return nil
}
