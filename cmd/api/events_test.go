package main

import (
	"context"
	"testing"

	"github.com/devphaseX/buyr-payments/internal/events"
	"github.com/devphaseX/buyr-payments/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewPublisher(t *testing.T) {
	logger := zap.NewNop().Sugar()
	base := config{
		redis:  redisConfig{addr: "localhost:6379"},
		events: eventsConfig{kafkaBrokers: []string{"localhost:9092"}},
	}

	cases := map[string]any{
		"asynq": (*worker.RedisTaskDistributor)(nil),
		"redis": (*events.RedisPublisher)(nil),
		"kafka": (*events.KafkaPublisher)(nil),
		"log":   (*events.LogPublisher)(nil),
	}

	for driver, want := range cases {
		t.Run(driver, func(t *testing.T) {
			cfg := base
			cfg.events.driver = driver

			pub, err := newPublisher(context.Background(), cfg, logger)
			require.NoError(t, err)
			assert.IsType(t, want, pub)

			if c, ok := pub.(events.Closer); ok {
				_ = c.Close()
			}
		})
	}

	t.Run("unknown", func(t *testing.T) {
		cfg := base
		cfg.events.driver = "carrier-pigeon"

		_, err := newPublisher(context.Background(), cfg, logger)
		assert.ErrorIs(t, err, events.ErrUnknownDriver)
	})

	t.Run("sns needs a topic", func(t *testing.T) {
		cfg := base
		cfg.events.driver = "sns"

		_, err := newPublisher(context.Background(), cfg, logger)
		assert.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	cfg := config{stripe: stripeConfig{
		secretKey:      "sk_test",
		endpointSecret: "whsec_test",
		successURL:     "https://shop.test/success",
		cancelURL:      "https://shop.test/cancel",
	}}
	require.NoError(t, cfg.validate())

	missingSecret := cfg
	missingSecret.stripe.endpointSecret = ""
	assert.ErrorContains(t, missingSecret.validate(), "STRIPE_ENDPOINT_SECRET")

	missingKey := cfg
	missingKey.stripe.secretKey = ""
	assert.ErrorContains(t, missingKey.validate(), "STRIPE_SECRET_KEY")
}
