package main

import (
	"context"
	"fmt"

	"github.com/devphaseX/buyr-payments/internal/events"
	"github.com/devphaseX/buyr-payments/worker"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newPublisher(ctx context.Context, cfg config, logger *zap.SugaredLogger) (events.Publisher, error) {
	switch cfg.events.driver {
	case "asynq":
		return worker.NewTaskDistributor(asynq.RedisClientOpt{
			Addr:     cfg.redis.addr,
			Password: cfg.redis.password,
			DB:       cfg.redis.db,
		}, worker.NewLogger(logger)), nil

	case "redis":
		return events.NewRedisPublisher(redis.NewClient(&redis.Options{
			Addr:     cfg.redis.addr,
			Password: cfg.redis.password,
			DB:       cfg.redis.db,
		})), nil

	case "kafka":
		return events.NewKafkaPublisher(cfg.events.kafkaBrokers), nil

	case "sns":
		return events.NewSNSPublisher(ctx, cfg.events.snsTopicARN)

	case "log":
		return events.NewLogPublisher(logger), nil

	default:
		return nil, fmt.Errorf("%w: %q", events.ErrUnknownDriver, cfg.events.driver)
	}
}
