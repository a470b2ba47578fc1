package worker

import (
	"context"

	"github.com/hibiken/asynq"
)

// QueueCritical holds tasks the order service must see before anything else.
const QueueCritical = "critical"

type TaskDistributor interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close() error
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type RedisTaskDistributor struct {
	logger asynq.Logger
	client enqueuer
}

func NewTaskDistributor(redisOpt asynq.RedisClientOpt, logger asynq.Logger) TaskDistributor {
	client := asynq.NewClient(redisOpt)

	return &RedisTaskDistributor{
		logger: logger,
		client: client,
	}
}

func (rt *RedisTaskDistributor) Close() error {
	return rt.client.Close()
}
