package worker

import (
	"context"
	"fmt"

	"github.com/devphaseX/buyr-payments/internal/events"
	"github.com/hibiken/asynq"
)

// Publish enqueues payload as an asynq task whose type is the topic, so the order service
// consumes payment.succeeded as a task of that type. Each call gets a fresh task id, so
// redelivered webhooks produce separate tasks.
func (rt *RedisTaskDistributor) Publish(ctx context.Context, topic string, payload any) error {
	msg, err := events.NewMessage(topic, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	taskInfo, err := rt.client.EnqueueContext(ctx,
		asynq.NewTask(msg.Topic, msg.Data),
		asynq.Queue(QueueCritical),
		asynq.TaskID(msg.ID),
	)

	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", msg.Topic, err)
	}

	rt.logger.Info(fmt.Sprintf("enqueued task type=%s id=%s queue=%s max_retry=%d",
		taskInfo.Type, taskInfo.ID, taskInfo.Queue, taskInfo.MaxRetry))

	return nil
}
