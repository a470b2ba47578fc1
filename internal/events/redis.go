package events

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes on a redis pub/sub channel named after the topic.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload any) error {
	msg, err := NewMessage(topic, payload)
	if err != nil {
		return err
	}

	if err := p.client.Publish(ctx, msg.Topic, msg.Data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s to redis: %w", msg.Topic, err)
	}

	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
