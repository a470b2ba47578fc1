package events

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher only writes events to the log. Meant for local development.
type LogPublisher struct {
	logger *zap.SugaredLogger
}

func NewLogPublisher(logger *zap.SugaredLogger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, topic string, payload any) error {
	msg, err := NewMessage(topic, payload)
	if err != nil {
		return err
	}

	p.logger.Infow("event emitted", "topic", msg.Topic, "message_id", msg.ID, "payload", string(msg.Data))
	return nil
}
