package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Async makes emission fire-and-forget: Publish hands the payload to a tracked goroutine and
// returns nil straight away. Failures are logged, never returned.
type Async struct {
	next    Publisher
	logger  *zap.SugaredLogger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsync(next Publisher, logger *zap.SugaredLogger, timeout time.Duration) *Async {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Async{
		next:    next,
		logger:  logger,
		timeout: timeout,
	}
}

func (a *Async) Publish(ctx context.Context, topic string, payload any) error {
	// The request context ends with the response, emission must outlive it.
	ctx = context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				a.logger.Errorw("panic while publishing event", "topic", topic, "error", fmt.Sprint(err))
			}
		}()

		ctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()

		if err := a.next.Publish(ctx, topic, payload); err != nil {
			a.logger.Errorw("failed to publish event", "topic", topic, "error", err)
			return
		}

		a.logger.Debugw("published event", "topic", topic)
	}()

	return nil
}

// Wait blocks until every in-flight emission has finished.
func (a *Async) Wait() {
	a.wg.Wait()
}

// Close drains in-flight emissions, then closes the wrapped publisher if it holds resources.
func (a *Async) Close() error {
	a.Wait()

	if c, ok := a.next.(Closer); ok {
		return c.Close()
	}
	return nil
}
