package webhook

import (
	"context"
	"fmt"

	"github.com/devphaseX/buyr-payments/internal/events"
	"github.com/devphaseX/buyr-payments/internal/payment"
	"go.uber.org/zap"
)

// Relay forwards verified events to the internal event channel. It keeps no state and does
// not deduplicate redelivered events.
type Relay struct {
	publisher events.Publisher
	logger    *zap.SugaredLogger
}

func NewRelay(publisher events.Publisher, logger *zap.SugaredLogger) *Relay {
	return &Relay{
		publisher: publisher,
		logger:    logger,
	}
}

func (r *Relay) Dispatch(ctx context.Context, event Event) error {
	switch e := event.(type) {
	case ChargeSucceeded:
		return r.chargeSucceeded(ctx, e)

	default:
		r.logger.Infow("unhandled Stripe event type", "type", event.Type(), "event_id", event.ID())
		return nil
	}
}

func (r *Relay) chargeSucceeded(ctx context.Context, e ChargeSucceeded) error {
	orderID, ok := e.Metadata[payment.OrderIDMetadataKey]
	if !ok || orderID == "" {
		r.logger.Warnw("charge has no order id in metadata", "charge_id", e.ChargeID, "event_id", e.EventID)
	}

	payload := events.PaymentSucceeded{
		StripePaymentID: e.ChargeID,
		OrderID:         orderID,
		ReceiptURL:      e.ReceiptURL,
	}

	if err := r.publisher.Publish(ctx, events.TopicPaymentSucceeded, payload); err != nil {
		return fmt.Errorf("failed to emit %s: %w", events.TopicPaymentSucceeded, err)
	}

	r.logger.Infow("payment succeeded relayed", "charge_id", e.ChargeID, "order_id", orderID)
	return nil
}
