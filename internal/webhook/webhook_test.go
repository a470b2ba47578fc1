package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/devphaseX/buyr-payments/internal/events"
	"github.com/devphaseX/buyr-payments/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "whsec_test_secret"

func eventBody(t *testing.T, eventType string, object map[string]any) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]any{
		"id":          "evt_test_1",
		"object":      "event",
		"api_version": stripe.APIVersion,
		"type":        eventType,
		"data":        map[string]any{"object": object},
	})
	require.NoError(t, err)
	return body
}

func sign(body []byte, secret string) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   body,
		Secret:    secret,
		Timestamp: time.Now(),
	})
	return signed.Header
}

var chargeObject = map[string]any{
	"id":          "ch_abc",
	"object":      "charge",
	"metadata":    map[string]string{"orderId": "order-123"},
	"receipt_url": "https://r",
	"amount":      2000,
	"unknown_key": "ignored",
}

type published struct {
	topic   string
	payload any
}

type fakePublisher struct {
	msgs []published
	err  error
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.msgs = append(f.msgs, published{topic: topic, payload: payload})
	return f.err
}

func testLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func TestVerifyChargeSucceeded(t *testing.T) {
	body := eventBody(t, "charge.succeeded", chargeObject)

	event, err := NewVerifier(testSecret).Verify(body, sign(body, testSecret))
	require.NoError(t, err)

	assert.Equal(t, ChargeSucceeded{
		EventID:    "evt_test_1",
		ChargeID:   "ch_abc",
		Metadata:   map[string]string{"orderId": "order-123"},
		ReceiptURL: "https://r",
	}, event)
}

func TestVerifyUnhandled(t *testing.T) {
	body := eventBody(t, "charge.failed", map[string]any{"id": "ch_x", "object": "charge"})

	event, err := NewVerifier(testSecret).Verify(body, sign(body, testSecret))
	require.NoError(t, err)

	assert.Equal(t, Unhandled{EventID: "evt_test_1", EventType: "charge.failed"}, event)
}

func TestVerifyRejects(t *testing.T) {
	body := eventBody(t, "charge.succeeded", chargeObject)
	verifier := NewVerifier(testSecret)

	cases := map[string]struct {
		body   []byte
		header string
	}{
		"wrong secret":     {body, sign(body, "whsec_other")},
		"missing header":   {body, ""},
		"tampered body":    {append([]byte(" "), body...), sign(body, testSecret)},
		"malformed header": {body, "not-a-signature"},
		"stale timestamp": {body, webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
			Payload:   body,
			Secret:    testSecret,
			Timestamp: time.Now().Add(-time.Hour),
		}).Header},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			event, err := verifier.Verify(tc.body, tc.header)
			assert.Nil(t, event)

			var verr *VerificationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Error())
		})
	}
}

func TestRelayChargeSucceeded(t *testing.T) {
	logger, _ := testLogger()
	pub := &fakePublisher{}

	err := NewRelay(pub, logger).Dispatch(context.Background(), ChargeSucceeded{
		EventID:    "evt_1",
		ChargeID:   "ch_abc",
		Metadata:   map[string]string{"orderId": "order-123"},
		ReceiptURL: "https://r",
	})
	require.NoError(t, err)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, events.TopicPaymentSucceeded, pub.msgs[0].topic)
	assert.Equal(t, events.PaymentSucceeded{
		StripePaymentID: "ch_abc",
		OrderID:         "order-123",
		ReceiptURL:      "https://r",
	}, pub.msgs[0].payload)
}

func TestRelayMissingOrderID(t *testing.T) {
	logger, logs := testLogger()
	pub := &fakePublisher{}

	err := NewRelay(pub, logger).Dispatch(context.Background(), ChargeSucceeded{ChargeID: "ch_abc"})
	require.NoError(t, err)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "", pub.msgs[0].payload.(events.PaymentSucceeded).OrderID)
	assert.Equal(t, 1, logs.FilterMessage("charge has no order id in metadata").Len())
}

func TestRelayUnhandled(t *testing.T) {
	logger, logs := testLogger()
	pub := &fakePublisher{}

	err := NewRelay(pub, logger).Dispatch(context.Background(), Unhandled{EventID: "evt_2", EventType: "charge.failed"})
	require.NoError(t, err)

	assert.Empty(t, pub.msgs)
	assert.Equal(t, 1, logs.FilterMessage("unhandled Stripe event type").Len())
}

func TestRelayPublishError(t *testing.T) {
	logger, _ := testLogger()
	brokerErr := errors.New("broker down")

	err := NewRelay(&fakePublisher{err: brokerErr}, logger).Dispatch(context.Background(), ChargeSucceeded{ChargeID: "ch_abc"})
	assert.ErrorIs(t, err, brokerErr)
}

type capturingSessions struct {
	params *stripe.CheckoutSessionParams
}

func (c *capturingSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	c.params = params
	return &stripe.CheckoutSession{URL: "https://checkout.test"}, nil
}

// The order id attached at session creation must come back out of the charge metadata.
func TestOrderIDRoundTrip(t *testing.T) {
	for _, orderID := range []string{"o1", "order-123", "01JABCDEF0123456789XYZ", "ünïcode/with spaces"} {
		sessions := &capturingSessions{}
		_, err := payment.NewStripePayment(sessions, "s", "c").CreatePaymentSession(context.Background(), &payment.SessionRequest{
			Currency: "usd",
			OrderID:  orderID,
			Items:    []payment.LineItem{{Name: "Widget", Price: 1, Quantity: 1}},
		})
		require.NoError(t, err)

		// Stripe copies payment_intent_data.metadata onto the resulting charge.
		body := eventBody(t, "charge.succeeded", map[string]any{
			"id":          "ch_rt",
			"object":      "charge",
			"metadata":    sessions.params.PaymentIntentData.Metadata,
			"receipt_url": "https://r",
		})

		event, err := NewVerifier(testSecret).Verify(body, sign(body, testSecret))
		require.NoError(t, err)

		logger, _ := testLogger()
		pub := &fakePublisher{}
		require.NoError(t, NewRelay(pub, logger).Dispatch(context.Background(), event))

		require.Len(t, pub.msgs, 1)
		assert.Equal(t, orderID, pub.msgs[0].payload.(events.PaymentSucceeded).OrderID)
	}
}
