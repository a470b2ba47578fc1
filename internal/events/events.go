package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const TopicPaymentSucceeded = "payment.succeeded"

var ErrUnknownDriver = errors.New("unknown events driver")

// PaymentSucceeded is emitted once per verified charge.succeeded webhook. Delivery of the same
// charge may repeat when the processor redelivers, so consumers must tolerate duplicates.
type PaymentSucceeded struct {
	StripePaymentID string `json:"stripePaymentId"`
	OrderID         string `json:"orderId"`
	ReceiptURL      string `json:"receiptUrl"`
}

// Key partitions kafka messages by order.
func (e PaymentSucceeded) Key() string {
	return e.OrderID
}

type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Closer is implemented by publishers that hold connections.
type Closer interface {
	Close() error
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, topic string, payload any) error

func (f PublisherFunc) Publish(ctx context.Context, topic string, payload any) error {
	return f(ctx, topic, payload)
}

type keyer interface {
	Key() string
}

// Message is the transport-neutral form of one emission. ID never appears in Data.
type Message struct {
	ID    string
	Topic string
	Key   string
	Data  []byte
}

func NewMessage(topic string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := &Message{
		ID:    NewMessageID(),
		Topic: topic,
		Data:  data,
	}

	if k, ok := payload.(keyer); ok {
		msg.Key = k.Key()
	}

	return msg, nil
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

func NewMessageID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
