package webhook

import "github.com/stripe/stripe-go/v81"

// Event is a verified processor event, narrowed to the kinds this service understands.
// The concrete types are ChargeSucceeded and Unhandled.
type Event interface {
	ID() string
	Type() stripe.EventType
	isEvent()
}

type ChargeSucceeded struct {
	EventID    string
	ChargeID   string
	Metadata   map[string]string
	ReceiptURL string
}

func (e ChargeSucceeded) ID() string             { return e.EventID }
func (e ChargeSucceeded) Type() stripe.EventType { return stripe.EventTypeChargeSucceeded }
func (ChargeSucceeded) isEvent()                 {}

// Unhandled covers every event type without a dedicated variant.
type Unhandled struct {
	EventID   string
	EventType stripe.EventType
}

func (e Unhandled) ID() string             { return e.EventID }
func (e Unhandled) Type() stripe.EventType { return e.EventType }
func (Unhandled) isEvent()                 {}
