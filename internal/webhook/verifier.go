package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/webhook"
)

// VerificationError means the inbound request could not be trusted or could not be decoded.
// It is always answered with 400 and never processed further.
type VerificationError struct {
	Err error
}

func (e *VerificationError) Error() string {
	return e.Err.Error()
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

type Verifier struct {
	endpointSecret string
}

func NewVerifier(endpointSecret string) *Verifier {
	return &Verifier{endpointSecret: endpointSecret}
}

// Verify authenticates payload against the Stripe-Signature header and decodes it into an
// Event. payload must be the raw request body, byte for byte.
func (v *Verifier) Verify(payload []byte, signatureHeader string) (Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, v.endpointSecret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, &VerificationError{Err: err}
	}

	return decode(event)
}

func decode(event stripe.Event) (Event, error) {
	switch event.Type {
	case stripe.EventTypeChargeSucceeded:
		if event.Data == nil {
			return nil, &VerificationError{Err: fmt.Errorf("event %s has no data object", event.ID)}
		}

		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return nil, &VerificationError{Err: fmt.Errorf("failed to parse charge: %w", err)}
		}

		return ChargeSucceeded{
			EventID:    event.ID,
			ChargeID:   charge.ID,
			Metadata:   charge.Metadata,
			ReceiptURL: charge.ReceiptURL,
		}, nil

	default:
		return Unhandled{EventID: event.ID, EventType: event.Type}, nil
	}
}
