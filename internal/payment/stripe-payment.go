package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
)

// SessionCreator is the slice of the Stripe checkout session API used here.
// *session.Client satisfies it.
type SessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// NewSessionClient returns a checkout session client bound to secretKey instead of the
// package level stripe.Key.
func NewSessionClient(secretKey string) *session.Client {
	return &session.Client{
		B:   stripe.GetBackend(stripe.APIBackend),
		Key: secretKey,
	}
}

type StripePayment struct {
	sessions   SessionCreator
	successURL string
	cancelURL  string
}

func NewStripePayment(sessions SessionCreator, successURL, cancelURL string) *StripePayment {
	return &StripePayment{
		sessions:   sessions,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

// MinorUnits converts a major unit price to minor units (cents), rounding half away from zero.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func BuildLineItems(currency string, items []LineItem) []*stripe.CheckoutSessionLineItemParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))

	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(MinorUnits(item.Price)),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	return lineItems
}

func (s *StripePayment) sessionParams(ctx context.Context, req *SessionRequest) *stripe.CheckoutSessionParams {
	params := &stripe.CheckoutSessionParams{
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				OrderIDMetadataKey: req.OrderID,
			},
		},
		LineItems:  BuildLineItems(req.Currency, req.Items),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}
	params.Context = ctx

	return params
}

func (s *StripePayment) CreatePaymentSession(ctx context.Context, req *SessionRequest) (*SessionResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrNoLineItems
	}

	for i, item := range req.Items {
		// written as a negation so NaN is rejected too
		if !(item.Price >= 0 && item.Price <= MaxPrice) {
			return nil, fmt.Errorf("items[%d]: %w", i, ErrPriceOutOfRange)
		}
	}

	session, err := s.sessions.New(s.sessionParams(ctx, req))
	if err != nil {
		return nil, fmt.Errorf("failed to create Stripe Checkout Session: %w", err)
	}

	return &SessionResult{
		CancelURL:  session.CancelURL,
		SuccessURL: session.SuccessURL,
		URL:        session.URL,
	}, nil
}
