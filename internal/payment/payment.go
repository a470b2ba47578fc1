package payment

import (
	"context"
	"errors"
)

var (
	ErrNoLineItems     = errors.New("payment session requires at least one line item")
	ErrPriceOutOfRange = errors.New("line item price is out of range")
)

// MaxPrice is the largest unit price Stripe accepts, 99999999 in minor units.
const MaxPrice = 999999.99

// OrderIDMetadataKey is the payment intent metadata key that links a processor charge back to
// its order. Webhook handling reads the same key.
const OrderIDMetadataKey = "orderId"

type LineItem struct {
	Name     string  `json:"name" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0,lte=999999.99"`
	Quantity int64   `json:"quantity" validate:"gt=0"`
}

type SessionRequest struct {
	Currency string     `json:"currency" validate:"required,len=3,alpha"`
	OrderID  string     `json:"orderId" validate:"required"`
	Items    []LineItem `json:"items" validate:"required,min=1,dive"`
}

type SessionResult struct {
	CancelURL  string `json:"cancelUrl"`
	SuccessURL string `json:"successUrl"`
	URL        string `json:"url"`
}

type Payment interface {
	CreatePaymentSession(ctx context.Context, req *SessionRequest) (*SessionResult, error)
}

type Config struct {
	Stripe StripeConfig
}

type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
}

func NewPayment(paymentMethod string, cfg *Config) (Payment, error) {
	switch paymentMethod {
	case "stripe":
		return NewStripePayment(NewSessionClient(cfg.Stripe.SecretKey), cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL), nil
	default:
		return nil, errors.New("invalid payment method")
	}
}
