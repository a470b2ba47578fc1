package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/devphaseX/buyr-payments/internal/payment"
)

const maxWebhookBodyBytes = int64(65536)

func (app *application) createPaymentSessionHandler(w http.ResponseWriter, r *http.Request) {
	var form payment.SessionRequest

	if err := app.readJSON(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := validate.Struct(form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	result, err := app.payment.CreatePaymentSession(r.Context(), &form)
	if err != nil {
		app.paymentProviderErrorResponse(w, r, err)
		return
	}

	app.logger.Infow("payment session created", "order_id", form.OrderID, "items", len(form.Items))
	app.successResponse(w, http.StatusOK, result)
}

func (app *application) paymentSuccessHandler(w http.ResponseWriter, r *http.Request) {
	app.successResponse(w, http.StatusOK, envelope{
		"ok":      true,
		"message": "Payment successful",
	})
}

func (app *application) paymentCancelHandler(w http.ResponseWriter, r *http.Request) {
	app.successResponse(w, http.StatusOK, envelope{
		"ok":      true,
		"message": "Payment cancelled",
	})
}

// stripeWebhookHandler answers 400 only when the event cannot be verified. Once verified the
// answer is always 200 so Stripe stops redelivering, whatever happened downstream.
func (app *application) stripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			app.webhookErrorResponse(w, r, err)
			return
		}
		app.serverErrorResponse(w, r, fmt.Errorf("failed to read webhook payload: %w", err))
		return
	}

	signature := r.Header.Get("Stripe-Signature")

	event, err := app.verifier.Verify(payload, signature)
	if err != nil {
		app.webhookErrorResponse(w, r, err)
		return
	}

	if err := app.relay.Dispatch(r.Context(), event); err != nil {
		app.logger.Errorw("failed to relay webhook event", "event_id", event.ID(), "type", event.Type(), "error", err)
	}

	if err := app.writeJSON(w, http.StatusOK, signature, nil); err != nil {
		app.logger.Errorw("failed to write webhook acknowledgement", "error", err)
	}
}

func (app *application) webhookErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("webhook verification failed", "method", r.Method, "path", r.URL.Path, "error", err)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Webhook Error: %s", err.Error())
}
