package main

import (
	"errors"
	"net/http"

	"github.com/devphaseX/buyr-payments/internal/validator"
	"github.com/stripe/stripe-go/v81"
)

type ResponseErrorCode string

const (
	ErrorCodeBadRequest          ResponseErrorCode = "bad_request"
	ErrorCodeNotFound            ResponseErrorCode = "not_found"
	ErrorCodeMethodNotAllowed    ResponseErrorCode = "method_not_allowed"
	ErrorTooManyRequest          ResponseErrorCode = "too_many_requests"
	ErrorCodePaymentProvider     ResponseErrorCode = "payment_provider_error"
	ErrorCodeInternalServerError ResponseErrorCode = "internal_server_error"
)

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request error", "method", r.Method, "path", r.URL.Path, "error", err)

	var validationErrors *validator.ValidationErrors

	if errors.As(err, &validationErrors) {
		app.errorResponse(w, http.StatusBadRequest, validationErrors.FieldErrors(), envelope{"code": ErrorCodeBadRequest})
		return
	}
	app.errorResponse(w, http.StatusBadRequest, err.Error(), envelope{"code": ErrorCodeBadRequest})
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)

	message := "rate limit exceeded"
	app.errorResponse(w, http.StatusTooManyRequests, message, envelope{"code": ErrorTooManyRequest})
}

// paymentProviderErrorResponse reports a failed processor call. Requests Stripe rejected as
// invalid are the caller's fault, everything else is reported as a bad gateway.
func (app *application) paymentProviderErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var stripeErr *stripe.Error

	if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeInvalidRequest {
		app.logger.Warnw("payment provider rejected request", "method", r.Method, "path", r.URL.Path, "error", err)
		app.errorResponse(w, http.StatusBadRequest, stripeErr.Msg, envelope{"code": ErrorCodeBadRequest})
		return
	}

	app.logger.Errorw("payment provider error", "method", r.Method, "path", r.URL.Path, "error", err)

	message := "the payment provider could not process your request"
	app.errorResponse(w, http.StatusBadGateway, message, envelope{"code": ErrorCodePaymentProvider})
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal server error", "method", r.Method, "path", r.URL.Path, "error", err)

	message := "the server encountered a problem and could not process your request"
	app.errorResponse(w, http.StatusInternalServerError, message, envelope{"code": ErrorCodeInternalServerError})
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, details ...string) {
	message := "the requested resource could not be found"
	if len(details) > 0 && details[0] != "" {
		message = details[0]
	}

	app.errorResponse(w, http.StatusNotFound, message, envelope{"code": ErrorCodeNotFound})
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, http.StatusMethodNotAllowed, message, envelope{"code": ErrorCodeMethodNotAllowed})
}

func (app *application) errorResponse(w http.ResponseWriter, status int, message any, info ...envelope) {
	error := envelope{
		"message": message,
	}

	env := envelope{
		"status": "error",
		"error":  error,
	}

	if len(info) == 1 && len(info[0]) > 0 {
		for key, value := range info[0] {
			error[key] = value
		}
	}

	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logger.Errorw("failed to write JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) successResponse(w http.ResponseWriter, status int, data any) {
	env := envelope{
		"status": "success",
		"data":   data,
	}

	err := app.writeJSON(w, status, env, nil)
	if err != nil {
		app.logger.Errorw("failed to write JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
