package service

import (
	stderrors "errors"
	"net/http"

	"tapcard/internal/backend"
	"tapcard/internal/errors"
)

// Result codes carried by ActionResult.
const (
	CodeOK              = "OK"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeRejected        = "REJECTED"
	CodeUnavailable     = "UNAVAILABLE"
	CodeInFlight        = "REQUEST_IN_FLIGHT"
)

// ActionResult is the tagged outcome of a card mutation.
type ActionResult struct {
	Success         bool   `json:"success"`
	Code            string `json:"code"`
	Message         string `json:"message"`
	Field           string `json:"field,omitempty"`
	NeedsAuth       bool   `json:"needs_auth,omitempty"`
	Retryable       bool   `json:"retryable,omitempty"`
	RedirectTo      string `json:"redirect_to,omitempty"`
	RedirectAfterMs int64  `json:"redirect_after_ms,omitempty"`
}

// HTTPStatus maps the result code to a response status.
func (r ActionResult) HTTPStatus() int {
	switch r.Code {
	case CodeOK:
		return http.StatusOK
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeRejected:
		return http.StatusUnprocessableEntity
	case CodeInFlight:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

func invalid(field string, err error) ActionResult {
	return ActionResult{Code: CodeValidation, Field: field, Message: err.Error()}
}

func needsAuth() ActionResult {
	return ActionResult{Code: CodeUnauthenticated, NeedsAuth: true, Message: errors.ErrUnauthenticated.Error()}
}

func inFlight() ActionResult {
	return ActionResult{Code: CodeInFlight, Message: errors.ErrRequestInFlight.Error()}
}

// failure turns a backend error into a result. Backend reasons are passed
// through verbatim; anything else gets fallback.
func failure(err error, fallback string) ActionResult {
	ce, ok := backend.AsCallError(err)
	if !ok {
		if stderrors.Is(err, errors.ErrUnauthenticated) {
			return needsAuth()
		}
		return ActionResult{Code: CodeUnavailable, Message: fallback, Retryable: true}
	}
	switch ce.Outcome {
	case backend.OutcomeRejected:
		msg := ce.Message
		if msg == "" {
			msg = fallback
		}
		return ActionResult{Code: CodeRejected, Message: msg}
	case backend.OutcomeNotFound:
		return ActionResult{Code: CodeRejected, Message: fallback}
	default:
		return ActionResult{Code: CodeUnavailable, Message: fallback, Retryable: true}
	}
}
