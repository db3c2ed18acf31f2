package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCardID is returned when a card id fails the handle rules.
	ErrInvalidCardID = errors.New("card id must be at least 3 characters of letters, numbers, and underscores")
	// ErrInvalidRedirectURL is returned when a redirect is not an absolute URL.
	ErrInvalidRedirectURL = errors.New("redirect url must be a valid absolute url")
	// ErrRedirectRequired is returned for an empty redirect update.
	ErrRedirectRequired = errors.New("please enter a redirect url")
	// ErrUnauthenticated is returned when an operation needs a signed-in session.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrDiscountCodeRequired is returned for a blank discount code.
	ErrDiscountCodeRequired = errors.New("please enter a discount code")
	// ErrDiscountAlreadyApplied is returned when a second code is applied without removing the first.
	ErrDiscountAlreadyApplied = errors.New("a discount is already applied; remove it first")
	// ErrCheckoutNotFound is returned when a checkout session is missing or expired.
	ErrCheckoutNotFound = errors.New("checkout not found")
	// ErrUnknownZone is returned for a delivery zone outside the recognized set.
	ErrUnknownZone = errors.New("unknown delivery zone")
	// ErrRequestInFlight is returned when a submit arrives while the previous one is pending.
	ErrRequestInFlight = errors.New("a request is already in progress")
	// ErrBackendUnavailable is returned when the card backend cannot be reached.
	ErrBackendUnavailable = errors.New("service temporarily unavailable, please try again")
)

// RejectedError is a business failure reported by the card backend. Message
// is shown to the user as is.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var rejected *RejectedError
	switch {
	case errors.As(err, &rejected):
		return NewHTTPError(http.StatusUnprocessableEntity, rejected.Message, "REJECTED")
	case errors.Is(err, ErrInvalidCardID):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCardID.Error(), "INVALID_CARD_ID")
	case errors.Is(err, ErrInvalidRedirectURL):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidRedirectURL.Error(), "INVALID_REDIRECT_URL")
	case errors.Is(err, ErrRedirectRequired):
		return NewHTTPError(http.StatusBadRequest, ErrRedirectRequired.Error(), "REDIRECT_REQUIRED")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrDiscountCodeRequired):
		return NewHTTPError(http.StatusBadRequest, ErrDiscountCodeRequired.Error(), "DISCOUNT_CODE_REQUIRED")
	case errors.Is(err, ErrDiscountAlreadyApplied):
		return NewHTTPError(http.StatusConflict, ErrDiscountAlreadyApplied.Error(), "DISCOUNT_ALREADY_APPLIED")
	case errors.Is(err, ErrCheckoutNotFound):
		return NewHTTPError(http.StatusNotFound, ErrCheckoutNotFound.Error(), "CHECKOUT_NOT_FOUND")
	case errors.Is(err, ErrUnknownZone):
		return NewHTTPError(http.StatusBadRequest, ErrUnknownZone.Error(), "UNKNOWN_ZONE")
	case errors.Is(err, ErrRequestInFlight):
		return NewHTTPError(http.StatusConflict, ErrRequestInFlight.Error(), "REQUEST_IN_FLIGHT")
	case errors.Is(err, ErrBackendUnavailable):
		return NewHTTPError(http.StatusBadGateway, ErrBackendUnavailable.Error(), "BACKEND_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
