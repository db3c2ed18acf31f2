package service

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"tapcard/internal/errors"
)

var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,}$`)

// IsCardHandle reports whether s is a valid card id or username: at least
// three letters, digits or underscores.
func IsCardHandle(s string) bool {
	return handlePattern.MatchString(s)
}

// NewValidator returns a validator that also understands the card_handle tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("card_handle", func(fl validator.FieldLevel) bool {
		return IsCardHandle(fl.Field().String())
	})
	return v
}

// CardValidator checks activation and redirect input before anything is
// sent to the backend.
type CardValidator struct {
	v *validator.Validate
}

// NewCardValidator creates a new card validator.
func NewCardValidator(v *validator.Validate) *CardValidator {
	return &CardValidator{v: v}
}

// ValidateCardID checks the card id format.
func (cv *CardValidator) ValidateCardID(cardID string) error {
	if !IsCardHandle(cardID) {
		return errors.ErrInvalidCardID
	}
	return nil
}

// ValidateRedirectURL checks that raw is an absolute http(s) URL.
func (cv *CardValidator) ValidateRedirectURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return errors.ErrRedirectRequired
	}
	if err := cv.v.Var(raw, "http_url"); err != nil {
		return errors.ErrInvalidRedirectURL
	}
	return nil
}
