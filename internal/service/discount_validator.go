package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tapcard/internal/backend"
	"tapcard/internal/errors"
)

const (
	discountInvalid  = "Invalid discount code"
	discountRetry    = "Failed to verify discount code. Please try again."
	discountApplied  = "Discount applied"
)

// DiscountResult is the outcome of checking a code. Amount is zero here;
// the checkout fills it in for accepted codes.
type DiscountResult struct {
	Accepted  bool            `json:"accepted"`
	Amount    decimal.Decimal `json:"amount"`
	Message   string          `json:"message"`
	Retryable bool            `json:"retryable,omitempty"`
}

// DiscountValidator checks codes against the backend.
type DiscountValidator struct {
	backend OrderBackend
	log     *zap.Logger
}

// NewDiscountValidator creates a new discount validator.
func NewDiscountValidator(backend OrderBackend, log *zap.Logger) *DiscountValidator {
	return &DiscountValidator{backend: backend, log: log}
}

// Apply verifies code. It never returns an error: every failure is folded
// into a rejected result.
func (v *DiscountValidator) Apply(ctx context.Context, code string) DiscountResult {
	code = strings.TrimSpace(code)
	if code == "" {
		return DiscountResult{Message: errors.ErrDiscountCodeRequired.Error()}
	}

	msg, err := v.backend.ValidateDiscount(ctx, code)
	if err == nil {
		if msg == "" {
			msg = discountApplied
		}
		return DiscountResult{Accepted: true, Message: msg}
	}

	ce, ok := backend.AsCallError(err)
	if ok && ce.Outcome == backend.OutcomeRejected {
		if ce.Message != "" {
			return DiscountResult{Message: ce.Message}
		}
		return DiscountResult{Message: discountInvalid}
	}
	if ok && ce.Outcome == backend.OutcomeNotFound {
		return DiscountResult{Message: discountInvalid}
	}

	v.log.Warn("discount verification failed", zap.Error(err))
	return DiscountResult{Message: discountRetry, Retryable: true}
}
