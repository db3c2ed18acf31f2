package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"tapcard/internal/backend"
	"tapcard/internal/errors"
)

func TestDiscountValidator_Apply(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		msg          string
		err          error
		wantAccepted bool
		wantMsg      string
		retryable    bool
	}{
		{"accepted", "FREE100", "", nil, true, "Discount applied", false},
		{"accepted with message", "FREE100", "Code applied!", nil, true, "Code applied!", false},
		{"rejected with reason", "OLD", "", &backend.CallError{Outcome: backend.OutcomeRejected, Message: "Code expired"}, false, "Code expired", false},
		{"rejected bare", "NOPE", "", &backend.CallError{Outcome: backend.OutcomeRejected}, false, "Invalid discount code", false},
		{"not found", "NOPE", "", &backend.CallError{Outcome: backend.OutcomeNotFound, Status: 404}, false, "Invalid discount code", false},
		{"unavailable", "FREE100", "", &backend.CallError{Outcome: backend.OutcomeUnavailable}, false, "Failed to verify discount code. Please try again.", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := new(MockOrderBackend)
			b.On("ValidateDiscount", mock.Anything, tt.code).Return(tt.msg, tt.err)

			res := NewDiscountValidator(b, zap.NewNop()).Apply(context.Background(), tt.code)

			assert.Equal(t, tt.wantAccepted, res.Accepted)
			assert.Equal(t, tt.wantMsg, res.Message)
			assert.Equal(t, tt.retryable, res.Retryable)
			assert.True(t, res.Amount.IsZero())
		})
	}
}

func TestDiscountValidator_BlankCodeSkipsBackend(t *testing.T) {
	b := new(MockOrderBackend)

	res := NewDiscountValidator(b, zap.NewNop()).Apply(context.Background(), "  ")

	assert.False(t, res.Accepted)
	assert.Equal(t, errors.ErrDiscountCodeRequired.Error(), res.Message)
	b.AssertNotCalled(t, "ValidateDiscount", mock.Anything, mock.Anything)
}
