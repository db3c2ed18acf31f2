package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"tapcard/internal/auth"
)

const (
	activationSucceeded = "Card activated successfully!"
	activationFallback  = "Failed to activate card. Please try again."
)

// CardActivator submits activations for unactivated cards.
type CardActivator struct {
	backend       CardBackend
	validator     *CardValidator
	guard         *InFlight
	confirmDelay  time.Duration
	dashboardPath string
	log           *zap.Logger
}

// NewCardActivator creates an activator. After a success the caller is sent
// to dashboardPath once confirmDelay has passed.
func NewCardActivator(backend CardBackend, validator *CardValidator, guard *InFlight, confirmDelay time.Duration, dashboardPath string, log *zap.Logger) *CardActivator {
	return &CardActivator{
		backend:       backend,
		validator:     validator,
		guard:         guard,
		confirmDelay:  confirmDelay,
		dashboardPath: dashboardPath,
		log:           log,
	}
}

// Activate binds cardID to redirectURL. Input is checked before the session,
// and the session before any request is sent. Success is reported only when
// the backend says so explicitly.
func (a *CardActivator) Activate(ctx context.Context, session auth.Session, cardID, redirectURL string) ActionResult {
	cardID = strings.TrimSpace(cardID)
	redirectURL = strings.TrimSpace(redirectURL)
	if err := a.validator.ValidateCardID(cardID); err != nil {
		return invalid("card_id", err)
	}
	if err := a.validator.ValidateRedirectURL(redirectURL); err != nil {
		return invalid("redirect_url", err)
	}
	if !session.Authenticated() {
		return needsAuth()
	}

	release, err := a.guard.Acquire("activate:" + session.Subject())
	if err != nil {
		return inFlight()
	}
	defer release()

	token, err := session.Token(ctx)
	if err != nil {
		return needsAuth()
	}

	msg, err := a.backend.ActivateCard(ctx, token, cardID, redirectURL)
	if err != nil {
		res := failure(err, activationFallback)
		a.log.Info("card activation declined",
			zap.String("card_id", cardID),
			zap.String("code", res.Code),
			zap.Error(err),
		)
		return res
	}

	a.log.Info("card activated", zap.String("card_id", cardID), zap.String("subject", session.Subject()))
	if msg == "" {
		msg = activationSucceeded
	}
	return ActionResult{
		Success:         true,
		Code:            CodeOK,
		Message:         msg,
		RedirectTo:      a.dashboardPath,
		RedirectAfterMs: a.confirmDelay.Milliseconds(),
	}
}
