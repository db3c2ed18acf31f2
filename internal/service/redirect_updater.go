package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"tapcard/internal/auth"
	"tapcard/internal/errors"
)

const (
	redirectUpdated  = "Redirect URL updated successfully!"
	redirectFallback = "Failed to update redirect URL. Please try again."
)

// RedirectUpdater changes the redirect of an activated card. The last
// submitted value wins.
type RedirectUpdater struct {
	backend   CardBackend
	validator *CardValidator
	guard     *InFlight
	log       *zap.Logger
}

// NewRedirectUpdater creates a new redirect updater.
func NewRedirectUpdater(backend CardBackend, validator *CardValidator, guard *InFlight, log *zap.Logger) *RedirectUpdater {
	return &RedirectUpdater{
		backend:   backend,
		validator: validator,
		guard:     guard,
		log:       log,
	}
}

// Update sends newURL to the backend. A blank value is a no-op rejection.
func (u *RedirectUpdater) Update(ctx context.Context, session auth.Session, newURL string) ActionResult {
	newURL = strings.TrimSpace(newURL)
	if newURL == "" {
		return invalid("redirect_url", errors.ErrRedirectRequired)
	}
	if err := u.validator.ValidateRedirectURL(newURL); err != nil {
		return invalid("redirect_url", err)
	}
	if !session.Authenticated() {
		return needsAuth()
	}

	release, err := u.guard.Acquire("redirect:" + session.Subject())
	if err != nil {
		return inFlight()
	}
	defer release()

	token, err := session.Token(ctx)
	if err != nil {
		return needsAuth()
	}

	msg, err := u.backend.UpdateRedirect(ctx, token, newURL)
	if err != nil {
		res := failure(err, redirectFallback)
		u.log.Info("redirect update declined", zap.String("code", res.Code), zap.Error(err))
		return res
	}
	if msg == "" {
		msg = redirectUpdated
	}
	return ActionResult{Success: true, Code: CodeOK, Message: msg}
}
