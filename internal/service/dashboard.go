package service

import (
	"context"
	"fmt"
	"net/http"

	"tapcard/internal/auth"
	"tapcard/internal/backend"
	"tapcard/internal/errors"
	"tapcard/internal/model"
)

const cardsFallback = "Failed to load your cards. Please try again."

// Dashboard lists the signed-in owner's cards.
type Dashboard struct {
	backend CardBackend
}

// NewDashboard creates a new dashboard service.
func NewDashboard(backend CardBackend) *Dashboard {
	return &Dashboard{backend: backend}
}

// MyCards returns the session owner's cards. An owner without cards gets an
// empty list; a backend refusal is returned as *errors.RejectedError.
func (d *Dashboard) MyCards(ctx context.Context, session auth.Session) ([]model.Card, error) {
	token, err := session.Token(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := d.backend.ListUserCards(ctx, token)
	if err == nil {
		return cards, nil
	}
	ce, ok := backend.AsCallError(err)
	if !ok || ce.Outcome == backend.OutcomeUnavailable {
		return nil, fmt.Errorf("list cards: %w", errors.ErrBackendUnavailable)
	}
	if ce.Status == http.StatusUnauthorized || ce.Status == http.StatusForbidden {
		return nil, errors.ErrUnauthenticated
	}
	msg := ce.Message
	if ce.Outcome != backend.OutcomeRejected || msg == "" {
		msg = cardsFallback
	}
	return nil, fmt.Errorf("list cards: %w", &errors.RejectedError{Message: msg})
}
