package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"tapcard/internal/backend"
	"tapcard/internal/model"
)

// LookupKind tags a LookupResult.
type LookupKind int

const (
	LookupFound LookupKind = iota
	LookupNotFound
	LookupServerError
)

func (k LookupKind) String() string {
	switch k {
	case LookupFound:
		return "found"
	case LookupNotFound:
		return "not_found"
	case LookupServerError:
		return "server_error"
	default:
		return "unknown"
	}
}

// LookupResult is the outcome of resolving a scanned username.
// Card is set only for LookupFound, Detail only for LookupServerError.
type LookupResult struct {
	Kind   LookupKind
	Card   *model.Card
	Detail string
}

// CardLookup resolves scanned usernames to cards.
type CardLookup interface {
	Resolve(ctx context.Context, username string) LookupResult
}

type cardLookup struct {
	backend CardBackend
	group   singleflight.Group
	log     *zap.Logger
}

// NewCardLookup creates a lookup over backend. Concurrent lookups of the
// same username share one backend request; a caller that gives up does not
// cancel it for the others.
func NewCardLookup(backend CardBackend, log *zap.Logger) CardLookup {
	return &cardLookup{backend: backend, log: log}
}

// Resolve classifies username. It never retries and never fails: every
// fault ends up as LookupServerError.
func (l *cardLookup) Resolve(ctx context.Context, username string) LookupResult {
	if strings.TrimSpace(username) == "" {
		return LookupResult{Kind: LookupNotFound}
	}

	// The shared fetch outlives any single caller; the client's own timeout
	// still bounds it.
	shared := context.WithoutCancel(ctx)
	ch := l.group.DoChan(username, func() (interface{}, error) {
		return l.fetch(shared, username), nil
	})
	select {
	case res := <-ch:
		return res.Val.(LookupResult)
	case <-ctx.Done():
		return LookupResult{Kind: LookupServerError, Detail: "canceled"}
	}
}

func (l *cardLookup) fetch(ctx context.Context, username string) LookupResult {
	card, err := l.backend.GetCard(ctx, username)
	if err == nil {
		return LookupResult{Kind: LookupFound, Card: card}
	}

	ce, ok := backend.AsCallError(err)
	if !ok {
		l.log.Error("card lookup failed", zap.String("username", username), zap.Error(err))
		return LookupResult{Kind: LookupServerError, Detail: "unexpected error"}
	}
	switch ce.Outcome {
	case backend.OutcomeRejected, backend.OutcomeNotFound:
		return LookupResult{Kind: LookupNotFound}
	default:
		return LookupResult{Kind: LookupServerError, Detail: ce.Detail}
	}
}
