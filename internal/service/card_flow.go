package service

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"tapcard/internal/auth"
	"tapcard/internal/metrics"
	"tapcard/internal/model"
)

// FlowState is where a scan lands.
type FlowState int

const (
	StateActivated FlowState = iota
	StateNotActivatedAuthed
	StateNotActivatedUnauthed
	StateNotFound
	StateFailed
)

func (s FlowState) String() string {
	switch s {
	case StateActivated:
		return "activated"
	case StateNotActivatedAuthed:
		return "not_activated_authed"
	case StateNotActivatedUnauthed:
		return "not_activated_unauthed"
	case StateNotFound:
		return "not_found"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("FlowState(%d)", int(s))
	}
}

// MarshalText renders the state by name.
func (s FlowState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

const (
	pathActivate     = "/activate"
	pathNotActivated = "/not-activated"
	pathScan         = "/scan/"

	scanFailedMessage = "We couldn't load this card right now. Please try again."
)

// ActivationPrefill seeds the activation form.
type ActivationPrefill struct {
	CardID      string `json:"card_id"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// Decision tells the page what to render after a scan.
type Decision struct {
	State        FlowState          `json:"state"`
	Card         *model.Card        `json:"card,omitempty"`
	CardNotFound bool               `json:"card_not_found"`
	NeedsAuth    bool               `json:"needs_auth"`
	LoginURL     string             `json:"login_url,omitempty"`
	Next         string             `json:"next,omitempty"`
	Prefill      *ActivationPrefill `json:"prefill,omitempty"`
	Retryable    bool               `json:"retryable,omitempty"`
	Message      string             `json:"message,omitempty"`
}

// LoginLinker builds the identity provider's sign-in link.
type LoginLinker interface {
	LoginURL(returnTo string) string
}

// Classify maps a lookup result and the session's auth state to a FlowState.
func Classify(res LookupResult, authenticated bool) FlowState {
	switch res.Kind {
	case LookupFound:
		if res.Card.IsActivated {
			return StateActivated
		}
		if authenticated {
			return StateNotActivatedAuthed
		}
		return StateNotActivatedUnauthed
	case LookupNotFound:
		return StateNotFound
	default:
		return StateFailed
	}
}

// CardFlowController resolves scans into decisions.
type CardFlowController struct {
	lookup        CardLookup
	login         LoginLinker
	dashboardPath string
	log           *zap.Logger
}

// NewCardFlowController creates the scan flow.
func NewCardFlowController(lookup CardLookup, login LoginLinker, dashboardPath string, log *zap.Logger) *CardFlowController {
	return &CardFlowController{
		lookup:        lookup,
		login:         login,
		dashboardPath: dashboardPath,
		log:           log,
	}
}

// Resolve runs one scan. The session is read once, before the lookup.
// Resolving the same username against unchanged backend state always
// yields the same state.
func (f *CardFlowController) Resolve(ctx context.Context, session auth.Session, username string) Decision {
	authenticated := session.Authenticated()
	res := f.lookup.Resolve(ctx, username)
	state := Classify(res, authenticated)

	var d Decision
	switch state {
	case StateActivated:
		d = f.activated(res.Card)
	case StateNotActivatedAuthed:
		d = f.notActivatedAuthed(res.Card)
	case StateNotActivatedUnauthed:
		d = f.notActivatedUnauthed(res.Card)
	case StateNotFound:
		d = f.notFound(username, authenticated)
	case StateFailed:
		d = f.failed(username, res.Detail)
	}
	d.State = state

	metrics.RecordScan(state.String())
	return d
}

func (f *CardFlowController) activated(card *model.Card) Decision {
	return Decision{Card: card, Next: f.dashboardPath}
}

func (f *CardFlowController) notActivatedAuthed(card *model.Card) Decision {
	return Decision{
		Card:    card,
		Next:    pathActivate,
		Prefill: prefillFor(card),
	}
}

func (f *CardFlowController) notActivatedUnauthed(card *model.Card) Decision {
	return Decision{
		Card:      card,
		NeedsAuth: true,
		LoginURL:  f.login.LoginURL(pathScan + url.PathEscape(card.Username)),
		Next:      pathNotActivated,
		Prefill:   prefillFor(card),
	}
}

func (f *CardFlowController) notFound(username string, authenticated bool) Decision {
	shell := model.PlaceholderCard(username)
	d := Decision{
		Card:         &shell,
		CardNotFound: true,
		NeedsAuth:    !authenticated,
		Next:         pathNotActivated,
		Prefill:      &ActivationPrefill{CardID: username},
	}
	if d.NeedsAuth {
		d.LoginURL = f.login.LoginURL(pathScan + url.PathEscape(username))
	}
	return d
}

func (f *CardFlowController) failed(username, detail string) Decision {
	f.log.Warn("scan resolution failed", zap.String("username", username), zap.String("detail", detail))
	return Decision{Retryable: true, Message: scanFailedMessage}
}

func prefillFor(card *model.Card) *ActivationPrefill {
	id := card.CardID
	if id == "" {
		id = card.Username
	}
	return &ActivationPrefill{CardID: id, RedirectURL: card.Redirect()}
}
