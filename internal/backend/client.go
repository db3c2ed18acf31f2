// Package backend talks to the remote card-and-order service over HTTP and
// classifies every response into an Outcome. Nothing but *CallError escapes
// a failed call.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tapcard/internal/config"
	"tapcard/internal/metrics"
	"tapcard/internal/model"
)

const maxBodyBytes = 1 << 20

var errMissingData = errors.New("missing data")

// Outcome classifies a backend exchange.
type Outcome int

const (
	// OutcomeOK means the backend accepted the request.
	OutcomeOK Outcome = iota
	// OutcomeRejected is a business failure: the backend answered with a
	// readable body that declines the operation.
	OutcomeRejected
	// OutcomeNotFound is a 4xx without a usable body.
	OutcomeNotFound
	// OutcomeUnavailable covers 5xx, transport failures, timeouts and
	// malformed responses.
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// CallError describes a failed backend call.
type CallError struct {
	Op      string
	Outcome Outcome
	Status  int
	// Message is the backend-supplied reason, set only for OutcomeRejected.
	Message string
	// Detail names the failure class for diagnostics.
	Detail string
	Err    error
}

func (e *CallError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Outcome, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Outcome, e.Detail)
}

func (e *CallError) Unwrap() error { return e.Err }

// AsCallError extracts a *CallError from err.
func AsCallError(err error) (*CallError, bool) {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// envelope is the {success, message, data} shape of the card endpoints.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client is an HTTP client for the card backend.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewClient creates a backend client. Every call is capped by cfg.Timeout.
func NewClient(cfg config.BackendConfig, log *zap.Logger) *Client {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		log:     log,
	}
}

// GetCard fetches the card registered under username.
func (c *Client) GetCard(ctx context.Context, username string) (*model.Card, error) {
	var card model.Card
	err := c.do(ctx, "get_card", http.MethodGet, "/api/card/"+url.PathEscape(username), "", nil, func(body []byte) error {
		env, err := decodeEnvelope(body)
		if err != nil {
			return err
		}
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return errMissingData
		}
		return json.Unmarshal(env.Data, &card)
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// ActivateCard binds cardID to redirectURL for the bearer's account.
func (c *Client) ActivateCard(ctx context.Context, token, cardID, redirectURL string) (string, error) {
	payload := map[string]string{"card_id": cardID, "redirect_url": redirectURL}
	return c.doMessage(ctx, "activate_card", http.MethodPost, "/api/card/activate", token, payload)
}

// UpdateRedirect replaces the redirect URL of the bearer's card.
func (c *Client) UpdateRedirect(ctx context.Context, token, redirectURL string) (string, error) {
	payload := map[string]string{"redirect_url": redirectURL}
	return c.doMessage(ctx, "update_redirect", http.MethodPatch, "/api/card/update", token, payload)
}

// ValidateDiscount asks the backend whether code is redeemable.
// An accepted code returns the backend message and a nil error.
func (c *Client) ValidateDiscount(ctx context.Context, code string) (string, error) {
	payload := map[string]string{"code": code}
	return c.doMessage(ctx, "validate_discount", http.MethodPost, "/api/discounts/validate", "", payload)
}

// ListUserCards returns the cards owned by the bearer.
func (c *Client) ListUserCards(ctx context.Context, token string) ([]model.Card, error) {
	cards := []model.Card{}
	err := c.do(ctx, "list_user_cards", http.MethodGet, "/api/card/user/cards", token, nil, func(body []byte) error {
		env, err := decodeEnvelope(body)
		if err != nil {
			return err
		}
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return nil
		}
		return json.Unmarshal(env.Data, &cards)
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// CreateOrder submits order and returns either a payment URL or a
// confirmation of a zero-cost order.
func (c *Client) CreateOrder(ctx context.Context, order model.Order) (*model.OrderConfirmation, error) {
	var conf model.OrderConfirmation
	err := c.do(ctx, "create_order", http.MethodPost, "/api/orders", "", order, func(body []byte) error {
		return json.Unmarshal(body, &conf)
	})
	if err != nil {
		return nil, err
	}
	return &conf, nil
}

func (c *Client) doMessage(ctx context.Context, op, method, path, token string, payload any) (string, error) {
	var message string
	err := c.do(ctx, op, method, path, token, payload, func(body []byte) error {
		env, err := decodeEnvelope(body)
		if err != nil {
			return err
		}
		message = env.Message
		return nil
	})
	return message, err
}

// do performs one exchange and hands the body of a 2xx response to decode.
// Decode failures other than a rejection are reported as malformed.
func (c *Client) do(ctx context.Context, op, method, path, token string, payload any, decode func([]byte) error) error {
	start := time.Now()
	body, err := c.exchange(ctx, op, method, path, token, payload)
	if err == nil {
		if decodeErr := decode(body); decodeErr != nil {
			if ce, ok := AsCallError(decodeErr); ok {
				ce.Op = op
				err = ce
			} else {
				err = &CallError{Op: op, Outcome: OutcomeUnavailable, Status: http.StatusOK, Detail: "malformed response", Err: decodeErr}
			}
		}
	}

	outcome := OutcomeOK
	if ce, ok := AsCallError(err); ok {
		outcome = ce.Outcome
		fields := []zap.Field{
			zap.String("op", op),
			zap.String("outcome", ce.Outcome.String()),
			zap.Int("status", ce.Status),
			zap.String("detail", ce.Detail),
		}
		if ce.Outcome == OutcomeUnavailable {
			c.log.Warn("backend call failed", append(fields, zap.Error(ce.Err))...)
		} else {
			c.log.Debug("backend call declined", fields...)
		}
	}
	metrics.RecordBackendCall(op, outcome.String(), time.Since(start).Seconds())
	return err
}

func (c *Client) exchange(ctx context.Context, op, method, path, token string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &CallError{Op: op, Outcome: OutcomeUnavailable, Detail: "rate limited", Err: err}
	}

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, &CallError{Op: op, Outcome: OutcomeUnavailable, Detail: "bad request", Err: err}
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &CallError{Op: op, Outcome: OutcomeUnavailable, Detail: "bad request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &CallError{Op: op, Outcome: OutcomeUnavailable, Detail: transportDetail(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &CallError{Op: op, Outcome: OutcomeUnavailable, Status: resp.StatusCode, Detail: transportDetail(err), Err: err}
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &CallError{
			Op:      op,
			Outcome: OutcomeUnavailable,
			Status:  resp.StatusCode,
			Detail:  fmt.Sprintf("status %d", resp.StatusCode),
		}
	case resp.StatusCode >= http.StatusBadRequest:
		var env envelope
		if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &env) == nil {
			return nil, &CallError{
				Op:      op,
				Outcome: OutcomeRejected,
				Status:  resp.StatusCode,
				Message: env.Message,
				Detail:  fmt.Sprintf("status %d", resp.StatusCode),
			}
		}
		return nil, &CallError{
			Op:      op,
			Outcome: OutcomeNotFound,
			Status:  resp.StatusCode,
			Detail:  fmt.Sprintf("status %d", resp.StatusCode),
		}
	}
	return body, nil
}

// decodeEnvelope parses a 2xx card response. success:false is a rejection.
func decodeEnvelope(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, &CallError{
			Outcome: OutcomeRejected,
			Status:  http.StatusOK,
			Message: env.Message,
			Detail:  "success=false",
		}
	}
	return &env, nil
}

// transportDetail names the class of a transport failure.
func transportDetail(err error) string {
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &dnsErr):
		return "dns"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "connection"
	}
}
