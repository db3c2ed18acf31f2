package auth

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"tapcard/internal/errors"
)

// Session is the identity capability a flow reads once at its start.
// Token is fetched immediately before each authenticated backend call.
type Session interface {
	Authenticated() bool
	Subject() string
	Token(ctx context.Context) (string, error)
}

// Anonymous is the session of a request without a usable bearer.
type Anonymous struct{}

func (Anonymous) Authenticated() bool { return false }
func (Anonymous) Subject() string     { return "" }
func (Anonymous) Token(context.Context) (string, error) {
	return "", errors.ErrUnauthenticated
}

// BearerSession wraps a validated provider token.
type BearerSession struct {
	raw    string
	claims *Claims
	now    func() time.Time
}

// Authenticated reports whether the token is still within its lifetime.
func (s *BearerSession) Authenticated() bool {
	if s.claims.ExpiresAt == nil {
		return true
	}
	return s.now().Before(s.claims.ExpiresAt.Time)
}

// Subject returns the provider's user id. Tokens without one are keyed by
// their token id so distinct sessions never share a subject.
func (s *BearerSession) Subject() string {
	if s.claims.Subject != "" {
		return s.claims.Subject
	}
	return "jti:" + s.claims.ID
}

// Token returns the bearer, or ErrUnauthenticated once it has expired.
func (s *BearerSession) Token(context.Context) (string, error) {
	if !s.Authenticated() {
		return "", errors.ErrUnauthenticated
	}
	return s.raw, nil
}

// Authenticator turns Authorization headers into sessions and signs them out.
type Authenticator struct {
	jwt      *JWTService
	revoked  RevocationStore
	loginURL string
	log      *zap.Logger
	now      func() time.Time
}

// NewAuthenticator creates an authenticator for the identity provider.
func NewAuthenticator(jwtService *JWTService, revoked RevocationStore, loginURL string, log *zap.Logger) *Authenticator {
	return &Authenticator{
		jwt:      jwtService,
		revoked:  revoked,
		loginURL: loginURL,
		log:      log,
		now:      time.Now,
	}
}

// SessionFromHeader returns the session for an Authorization header value.
// Anything that does not verify yields Anonymous.
func (a *Authenticator) SessionFromHeader(ctx context.Context, header string) Session {
	raw, ok := bearerToken(header)
	if !ok {
		return Anonymous{}
	}
	claims, err := a.jwt.ValidateToken(raw)
	if err != nil {
		a.log.Debug("rejecting bearer", zap.Error(err))
		return Anonymous{}
	}
	if claims.Subject == "" && claims.ID == "" {
		a.log.Debug("rejecting bearer without subject or token id")
		return Anonymous{}
	}
	if claims.ID != "" {
		revoked, err := a.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			// fail open: the provider remains the authority on the token
			a.log.Warn("revocation lookup failed", zap.Error(err))
		}
		if revoked {
			return Anonymous{}
		}
	}
	return &BearerSession{raw: raw, claims: claims, now: a.now}
}

// Logout revokes the session's token locally until it expires.
func (a *Authenticator) Logout(ctx context.Context, s Session) error {
	bs, ok := s.(*BearerSession)
	if !ok || !bs.Authenticated() {
		return errors.ErrUnauthenticated
	}
	if bs.claims.ID == "" || bs.claims.ExpiresAt == nil {
		return nil
	}
	return a.revoked.Revoke(ctx, bs.claims.ID, bs.claims.ExpiresAt.Time.Sub(a.now()))
}

// LoginURL returns the provider's sign-in page, returning to returnTo afterwards.
func (a *Authenticator) LoginURL(returnTo string) string {
	if returnTo == "" {
		return a.loginURL
	}
	sep := "?"
	if strings.Contains(a.loginURL, "?") {
		sep = "&"
	}
	return a.loginURL + sep + "return_to=" + url.QueryEscape(returnTo)
}

func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}
