package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tapcard/internal/auth"
	"tapcard/internal/backend"
	"tapcard/internal/model"
	"tapcard/internal/repository"
	"tapcard/internal/service"
)

const testSecret = "test-secret"

// stubBackend answers every backend call from its fields.
type stubBackend struct {
	mu        sync.Mutex
	cards     map[string]*model.Card
	activate  error
	update    error
	discount  error
	listErr   error
	order     *model.OrderConfirmation
	orderErr  error
	lastOrder model.Order
	calls     int
}

func (b *stubBackend) GetCard(_ context.Context, username string) (*model.Card, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if c, ok := b.cards[username]; ok {
		return c, nil
	}
	return nil, &backend.CallError{Outcome: backend.OutcomeNotFound, Status: http.StatusNotFound}
}

func (b *stubBackend) ActivateCard(context.Context, string, string, string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	return "", b.activate
}

func (b *stubBackend) UpdateRedirect(context.Context, string, string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	return "", b.update
}

func (b *stubBackend) ListUserCards(context.Context, string) ([]model.Card, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	return []model.Card{{Username: "ark001", IsActivated: true}}, nil
}

func (b *stubBackend) ValidateDiscount(context.Context, string) (string, error) {
	return "", b.discount
}

func (b *stubBackend) CreateOrder(_ context.Context, order model.Order) (*model.OrderConfirmation, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastOrder = order
	return b.order, b.orderErr
}

type memStore struct {
	mu     sync.Mutex
	states map[uuid.UUID]repository.CheckoutState
}

func (s *memStore) Load(_ context.Context, id uuid.UUID) (*repository.CheckoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *memStore) Save(_ context.Context, st *repository.CheckoutState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[st.ID] = *st
	return nil
}

func (s *memStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
	return nil
}

type echoValidator struct{ v *validator.Validate }

func (ev *echoValidator) Validate(i interface{}) error { return ev.v.Struct(i) }

type testServer struct {
	e       *echo.Echo
	backend *stubBackend
	jwt     *auth.JWTService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zap.NewNop()
	b := &stubBackend{cards: map[string]*model.Card{}}
	jwtService := auth.NewJWTService(testSecret)
	authn := auth.NewAuthenticator(jwtService, auth.NewTokenStore(nil), "https://id.example/login", log)
	validate := service.NewValidator()
	cv := service.NewCardValidator(validate)
	guard := service.NewInFlight()

	flow := service.NewCardFlowController(service.NewCardLookup(b, log), authn, "/dashboard", log)
	cards := NewCardHandler(
		service.NewCardActivator(b, cv, guard, 2*time.Second, "/dashboard", log),
		service.NewRedirectUpdater(b, cv, guard, log),
		service.NewDashboard(b),
	)
	checkout := NewCheckoutHandler(service.NewCheckoutService(
		&memStore{states: map[uuid.UUID]repository.CheckoutState{}},
		service.NewDiscountValidator(b, log),
		b,
		service.NewOrderRecorder(nil, log),
		validate,
		guard,
		"/payment/callback",
		log,
	))
	authH := NewAuthHandler(authn)

	e := echo.New()
	e.Validator = &echoValidator{v: validate}
	api := e.Group("/api", SessionMiddleware(authn))
	api.GET("/scan/:username", NewScanHandler(flow).Resolve)
	api.POST("/cards/activate", cards.Activate)
	api.PATCH("/cards/redirect", cards.UpdateRedirect)
	api.GET("/cards/mine", cards.MyCards)
	api.GET("/auth/login", authH.Login)
	api.POST("/auth/logout", authH.Logout)
	api.POST("/checkout", checkout.Start)
	api.GET("/checkout/:id/summary", checkout.Summary)
	api.POST("/checkout/:id/discount", checkout.ApplyDiscount)
	api.DELETE("/checkout/:id/discount", checkout.RemoveDiscount)
	api.POST("/checkout/:id/orders", checkout.PlaceOrder)

	return &testServer{e: e, backend: b, jwt: jwtService}
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	tok, err := s.jwt.GenerateAccessToken("user-1", "ada@example.com", time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}
