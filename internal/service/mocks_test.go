package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"tapcard/internal/errors"
	"tapcard/internal/model"
	"tapcard/internal/repository"
)

// MockCardBackend is a mock implementation of CardBackend.
type MockCardBackend struct {
	mock.Mock
}

func (m *MockCardBackend) GetCard(ctx context.Context, username string) (*model.Card, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Card), args.Error(1)
}

func (m *MockCardBackend) ActivateCard(ctx context.Context, token, cardID, redirectURL string) (string, error) {
	args := m.Called(ctx, token, cardID, redirectURL)
	return args.String(0), args.Error(1)
}

func (m *MockCardBackend) UpdateRedirect(ctx context.Context, token, redirectURL string) (string, error) {
	args := m.Called(ctx, token, redirectURL)
	return args.String(0), args.Error(1)
}

func (m *MockCardBackend) ListUserCards(ctx context.Context, token string) ([]model.Card, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Card), args.Error(1)
}

// MockOrderBackend is a mock implementation of OrderBackend.
type MockOrderBackend struct {
	mock.Mock
}

func (m *MockOrderBackend) ValidateDiscount(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockOrderBackend) CreateOrder(ctx context.Context, order model.Order) (*model.OrderConfirmation, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderConfirmation), args.Error(1)
}

// MockOrderLogRepository is a mock implementation of OrderLogRepository.
type MockOrderLogRepository struct {
	mock.Mock
}

func (m *MockOrderLogRepository) Create(ctx context.Context, log *model.OrderLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockOrderLogRepository) CreateBatch(ctx context.Context, logs []model.OrderLog) error {
	cp := append([]model.OrderLog(nil), logs...)
	args := m.Called(ctx, cp)
	return args.Error(0)
}

type fakeSession struct {
	authed  bool
	subject string
	token   string
}

func (s fakeSession) Authenticated() bool { return s.authed }
func (s fakeSession) Subject() string     { return s.subject }
func (s fakeSession) Token(context.Context) (string, error) {
	if !s.authed {
		return "", errors.ErrUnauthenticated
	}
	return s.token, nil
}

var (
	signedIn  = fakeSession{authed: true, subject: "user-1", token: "tok"}
	signedOut = fakeSession{}
)

type memCheckoutStore struct {
	mu     sync.Mutex
	states map[uuid.UUID]repository.CheckoutState
}

func newMemCheckoutStore() *memCheckoutStore {
	return &memCheckoutStore{states: make(map[uuid.UUID]repository.CheckoutState)}
}

func (s *memCheckoutStore) Load(_ context.Context, id uuid.UUID) (*repository.CheckoutState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

func (s *memCheckoutStore) Save(_ context.Context, state *repository.CheckoutState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.ID] = *state
	return nil
}

func (s *memCheckoutStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
	return nil
}
