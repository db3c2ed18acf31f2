package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tapcard/internal/cache"
	"tapcard/internal/model"
)

const checkoutKeyPrefix = "checkout:"

// CheckoutState is the order form state of one buyer between page loads.
type CheckoutState struct {
	ID        uuid.UUID              `json:"id"`
	Zone      model.DeliveryZone     `json:"zone,omitempty"`
	Discount  *model.AppliedDiscount `json:"discount,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// CheckoutStore persists checkout state.
type CheckoutStore interface {
	Load(ctx context.Context, id uuid.UUID) (*CheckoutState, error)
	Save(ctx context.Context, state *CheckoutState) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type redisCheckoutStore struct {
	cache *cache.Client
	ttl   time.Duration
}

// NewCheckoutStore creates a Redis-backed checkout store. Entries expire
// ttl after their last save.
func NewCheckoutStore(cache *cache.Client, ttl time.Duration) CheckoutStore {
	return &redisCheckoutStore{cache: cache, ttl: ttl}
}

// Load returns the state for id, or nil when it is missing or expired.
func (s *redisCheckoutStore) Load(ctx context.Context, id uuid.UUID) (*CheckoutState, error) {
	data, err := s.cache.Get(ctx, checkoutKeyPrefix+id.String())
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	var state CheckoutState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal checkout state: %w", err)
	}
	return &state, nil
}

// Save stores state and refreshes its TTL.
func (s *redisCheckoutStore) Save(ctx context.Context, state *CheckoutState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal checkout state: %w", err)
	}
	return s.cache.Set(ctx, checkoutKeyPrefix+state.ID.String(), payload, s.ttl)
}

// Delete removes the state for id.
func (s *redisCheckoutStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.cache.Delete(ctx, checkoutKeyPrefix+id.String())
}
