package service

import (
	"context"

	"tapcard/internal/model"
)

// CardBackend is the part of the remote backend that owns cards.
type CardBackend interface {
	GetCard(ctx context.Context, username string) (*model.Card, error)
	ActivateCard(ctx context.Context, token, cardID, redirectURL string) (string, error)
	UpdateRedirect(ctx context.Context, token, redirectURL string) (string, error)
	ListUserCards(ctx context.Context, token string) ([]model.Card, error)
}

// OrderBackend is the part of the remote backend that takes orders.
type OrderBackend interface {
	ValidateDiscount(ctx context.Context, code string) (string, error)
	CreateOrder(ctx context.Context, order model.Order) (*model.OrderConfirmation, error)
}
