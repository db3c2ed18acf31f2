package model

import (
	"github.com/shopspring/decimal"
)

// DeliveryZone is the delivery pricing category of an order.
type DeliveryZone string

const (
	ZoneWithinRegion  DeliveryZone = "within-region"
	ZoneOutsideRegion DeliveryZone = "outside-region"
)

// Valid reports whether z is one of the recognized zones.
func (z DeliveryZone) Valid() bool {
	return z == ZoneWithinRegion || z == ZoneOutsideRegion
}

// AppliedDiscount is a discount code that the backend accepted.
type AppliedDiscount struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// Customer holds the buyer fields collected at checkout.
type Customer struct {
	Name     string `json:"name" validate:"required,min=2"`
	Username string `json:"username" validate:"required,card_handle"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10"`
	Address  string `json:"address" validate:"required,min=5"`
	City     string `json:"city" validate:"required,min=2"`
	State    string `json:"state" validate:"required,min=2"`
}

// Order is the payload submitted to the backend's order endpoint.
type Order struct {
	Customer
	DeliveryOption DeliveryZone    `json:"deliveryOption"`
	Currency       string          `json:"currency"`
	Amount         decimal.Decimal `json:"amount"`
	DeliveryFee    decimal.Decimal `json:"deliveryFee"`
	DiscountCode   string          `json:"discountCode"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
}

// OrderConfirmation is what the backend returns for a created order.
// PaymentURL is empty for a zero-cost order.
type OrderConfirmation struct {
	OrderID    string `json:"orderId,omitempty"`
	PaymentURL string `json:"paymentUrl,omitempty"`
	Status     string `json:"status,omitempty"`
}
