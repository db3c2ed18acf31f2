package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderLogStatus represents the result of an order submission.
type OrderLogStatus string

const (
	OrderLogStatusSubmitted OrderLogStatus = "submitted"
	OrderLogStatusFree      OrderLogStatus = "free"
	OrderLogStatusRejected  OrderLogStatus = "rejected"
	OrderLogStatusFailed    OrderLogStatus = "failed"
)

// OrderLog records every order submission the service forwarded to the
// backend, regardless of outcome. It never stores card state.
type OrderLog struct {
	ID             uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	CheckoutID     uuid.UUID       `json:"checkout_id" gorm:"type:char(36);not null;index"`
	Email          string          `json:"email" gorm:"size:255;not null"`
	Username       string          `json:"username" gorm:"size:64;not null;index"`
	DeliveryZone   DeliveryZone    `json:"delivery_zone" gorm:"type:varchar(20);not null"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	DiscountCode   string          `json:"discount_code,omitempty" gorm:"size:64"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:decimal(20,2);not null;default:0"`
	Status         OrderLogStatus  `json:"status" gorm:"type:varchar(20);not null;index"`
	BackendOrderID string          `json:"backend_order_id,omitempty" gorm:"size:64"`
	ErrorMessage   string          `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`
}

// BeforeCreate sets UUID before creating the record.
func (l *OrderLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
