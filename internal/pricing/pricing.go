// Package pricing computes card order totals. Every total shown to a buyer
// and every amount charged goes through Quote so the two never disagree.
package pricing

import (
	"github.com/shopspring/decimal"

	"tapcard/internal/errors"
	"tapcard/internal/model"
)

// Currency of every amount produced here.
const Currency = "NGN"

var (
	// BasePrice is the price of one card before delivery.
	BasePrice = decimal.NewFromInt(25000)

	withinRegionFee  = decimal.NewFromInt(4500)
	outsideRegionFee = decimal.NewFromInt(7000)
)

// Summary is the itemized order price.
type Summary struct {
	Base     decimal.Decimal `json:"base_price"`
	Delivery decimal.Decimal `json:"delivery_fee"`
	Discount decimal.Decimal `json:"discount_amount"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// ComputeTotal returns base + delivery - discount, clamped at zero.
func ComputeTotal(basePrice, deliveryFee, discountAmount decimal.Decimal) decimal.Decimal {
	total := basePrice.Add(deliveryFee).Sub(discountAmount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// DeliveryFee returns the fixed fee for zone.
func DeliveryFee(zone model.DeliveryZone) (decimal.Decimal, error) {
	switch zone {
	case model.ZoneWithinRegion:
		return withinRegionFee, nil
	case model.ZoneOutsideRegion:
		return outsideRegionFee, nil
	default:
		return decimal.Zero, errors.ErrUnknownZone
	}
}

// FullDiscount is the amount an accepted code takes off: the whole order.
func FullDiscount(zone model.DeliveryZone) (decimal.Decimal, error) {
	fee, err := DeliveryFee(zone)
	if err != nil {
		return decimal.Zero, err
	}
	return BasePrice.Add(fee), nil
}

// Quote prices one card delivered to zone with an optional applied discount.
func Quote(zone model.DeliveryZone, discount *model.AppliedDiscount) (Summary, error) {
	fee, err := DeliveryFee(zone)
	if err != nil {
		return Summary{}, err
	}
	off := decimal.Zero
	if discount != nil {
		off = discount.Amount
	}
	return Summary{
		Base:     BasePrice,
		Delivery: fee,
		Discount: off,
		Total:    ComputeTotal(BasePrice, fee, off),
		Currency: Currency,
	}, nil
}
