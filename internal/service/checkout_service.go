package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tapcard/internal/backend"
	"tapcard/internal/errors"
	"tapcard/internal/model"
	"tapcard/internal/pricing"
	"tapcard/internal/repository"
)

const (
	orderFallback    = "Failed to process order. Please try again."
	orderFreeMessage = "Order confirmed"
)

// OrderRequest is the checkout form submission.
type OrderRequest struct {
	model.Customer
	DeliveryOption model.DeliveryZone `json:"deliveryOption" validate:"required,oneof=within-region outside-region"`
}

// OrderOutcome is the tagged result of placing an order. A paid order
// carries PaymentURL; a zero-cost order has Free set and ReturnPath.
type OrderOutcome struct {
	Success    bool                     `json:"success"`
	Code       string                   `json:"code"`
	Message    string                   `json:"message,omitempty"`
	Free       bool                     `json:"free,omitempty"`
	PaymentURL string                   `json:"payment_url,omitempty"`
	ReturnPath string                   `json:"return_path,omitempty"`
	Order      *model.OrderConfirmation `json:"order,omitempty"`
	Summary    pricing.Summary          `json:"summary"`
	Retryable  bool                     `json:"retryable,omitempty"`
}

// DiscountOutcome is the result of applying a code together with the
// updated price.
type DiscountOutcome struct {
	DiscountResult
	Summary pricing.Summary `json:"summary"`
}

// CheckoutService keeps checkout state and places orders.
type CheckoutService struct {
	store      repository.CheckoutStore
	discounts  *DiscountValidator
	orders     OrderBackend
	recorder   *OrderRecorder
	validate   *validator.Validate
	guard      *InFlight
	returnPath string
	log        *zap.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	store repository.CheckoutStore,
	discounts *DiscountValidator,
	orders OrderBackend,
	recorder *OrderRecorder,
	validate *validator.Validate,
	guard *InFlight,
	returnPath string,
	log *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		store:      store,
		discounts:  discounts,
		orders:     orders,
		recorder:   recorder,
		validate:   validate,
		guard:      guard,
		returnPath: returnPath,
		log:        log,
	}
}

// Start opens a new checkout.
func (s *CheckoutService) Start(ctx context.Context) (*repository.CheckoutState, error) {
	state := &repository.CheckoutState{ID: uuid.New(), CreatedAt: time.Now().UTC()}
	if err := s.store.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("save checkout: %w", err)
	}
	return state, nil
}

// Summary prices the checkout for zone.
func (s *CheckoutService) Summary(ctx context.Context, id uuid.UUID, zone model.DeliveryZone) (pricing.Summary, error) {
	state, err := s.load(ctx, id)
	if err != nil {
		return pricing.Summary{}, err
	}
	return quote(zone, state.Discount)
}

// ApplyDiscount validates code and, if accepted, makes the order free.
// Only one code may be active; remove it before applying another.
func (s *CheckoutService) ApplyDiscount(ctx context.Context, id uuid.UUID, zone model.DeliveryZone, code string) (*DiscountOutcome, error) {
	if !zone.Valid() {
		return nil, errors.ErrUnknownZone
	}
	if strings.TrimSpace(code) == "" {
		return nil, errors.ErrDiscountCodeRequired
	}
	release, err := s.guard.Acquire("checkout:" + id.String())
	if err != nil {
		return nil, err
	}
	defer release()

	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if state.Discount != nil {
		return nil, errors.ErrDiscountAlreadyApplied
	}

	res := s.discounts.Apply(ctx, code)
	if res.Accepted {
		full, err := pricing.FullDiscount(zone)
		if err != nil {
			return nil, err
		}
		res.Amount = full
		state.Discount = &model.AppliedDiscount{Code: strings.TrimSpace(code), Amount: full}
		state.Zone = zone
		if err := s.store.Save(ctx, state); err != nil {
			return nil, fmt.Errorf("save checkout: %w", err)
		}
	}

	summary, err := quote(zone, state.Discount)
	if err != nil {
		return nil, err
	}
	return &DiscountOutcome{DiscountResult: res, Summary: summary}, nil
}

// RemoveDiscount clears the active code. No backend call is made.
func (s *CheckoutService) RemoveDiscount(ctx context.Context, id uuid.UUID) error {
	state, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if state.Discount == nil {
		return nil
	}
	state.Discount = nil
	if err := s.store.Save(ctx, state); err != nil {
		return fmt.Errorf("save checkout: %w", err)
	}
	return nil
}

// PlaceOrder validates req, prices it with the same quote the summary uses
// and submits it. Local problems are returned as errors; everything the
// backend says is folded into the outcome.
func (s *CheckoutService) PlaceOrder(ctx context.Context, id uuid.UUID, req OrderRequest) (*OrderOutcome, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	release, err := s.guard.Acquire("checkout:" + id.String())
	if err != nil {
		return nil, err
	}
	defer release()

	state, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	summary, err := quote(req.DeliveryOption, state.Discount)
	if err != nil {
		return nil, err
	}

	order := model.Order{
		Customer:       req.Customer,
		DeliveryOption: req.DeliveryOption,
		Currency:       summary.Currency,
		Amount:         summary.Total,
		DeliveryFee:    summary.Delivery,
		DiscountAmount: summary.Discount,
	}
	if state.Discount != nil {
		order.DiscountCode = state.Discount.Code
	}
	entry := model.OrderLog{
		CheckoutID:     id,
		Email:          req.Email,
		Username:       req.Username,
		DeliveryZone:   req.DeliveryOption,
		Amount:         order.Amount,
		DiscountCode:   order.DiscountCode,
		DiscountAmount: order.DiscountAmount,
	}

	conf, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		out := &OrderOutcome{Summary: summary, Message: orderFallback}
		if ce, ok := backend.AsCallError(err); ok && ce.Outcome == backend.OutcomeRejected {
			out.Code = CodeRejected
			if ce.Message != "" {
				out.Message = ce.Message
			}
			entry.Status = model.OrderLogStatusRejected
		} else {
			out.Code = CodeUnavailable
			out.Retryable = true
			entry.Status = model.OrderLogStatusFailed
		}
		entry.ErrorMessage = err.Error()
		s.recorder.Record(ctx, entry)
		s.log.Warn("order submission failed", zap.String("checkout_id", id.String()), zap.Error(err))
		return out, nil
	}

	out := &OrderOutcome{Success: true, Code: CodeOK, Order: conf, Summary: summary}
	entry.BackendOrderID = conf.OrderID
	if conf.PaymentURL != "" {
		out.PaymentURL = conf.PaymentURL
		entry.Status = model.OrderLogStatusSubmitted
	} else {
		out.Free = true
		out.ReturnPath = s.returnPath
		out.Message = orderFreeMessage
		entry.Status = model.OrderLogStatusFree
	}
	s.recorder.Record(ctx, entry)

	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Warn("clear checkout", zap.String("checkout_id", id.String()), zap.Error(err))
	}
	s.log.Info("order placed",
		zap.String("checkout_id", id.String()),
		zap.String("amount", summary.Total.String()),
		zap.Bool("free", out.Free),
	)
	return out, nil
}

func (s *CheckoutService) load(ctx context.Context, id uuid.UUID) (*repository.CheckoutState, error) {
	state, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load checkout: %w", err)
	}
	if state == nil {
		return nil, errors.ErrCheckoutNotFound
	}
	return state, nil
}

// quote prices zone with the active discount. An accepted code always
// covers the whole order, so its amount follows the zone.
func quote(zone model.DeliveryZone, discount *model.AppliedDiscount) (pricing.Summary, error) {
	if discount == nil {
		return pricing.Quote(zone, nil)
	}
	full, err := pricing.FullDiscount(zone)
	if err != nil {
		return pricing.Summary{}, err
	}
	return pricing.Quote(zone, &model.AppliedDiscount{Code: discount.Code, Amount: full})
}
