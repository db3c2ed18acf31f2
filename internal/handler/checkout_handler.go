package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tapcard/internal/errors"
	"tapcard/internal/model"
	"tapcard/internal/pricing"
	"tapcard/internal/service"
)

// CheckoutHandler handles the order form.
type CheckoutHandler struct {
	checkout *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// CheckoutResponse identifies a new checkout.
type CheckoutResponse struct {
	ID      string          `json:"id"`
	Summary pricing.Summary `json:"summary"`
}

// DiscountRequest represents a discount code submission.
type DiscountRequest struct {
	Code string             `json:"code"`
	Zone model.DeliveryZone `json:"zone" validate:"required,oneof=within-region outside-region"`
}

// Start godoc
// @Summary Open a checkout
// @Tags checkout
// @Produce json
// @Success 201 {object} CheckoutResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Start(c echo.Context) error {
	state, err := h.checkout.Start(c.Request().Context())
	if err != nil {
		return mapError(err)
	}
	summary, err := pricing.Quote(model.ZoneWithinRegion, nil)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, CheckoutResponse{ID: state.ID.String(), Summary: summary})
}

// Summary godoc
// @Summary Price a checkout
// @Tags checkout
// @Produce json
// @Param id path string true "Checkout ID"
// @Param zone query string true "Delivery zone" Enums(within-region, outside-region)
// @Success 200 {object} pricing.Summary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /checkout/{id}/summary [get]
func (h *CheckoutHandler) Summary(c echo.Context) error {
	id, err := checkoutID(c)
	if err != nil {
		return err
	}
	zone := model.DeliveryZone(c.QueryParam("zone"))
	if zone == "" {
		zone = model.ZoneWithinRegion
	}

	summary, err := h.checkout.Summary(c.Request().Context(), id, zone)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, summary)
}

// ApplyDiscount godoc
// @Summary Apply a discount code
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Checkout ID"
// @Param request body DiscountRequest true "Discount code"
// @Success 200 {object} service.DiscountOutcome
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /checkout/{id}/discount [post]
func (h *CheckoutHandler) ApplyDiscount(c echo.Context) error {
	id, err := checkoutID(c)
	if err != nil {
		return err
	}
	var req DiscountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	out, err := h.checkout.ApplyDiscount(c.Request().Context(), id, req.Zone, req.Code)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, out)
}

// RemoveDiscount godoc
// @Summary Remove the applied discount
// @Tags checkout
// @Param id path string true "Checkout ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /checkout/{id}/discount [delete]
func (h *CheckoutHandler) RemoveDiscount(c echo.Context) error {
	id, err := checkoutID(c)
	if err != nil {
		return err
	}
	if err := h.checkout.RemoveDiscount(c.Request().Context(), id); err != nil {
		return mapError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PlaceOrder godoc
// @Summary Place an order
// @Description Paid orders return a payment_url; fully discounted orders return free=true and a return_path.
// @Tags checkout
// @Accept json
// @Produce json
// @Param id path string true "Checkout ID"
// @Param request body service.OrderRequest true "Customer details"
// @Success 200 {object} service.OrderOutcome
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 422 {object} service.OrderOutcome
// @Failure 502 {object} service.OrderOutcome
// @Router /checkout/{id}/orders [post]
func (h *CheckoutHandler) PlaceOrder(c echo.Context) error {
	id, err := checkoutID(c)
	if err != nil {
		return err
	}
	var req service.OrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	out, err := h.checkout.PlaceOrder(c.Request().Context(), id, req)
	if err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: verrs.Error(),
				Code:  "VALIDATION_ERROR",
			})
		}
		return mapError(err)
	}

	status := http.StatusOK
	switch out.Code {
	case service.CodeRejected:
		status = http.StatusUnprocessableEntity
	case service.CodeUnavailable:
		status = http.StatusBadGateway
	}
	return c.JSON(status, out)
}

func checkoutID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid checkout id",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

func mapError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
