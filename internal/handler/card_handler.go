package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tapcard/internal/errors"
	"tapcard/internal/model"
	"tapcard/internal/service"
)

// CardHandler handles card mutations and the owner's card list.
type CardHandler struct {
	activator *service.CardActivator
	updater   *service.RedirectUpdater
	dashboard *service.Dashboard
}

// NewCardHandler creates a new card handler.
func NewCardHandler(activator *service.CardActivator, updater *service.RedirectUpdater, dashboard *service.Dashboard) *CardHandler {
	return &CardHandler{activator: activator, updater: updater, dashboard: dashboard}
}

// ActivateRequest represents a card activation request.
type ActivateRequest struct {
	CardID      string `json:"card_id"`
	RedirectURL string `json:"redirect_url"`
}

// UpdateRedirectRequest represents a redirect update request.
type UpdateRedirectRequest struct {
	RedirectURL string `json:"redirect_url"`
}

// CardsResponse lists the owner's cards.
type CardsResponse struct {
	Cards []model.Card `json:"cards"`
}

// Activate godoc
// @Summary Activate a card
// @Description Binds a card id to a redirect URL. Signed-out callers get needs_auth.
// @Tags cards
// @Accept json
// @Produce json
// @Param request body ActivateRequest true "Activation data"
// @Success 200 {object} service.ActionResult
// @Failure 400 {object} service.ActionResult
// @Failure 401 {object} service.ActionResult
// @Failure 409 {object} service.ActionResult
// @Failure 422 {object} service.ActionResult
// @Failure 502 {object} service.ActionResult
// @Router /cards/activate [post]
func (h *CardHandler) Activate(c echo.Context) error {
	var req ActivateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	res := h.activator.Activate(c.Request().Context(), sessionFrom(c), req.CardID, req.RedirectURL)
	return c.JSON(res.HTTPStatus(), res)
}

// UpdateRedirect godoc
// @Summary Update a card's redirect URL
// @Tags cards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateRedirectRequest true "New redirect"
// @Success 200 {object} service.ActionResult
// @Failure 400 {object} service.ActionResult
// @Failure 401 {object} service.ActionResult
// @Failure 409 {object} service.ActionResult
// @Failure 422 {object} service.ActionResult
// @Failure 502 {object} service.ActionResult
// @Router /cards/redirect [patch]
func (h *CardHandler) UpdateRedirect(c echo.Context) error {
	var req UpdateRedirectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	res := h.updater.Update(c.Request().Context(), sessionFrom(c), req.RedirectURL)
	return c.JSON(res.HTTPStatus(), res)
}

// MyCards godoc
// @Summary List the caller's cards
// @Tags cards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CardsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /cards/mine [get]
func (h *CardHandler) MyCards(c echo.Context) error {
	cards, err := h.dashboard.MyCards(c.Request().Context(), sessionFrom(c))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, CardsResponse{Cards: cards})
}
