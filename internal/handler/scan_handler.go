package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tapcard/internal/service"
)

// ScanHandler resolves scanned cards.
type ScanHandler struct {
	flow *service.CardFlowController
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(flow *service.CardFlowController) *ScanHandler {
	return &ScanHandler{flow: flow}
}

// Resolve godoc
// @Summary Resolve a scanned card
// @Description Classifies the card behind a scanned username and tells the client where to go next.
// @Tags scan
// @Produce json
// @Param username path string true "Card username"
// @Success 200 {object} service.Decision
// @Router /scan/{username} [get]
func (h *ScanHandler) Resolve(c echo.Context) error {
	d := h.flow.Resolve(c.Request().Context(), sessionFrom(c), c.Param("username"))
	return c.JSON(http.StatusOK, d)
}
