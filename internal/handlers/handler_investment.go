package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/delux1000/deluxwallet/internal/core/services"
	"github.com/delux1000/deluxwallet/internal/dto"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/gin-gonic/gin"
)

// investmentHandler handles investment contracts and sweep triggering.
type investmentHandler struct {
	investmentService *services.InvestmentService
	sweeperService    *services.SweeperService
}

func newInvestmentHandler(is *services.InvestmentService, ss *services.SweeperService) *investmentHandler {
	return &investmentHandler{investmentService: is, sweeperService: ss}
}

// registerInvestmentRoutes registers the investment routes.
func registerInvestmentRoutes(rg *gin.RouterGroup, is *services.InvestmentService, ss *services.SweeperService) {
	h := newInvestmentHandler(is, ss)

	investments := rg.Group("/investments")
	{
		investments.GET("", h.listInvestments)
		investments.POST("", h.openInvestment)
		investments.POST("/sweep", h.sweep)
	}
}

func (h *investmentHandler) openInvestment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetAccountEmailFromContext(c)
	if !ok {
		logger.Error("Account email not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.OpenInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for openInvestment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.BindingErrorMessage(err)})
		return
	}

	contract, err := h.investmentService.Open(c.Request.Context(), email, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investment": contract})
}

func (h *investmentHandler) listInvestments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetAccountEmailFromContext(c)
	if !ok {
		logger.Error("Account email not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	views, err := h.investmentService.List(c.Request.Context(), email, time.Now().UTC())
	if err != nil {
		respondError(c, logger, err)
		return
	}

	out := make([]dto.InvestmentResponse, 0)
	for v := range views {
		out = append(out, dto.ToInvestmentResponse(v))
	}
	c.JSON(http.StatusOK, gin.H{"investments": out})
}

// sweep settles every matured contract. It is safe to call repeatedly; a
// pass with nothing to settle writes nothing.
func (h *investmentHandler) sweep(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settled, err := h.sweeperService.Sweep(c.Request.Context(), time.Now().UTC())
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"settled": settled})
}
