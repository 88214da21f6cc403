package handlers

import (
	"net/http"

	"github.com/delux1000/deluxwallet/internal/integrations/ecb"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ratesHandler exposes the daily euro reference rates.
type ratesHandler struct {
	ecbClient *ecb.Client
}

// registerRatesRoutes registers the public exchange-rate route.
func registerRatesRoutes(r *gin.Engine, client *ecb.Client) {
	h := &ratesHandler{ecbClient: client}
	r.GET("/rates", h.getRates)
}

func (h *ratesHandler) getRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.ecbClient.GetRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to fetch reference rates", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Rates are temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"base": "EUR", "rates": rates})
}
