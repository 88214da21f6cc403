package handlers

import (
	"log/slog"
	"net/http"

	"github.com/delux1000/deluxwallet/internal/core/services"
	"github.com/delux1000/deluxwallet/internal/dto"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cardHandler handles linked payment cards.
type cardHandler struct {
	cardService *services.CardService
}

func newCardHandler(cs *services.CardService) *cardHandler {
	return &cardHandler{cardService: cs}
}

// registerCardRoutes registers the card management routes.
func registerCardRoutes(rg *gin.RouterGroup, cs *services.CardService) {
	h := newCardHandler(cs)

	cards := rg.Group("/cards")
	{
		cards.GET("", h.listCards)
		cards.POST("", h.addCard)
		cards.POST("/:id/confirm", h.confirmCard)
	}
}

func (h *cardHandler) listCards(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetAccountEmailFromContext(c)
	if !ok {
		logger.Error("Account email not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cards, err := h.cardService.ListCards(c.Request.Context(), email)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": dto.ToCardResponses(cards)})
}

func (h *cardHandler) addCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetAccountEmailFromContext(c)
	if !ok {
		logger.Error("Account email not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.AddCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for addCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.BindingErrorMessage(err)})
		return
	}

	card, err := h.cardService.AddCard(c.Request.Context(), email, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"card": dto.ToCardResponse(*card)})
}

func (h *cardHandler) confirmCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetAccountEmailFromContext(c)
	if !ok {
		logger.Error("Account email not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ConfirmCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for confirmCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.BindingErrorMessage(err)})
		return
	}

	card, err := h.cardService.ConfirmCard(c.Request.Context(), email, c.Param("id"), req.Code)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": dto.ToCardResponse(*card)})
}
