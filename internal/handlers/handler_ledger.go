package handlers

import (
	"log/slog"
	"net/http"

	"github.com/delux1000/deluxwallet/internal/core/services"
	"github.com/delux1000/deluxwallet/internal/dto"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles the monetary operations on the caller's account.
type ledgerHandler struct {
	ledgerService *services.LedgerService
}

func newLedgerHandler(ls *services.LedgerService) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the balance mutation routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ls *services.LedgerService) {
	h := newLedgerHandler(ls)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/withdraw", h.withdraw)
		ledger.POST("/withdraw-to-card", h.withdrawToCard)
		ledger.POST("/wire", h.wire)
	}
}

func (h *ledgerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetAccountEmailFromContext(c)
	if !ok {
		logger.Error("Account email not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdraw", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.BindingErrorMessage(err)})
		return
	}

	txn, err := h.ledgerService.Withdraw(c.Request.Context(), email, req.Amount)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction": dto.ToTransactionResponse(*txn),
		"newBalance":  txn.BalanceAfter,
	})
}

func (h *ledgerHandler) withdrawToCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetAccountEmailFromContext(c)
	if !ok {
		logger.Error("Account email not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.WithdrawToCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for withdrawToCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.BindingErrorMessage(err)})
		return
	}

	txn, err := h.ledgerService.WithdrawToCard(c.Request.Context(), email, req.CardID, req.Amount)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction": dto.ToTransactionResponse(*txn),
		"newBalance":  txn.BalanceAfter,
	})
}

func (h *ledgerHandler) wire(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetAccountEmailFromContext(c)
	if !ok {
		logger.Error("Account email not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.WireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for wire", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.BindingErrorMessage(err)})
		return
	}

	result, err := h.ledgerService.Wire(c.Request.Context(), email, req.RecipientEmail, req.Amount)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"senderBalance": result.Sender.Balance,
		"recipient":     req.RecipientEmail,
		"amount":        req.Amount,
		"date":          result.Sent.Date,
	})
}
