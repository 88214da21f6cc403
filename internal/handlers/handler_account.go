package handlers

import (
	"log/slog"
	"net/http"

	"github.com/delux1000/deluxwallet/internal/core/services"
	"github.com/delux1000/deluxwallet/internal/dto"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for the caller's own account.
type accountHandler struct {
	ledgerService *services.LedgerService
}

func newAccountHandler(ls *services.LedgerService) *accountHandler {
	return &accountHandler{ledgerService: ls}
}

// registerAccountRoutes registers routes related to the authenticated
// account.
func registerAccountRoutes(rg *gin.RouterGroup, ls *services.LedgerService) {
	h := newAccountHandler(ls)

	me := rg.Group("/me")
	{
		me.GET("", h.getAccount)
		me.PUT("/profile", h.updateProfile)
		me.GET("/transactions", h.listTransactions)
	}
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetAccountEmailFromContext(c)
	if !ok {
		logger.Error("Account email not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.ledgerService.GetAccount(c.Request.Context(), email)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetAccountEmailFromContext(c)
	if !ok {
		logger.Error("Account email not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateProfile", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.BindingErrorMessage(err)})
		return
	}

	profile, err := h.ledgerService.UpdateProfile(c.Request.Context(), email, req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	email, ok := middleware.GetAccountEmailFromContext(c)
	if !ok {
		logger.Error("Account email not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.ledgerService.GetAccount(c.Request.Context(), email)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": dto.ToTransactionResponses(account.Transactions),
		"user": gin.H{
			"fullName": account.FullName,
			"balance":  account.Balance,
		},
	})
}
