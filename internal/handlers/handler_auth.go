package handlers

import (
	"log/slog"
	"net/http"

	"github.com/delux1000/deluxwallet/internal/core/services"
	"github.com/delux1000/deluxwallet/internal/dto"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/delux1000/deluxwallet/internal/platform/config"
	"github.com/delux1000/deluxwallet/internal/utils"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration and login.
type authHandler struct {
	ledgerService *services.LedgerService
	cfg           *config.Config
}

func newAuthHandler(ls *services.LedgerService, cfg *config.Config) *authHandler {
	return &authHandler{ledgerService: ls, cfg: cfg}
}

// registerAuthRoutes registers the public authentication routes.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, svc *services.Container) {
	h := newAuthHandler(svc.Ledger, cfg)

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

func (h *authHandler) issueToken(email string) (string, error) {
	return utils.GenerateJWT(email, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
}

// register opens a new account and logs the caller straight in.
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for register", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.BindingErrorMessage(err)})
		return
	}

	account, err := h.ledgerService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	token, err := h.issueToken(account.Email)
	if err != nil {
		logger.Error("Failed to issue token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Token:    token,
		Email:    account.Email,
		FullName: account.FullName,
	})
}

// login authenticates an identifier (email or phone) and PIN pair.
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": dto.BindingErrorMessage(err)})
		return
	}

	account, err := h.ledgerService.Authenticate(c.Request.Context(), req.Identifier, req.PIN)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	token, err := h.issueToken(account.Email)
	if err != nil {
		logger.Error("Failed to issue token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:    token,
		Email:    account.Email,
		FullName: account.FullName,
	})
}
