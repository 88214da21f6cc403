package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/delux1000/deluxwallet/internal/adapters/docstore/jsonbin"
	"github.com/delux1000/deluxwallet/internal/adapters/docstore/memory"
	"github.com/delux1000/deluxwallet/internal/core/ports"
	"github.com/delux1000/deluxwallet/internal/core/services"
	"github.com/delux1000/deluxwallet/internal/handlers"
	"github.com/delux1000/deluxwallet/internal/integrations/ecb"
	"github.com/delux1000/deluxwallet/internal/middleware"
	"github.com/delux1000/deluxwallet/internal/platform/config"
	"github.com/delux1000/deluxwallet/internal/platform/email"
	"github.com/delux1000/deluxwallet/internal/platform/locking"
	"github.com/delux1000/deluxwallet/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := buildStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize document store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Lock set and order are fixed at startup; every writer goes through it
	order := make([]string, 0, len(ports.LockOrder))
	for _, c := range ports.LockOrder {
		order = append(order, string(c))
	}
	locks := locking.NewManager(cfg.LockTimeout, order)

	var notifier services.Notifier
	if cfg.SMTPHost != "" {
		notifier = email.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SenderEmail, logger)
		logger.Info("Email notifications enabled", slog.String("smtp_host", cfg.SMTPHost))
	} else {
		logger.Warn("SMTP_HOST not set, email notifications disabled")
	}

	svc := services.NewContainer(store, locks, notifier)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit format", slog.String("error", err.Error()))
		os.Exit(1)
	}
	limiterInstance := limiter.New(limitermemory.NewStore(), rate)

	ecbClient := ecb.NewClient(cfg.ECBRatesURL, logger)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svc, limiterInstance, posthogClient, ecbClient)

	scheduler := startSweepScheduler(cfg, svc.Sweeper, logger)
	if scheduler != nil {
		defer scheduler.Stop()
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildStore selects the document store backend from config.
func buildStore(cfg *config.Config, logger *slog.Logger) (ports.DocumentStore, error) {
	switch cfg.StoreBackend {
	case "memory":
		logger.Warn("Using in-memory document store, data is not persisted")
		return memory.New(), nil
	default:
		bins := map[ports.Collection]string{
			ports.Accounts:        cfg.AccountsBinID,
			ports.Investments:     cfg.InvestmentsBinID,
			ports.TransactionsLog: cfg.TransactionsBinID,
		}
		return jsonbin.New(cfg.JSONBinBaseURL, cfg.JSONBinAPIKey, bins, logger), nil
	}
}

// startSweepScheduler runs maturity sweeps on the configured cron schedule.
// Returns nil when no schedule is set.
func startSweepScheduler(cfg *config.Config, sweeper *services.SweeperService, logger *slog.Logger) *cron.Cron {
	if cfg.SweepSchedule == "" {
		logger.Info("Sweep schedule not set, sweeps run on demand only")
		return nil
	}

	c := cron.New()
	_, err := c.AddFunc(cfg.SweepSchedule, func() {
		sweepLogger := logger.With(slog.String("job", "maturity_sweep"))
		ctx := middleware.ContextWithLogger(context.Background(), sweepLogger)
		settled, err := sweeper.Sweep(ctx, time.Now().UTC())
		if err != nil {
			sweepLogger.Error("Scheduled sweep failed", slog.String("error", err.Error()))
			return
		}
		if settled > 0 {
			sweepLogger.Info("Scheduled sweep settled contracts", slog.Int("settled", settled))
		}
	})
	if err != nil {
		logger.Error("Invalid sweep schedule, scheduled sweeps disabled",
			slog.String("schedule", cfg.SweepSchedule), slog.String("error", err.Error()))
		return nil
	}
	c.Start()
	logger.Info("Sweep scheduler started", slog.String("schedule", cfg.SweepSchedule))
	return c
}
