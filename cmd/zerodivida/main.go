package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/zerodivida/zerodivida/internal/app"
	"github.com/zerodivida/zerodivida/internal/auth"
	"github.com/zerodivida/zerodivida/internal/dashboard"
	"github.com/zerodivida/zerodivida/internal/finance/expenses"
	"github.com/zerodivida/zerodivida/internal/finance/goals"
	"github.com/zerodivida/zerodivida/internal/finance/incomes"
	"github.com/zerodivida/zerodivida/internal/observability"
	"github.com/zerodivida/zerodivida/internal/platform/cache"
	"github.com/zerodivida/zerodivida/internal/platform/db"
	"github.com/zerodivida/zerodivida/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if cfg.AutoMigrate {
		if err := db.Migrate(ctx, cfg.PGDSN); err != nil {
			logger.Error("run migrations", slog.Any("error", err))
			os.Exit(1)
		}
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, dashboard cache disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, logger, metrics)
	authHandler := auth.NewHandler(logger, authService)

	dashboardCache := dashboard.NewCache(redisClient, cfg.DashboardTTL)

	incomeRepo := incomes.NewRepository(pool)
	expenseRepo := expenses.NewRepository(pool)
	goalRepo := goals.NewRepository(pool)

	dashboardService := dashboard.NewService(incomeRepo, expenseRepo, dashboardCache)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	incomeService := incomes.NewService(incomeRepo, dashboardService)
	incomeHandler := incomes.NewHandler(logger, incomeService)
	expenseService := expenses.NewService(expenseRepo, dashboardService)
	expenseHandler := expenses.NewHandler(logger, expenseService)
	goalService := goals.NewService(goalRepo)
	goalHandler := goals.NewHandler(logger, goalService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, jobClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthHandler:      authHandler,
		IncomeHandler:    incomeHandler,
		ExpenseHandler:   expenseHandler,
		GoalHandler:      goalHandler,
		DashboardHandler: dashboardHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
