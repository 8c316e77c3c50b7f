package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/approval"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/balance"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/delegation"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/directory"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/escalation"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/leaverequest"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/messaging/kafka"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/notification"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/policy"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/connection"
)

// RunScheduler starts the escalation sweep loop and blocks until
// SIGINT or SIGTERM.
func RunScheduler() error {
	logger := zap.L().Named("app.scheduler")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	cfg := policy.Load()

	dir := directory.NewGormDirectory(gormDB)
	delegationService := delegation.NewService(delegation.NewRepository(gormDB))
	approvalRouter := approval.NewRouter(dir, delegationService)
	balanceRepo := balance.NewRepository(gormDB, sqlDB)
	requestRepo := leaverequest.NewRepository(gormDB, sqlDB)
	notifier := notification.NewOutboxNotifier(kafka.NewOutboxRepository(sqlDB))
	requestService := leaverequest.NewService(sqlDB, requestRepo, balanceRepo, approvalRouter, notifier, cfg)

	interval := time.Minute
	if v := os.Getenv("ESCALATION_SWEEP_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			interval = parsed
		}
	}

	scheduler := escalation.NewScheduler(requestService, interval, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go scheduler.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("scheduler shutting down")
	cancel()

	return nil
}
