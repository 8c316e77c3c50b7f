package app

import (
	"database/sql"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/MunaSchool/HR-Management-System-sub005/internal/approval"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/balance"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/calendar"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/delegation"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/directory"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/leaverequest"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/messaging/kafka"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/middleware"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/notification"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/policy"
	"github.com/MunaSchool/HR-Management-System-sub005/internal/shared/connection"
)

// BuildApp connects the infrastructure and registers every module on
// the router.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

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
	logger.Info("database connection established")

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if err := migrate(gormDB); err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	return registerModules(router, sqlDB, gormDB, rdb)
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	cfg := policy.Load()

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(middleware.Identity())
	router.Use(middleware.RateLimitByIP(rate.Every(time.Second), 60))

	// --- Repositories ---
	dir := directory.NewGormDirectory(gormDB)
	delegationRepo := delegation.NewRepository(gormDB)
	balanceRepo := balance.NewRepository(gormDB, db)
	requestRepo := leaverequest.NewRepository(gormDB, db)
	calendarRepo := calendar.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	delegationService := delegation.NewService(delegationRepo)
	approvalRouter := approval.NewRouter(dir, delegationService)
	notifier := notification.NewOutboxNotifier(outboxRepo)
	balanceService := balance.NewService(balanceRepo, cfg)
	requestService := leaverequest.NewService(db, requestRepo, balanceRepo, approvalRouter, notifier, cfg)
	calendarService := calendar.NewService(calendarRepo, dir)

	// --- Handlers ---
	balanceHandler := balance.NewHandler(balanceService)
	delegationHandler := delegation.NewHandler(delegationService)
	requestHandler := leaverequest.NewHandler(requestService, rdb)
	calendarHandler := calendar.NewHandler(calendarService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		balance.RegisterRoutes(api, balanceHandler)
		delegation.RegisterRoutes(api, delegationHandler)
		leaverequest.RegisterRoutes(api, requestHandler, rdb)
		calendar.RegisterRoutes(api, calendarHandler)
	}

	return nil
}
