package app

import (
	"context"
	"database/sql"

	"go-attendance/internal/attendance"
	"go-attendance/internal/auth"
	"go-attendance/internal/config"
	"go-attendance/internal/dashboard"
	"go-attendance/internal/employee"
	"go-attendance/internal/holiday"
	"go-attendance/internal/leave"
	"go-attendance/internal/media"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/notification"
	"go-attendance/internal/rbac"
	"go-attendance/internal/rbac/infra"
	"go-attendance/internal/shared/counter"
	"go-attendance/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	userRepo := user.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)

	var outboxRepo kafka.OutboxRepository
	if cfg.Kafka.Enabled() {
		outboxRepo = kafka.NewOutboxRepository(db)
	}

	var challenges auth.ChallengeStore
	if rdb != nil {
		challenges = auth.NewRedisChallengeStore(rdb)
	} else {
		challenges = auth.NewGormChallengeStore(gormDB)
	}

	// --- Side-effect gateways ---
	var sender notification.Sender
	if cfg.SMTP.Enabled() {
		sender = notification.NewSMTPSender(cfg.SMTP)
	}
	notifier := notification.NewGateway(sender, logger)

	var uploader media.Uploader
	if cfg.S3.Enabled() {
		u, err := media.NewS3Uploader(ctx, cfg.S3)
		if err != nil {
			logger.Warn("s3 uploader unavailable, photos stored inline", zap.Error(err))
		} else {
			uploader = u
		}
	}
	mediaGateway := media.NewGateway(uploader, logger)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return err
	}

	if err := seedAdmin(ctx, userRepo, cfg.Seed, logger.Named("app.seed")); err != nil {
		return err
	}

	// --- Services ---
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	authService := auth.NewService(userRepo, tokens, challenges, notifier, auth.Options{ExposeOTP: cfg.App.ExposeOTP()}, logger)
	employeeService := employee.NewServiceWithOutbox(db, userRepo, counterRepo, outboxRepo, rdb, notifier, cfg.App.Domains, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, userRepo, mediaGateway, outboxRepo, cfg.App.Location, logger)
	leaveService := leave.NewService(db, leaveRepo, userRepo, notifier, outboxRepo, logger)
	holidayService := holiday.NewService(db, holidayRepo, rdb, logger)
	dashboardService := dashboard.NewService(userRepo, attendanceRepo, leaveRepo, cfg.App.Domains, cfg.App.Location, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.App.IsProduction(), cfg.JWT.Expiry, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	holidayHandler := holiday.NewHandler(holidayService, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		api.GET("/health", healthHandler(cfg.App.Name))

		auth.RegisterRoutes(api, authHandler, authService, rbacService)
		employee.RegisterRoutes(api, employeeHandler, authService, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, authService, rbacService, rdb)
		leave.RegisterRoutes(api, leaveHandler, authService, rbacService, rdb)
		holiday.RegisterRoutes(api, holidayHandler, authService, rbacService)
		dashboard.RegisterRoutes(api, dashboardHandler, authService, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, authService)
	}

	return nil
}
