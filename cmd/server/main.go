package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"team-management.backend/internal/config"
	"team-management.backend/internal/infrastructure/datasources/postgres"
	"team-management.backend/internal/infrastructure/jobs"
	"team-management.backend/internal/infrastructure/models"
	"team-management.backend/internal/infrastructure/repositories"
	"team-management.backend/internal/interfaces/http/handlers"
	"team-management.backend/internal/usecases"
	"team-management.backend/pkg/logger"
	"team-management.backend/pkg/metrics"
	"team-management.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	connectDB  = postgres.NewConnection
	openGorm   = postgres.OpenGorm
	migrate    = func(db *gorm.DB) error { return db.AutoMigrate(&models.TeamMember{}) }
	runServer  = func(srv *http.Server) error { return srv.ListenAndServe() }

	notifyShutdown = func(c chan<- os.Signal) { signal.Notify(c, syscall.SIGINT, syscall.SIGTERM) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Redis.URL != "" {
		if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
			logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer redis.Close()
		logger.Info(context.Background(), "Redis initialized")
	} else {
		logger.Warn(context.Background(), "REDIS_URL not set, idempotent create disabled")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	sqlDB, err := connectDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func(db *sql.DB) { _ = db.Close() }(sqlDB)

	db, err := openGorm(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to initialize gorm: %w", err)
	}
	logger.Info(context.Background(), "Connected to PostgreSQL")

	if cfg.Database.AutoMigrate {
		if err := migrate(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	appMetrics := metrics.New()

	teamMemberRepo := repositories.NewTeamMemberRepository(db)
	uow := repositories.NewUnitOfWork(db)
	teamMemberUsecase := usecases.NewTeamMemberUsecase(teamMemberRepo, uow, appMetrics)
	teamMemberHandler := handlers.NewTeamMemberHandler(teamMemberUsecase)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	statsJob := jobs.NewTeamMemberStatsJob(teamMemberUsecase, appMetrics, cfg.Jobs.StatsInterval)
	go statsJob.Start(ctx)

	r := newRouter(cfg.Server.AllowedOrigins, routeDeps{
		teamMemberHandler: teamMemberHandler,
		metrics:           appMetrics,
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "route registered", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	notifyShutdown(quit)
	defer signal.Stop(quit)

	// closed once srv.Shutdown has drained in-flight requests
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		select {
		case <-quit:
		case <-ctx.Done():
			return
		}
		logger.Info(context.Background(), "Shutting down server")
		statsJob.Stop()
		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(context.Background(), "Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "Team management backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "/api/teammembers"),
		zap.String("health", "/health"),
	)

	serveErr := runServer(srv)
	if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", serveErr)
	}
	if errors.Is(serveErr, http.ErrServerClosed) {
		<-shutdownDone
		logger.Info(context.Background(), "Server stopped")
	}
	return nil
}
