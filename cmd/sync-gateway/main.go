package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/baula-dev/baula-sync/api/swagger"
	"github.com/baula-dev/baula-sync/internal/feed"
	"github.com/baula-dev/baula-sync/internal/handler"
	"github.com/baula-dev/baula-sync/internal/middleware"
	"github.com/baula-dev/baula-sync/internal/models"
	"github.com/baula-dev/baula-sync/internal/repository"
	"github.com/baula-dev/baula-sync/internal/scheduler"
	"github.com/baula-dev/baula-sync/internal/service"
	syncengine "github.com/baula-dev/baula-sync/internal/sync"
	"github.com/baula-dev/baula-sync/pkg/cache"
	"github.com/baula-dev/baula-sync/pkg/config"
	"github.com/baula-dev/baula-sync/pkg/database"
	"github.com/baula-dev/baula-sync/pkg/jobs"
	"github.com/baula-dev/baula-sync/pkg/logger"
	corsmiddleware "github.com/baula-dev/baula-sync/pkg/middleware/cors"
	reqidmiddleware "github.com/baula-dev/baula-sync/pkg/middleware/requestid"
)

// @title Baula Sync
// @version 1.0.0
// @description Incremental course-catalog synchronisation service
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()

	courseRepo := repository.NewCourseRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	personRepo := repository.NewPersonRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	moduleCourseRepo := repository.NewModuleCourseRepository(db)

	feedClient := feed.NewClient(cfg.Feed)
	lease := syncengine.NewLease(redisClient, cfg.Sync.LeaseTTL)
	reportStore := syncengine.NewReportStore(redisClient, cfg.Sync.ReportTTL)

	syncService := syncengine.NewService(
		feedClient,
		courseRepo,
		roomRepo,
		personRepo,
		linkRepo,
		moduleCourseRepo,
		lease,
		reportStore,
		metrics,
		logr,
	)

	queue := jobs.NewQueue("sync", func(jobCtx context.Context, job jobs.Job) error {
		semester, ok := job.Payload.(models.Semester)
		if !ok {
			return fmt.Errorf("job %s: unexpected payload %T", job.ID, job.Payload)
		}
		_, err := syncService.Run(jobCtx, semester)
		return err
	}, jobs.QueueConfig{
		Workers:    1,
		BufferSize: cfg.Sync.WorkerBuffer,
		Logger:     logr,
	})
	queue.Start(ctx)
	defer queue.Stop()

	if cfg.Sync.Enabled {
		sched, err := scheduler.New(cfg.Sync.CronSpec, queue, logr)
		if err != nil {
			logr.Sugar().Fatalw("invalid sync schedule", "spec", cfg.Sync.CronSpec, "error", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	validate := validator.New()
	authService := service.NewAuthService(cfg.JWT.Secret)
	syncHandler := handler.NewSyncHandler(queue, lease, reportStore, validate)
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admin := r.Group(cfg.APIPrefix + "/admin")
	admin.Use(middleware.JWT(authService), middleware.AdminOnly())
	{
		admin.POST("/sync/:semester", syncHandler.Trigger)
		admin.GET("/sync/:semester/report", syncHandler.Report)
		admin.GET("/sync/:semester/report/export", syncHandler.ExportReport)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
}
