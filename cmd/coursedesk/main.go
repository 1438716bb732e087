package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/coursedesk-api/api/swagger"
	"github.com/noah-isme/coursedesk-api/internal/autosave"
	"github.com/noah-isme/coursedesk-api/internal/handler"
	internalmiddleware "github.com/noah-isme/coursedesk-api/internal/middleware"
	"github.com/noah-isme/coursedesk-api/internal/repair"
	"github.com/noah-isme/coursedesk-api/internal/repository"
	"github.com/noah-isme/coursedesk-api/internal/service"
	"github.com/noah-isme/coursedesk-api/internal/store"
	"github.com/noah-isme/coursedesk-api/pkg/cache"
	"github.com/noah-isme/coursedesk-api/pkg/config"
	"github.com/noah-isme/coursedesk-api/pkg/database"
	"github.com/noah-isme/coursedesk-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/coursedesk-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/coursedesk-api/pkg/middleware/requestid"
	"github.com/noah-isme/coursedesk-api/pkg/storage"
)

// @title CourseDesk API
// @version 1.0.0
// @description Course management backend with persistence and integrity repair
// @BasePath /api
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

	backend, err := buildBackend(cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init store backend", "backend", cfg.Store.Backend, "error", err)
	}

	repairer := repair.New(rand.New(rand.NewSource(time.Now().UnixNano())), logr)
	repo := repository.New(backend, repairer, repository.Config{
		PrimaryKey:     cfg.Store.PrimaryKey,
		BackupKey:      cfg.Store.BackupKey,
		BackupInterval: cfg.Store.BackupInterval,
	}, logr)

	metricsSvc := service.NewMetricsService()
	repo.SetMetrics(metricsSvc)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	repo.Load(loadCtx)
	cancelLoad()
	if !repo.Available() {
		logr.Sugar().Warnw("persistence unavailable, running in-memory only")
	}

	appCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	saver := autosave.New(repo, autosave.Config{
		Interval: cfg.Store.AutosaveInterval,
		Debounce: cfg.Store.SaveDebounce,
		Logger:   logr,
	})
	repo.SetOnChange(saver.Notify)
	saver.Start(appCtx)

	courseSvc := service.NewCourseService(repo, nil, logr)
	studentSvc := service.NewStudentService(repo, nil, logr)
	instructorSvc := service.NewInstructorService(repo, nil, logr)
	enrollmentSvc := service.NewEnrollmentService(repo, nil, logr)
	datasetSvc := service.NewDatasetService(repo, logr)

	exportCfg := service.ExportConfig{
		ResultTTL:       cfg.Export.ResultTTL,
		CleanupInterval: cfg.Export.CleanupInterval,
	}
	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportStorage, err := storage.NewLocalStorage(cfg.Export.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		exportSvc = service.NewExportService(repo, exportStorage, exportCfg, logr)
		exportSvc.StartCleanup(appCtx)
	} else {
		exportSvc = service.NewExportService(repo, nil, exportCfg, logr)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready", "storage": repo.Available()})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Courses:     handler.NewCourseHandler(courseSvc),
		Students:    handler.NewStudentHandler(studentSvc),
		Instructors: handler.NewInstructorHandler(instructorSvc),
		Enrollments: handler.NewEnrollmentHandler(enrollmentSvc),
		Dataset:     handler.NewDatasetHandler(datasetSvc),
		Exports:     handler.NewExportHandler(exportSvc),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}

	stopBackground()
	saver.Stop()
	if repo.Available() {
		if !saver.Flush(shutdownCtx) {
			logr.Sugar().Warnw("final save failed, latest changes may be lost")
		}
	}
	logr.Sugar().Infow("goodbye")
}

func buildBackend(cfg *config.Config, logr *zap.Logger) (store.Backend, error) {
	switch cfg.Store.Backend {
	case "redis":
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store.NewRedisBackend(client, logr), nil
	case "postgres":
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		backend := store.NewSQLBackend(db, logr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := backend.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return store.NewFileBackend(cfg.Store.Dir, logr)
	}
}
