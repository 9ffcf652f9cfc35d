package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/careerday/interview-scheduler-api/api/swagger"
	"github.com/careerday/interview-scheduler-api/internal/handler"
	"github.com/careerday/interview-scheduler-api/internal/middleware"
	"github.com/careerday/interview-scheduler-api/internal/repository"
	"github.com/careerday/interview-scheduler-api/internal/service"
	"github.com/careerday/interview-scheduler-api/pkg/cache"
	"github.com/careerday/interview-scheduler-api/pkg/config"
	"github.com/careerday/interview-scheduler-api/pkg/database"
	"github.com/careerday/interview-scheduler-api/pkg/logger"
	corsmiddleware "github.com/careerday/interview-scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/careerday/interview-scheduler-api/pkg/middleware/requestid"
)

// @title Interview Scheduler API
// @version 1.0.0
// @description Career day interview scheduling service
// @BasePath /api/v1
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

	metricsSvc := service.NewMetricsService()

	// Redis is optional: schedule reads fall back to postgres when the
	// cache is unavailable.
	var cacheSvc *service.CacheService
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, schedule caching disabled", "error", err)
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Cache.ScheduleTTL, logr, false)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.ScheduleTTL, logr, cfg.Cache.Enabled)
	}

	validate := validator.New()

	eventRepo := repository.NewEventRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	interviewerRepo := repository.NewInterviewerRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	eventSvc := service.NewEventService(eventRepo, cfg.Solver, validate, logr)
	studentSvc := service.NewStudentService(studentRepo, eventRepo, validate, logr)
	interviewerSvc := service.NewInterviewerService(interviewerRepo, eventRepo, validate, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, eventRepo, studentRepo, interviewerRepo, cacheSvc, logr)
	exportSvc := service.NewExportService(scheduleSvc, eventRepo, logr)
	solveSvc := service.NewSolveService(eventRepo, studentRepo, interviewerRepo, scheduleRepo,
		cacheSvc, metricsSvc, nil, cfg.Solver, validate, logr)

	eventHandler := handler.NewEventHandler(eventSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	interviewerHandler := handler.NewInterviewerHandler(interviewerSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, exportSvc)
	solveHandler := handler.NewSolveHandler(solveSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	guard := middleware.Guard(cfg.JWT.Secret)

	api.GET("/system/metrics", metricsHandler.Snapshot)

	api.GET("/events", eventHandler.List)
	api.GET("/events/:id", eventHandler.Get)
	api.POST("/events", guard, eventHandler.Create)
	api.PUT("/events/:id", guard, eventHandler.Update)
	api.DELETE("/events/:id", guard, eventHandler.Delete)

	api.GET("/events/:id/students", studentHandler.List)
	api.POST("/events/:id/students", guard, studentHandler.Create)
	api.PUT("/events/:id/students/bulk", guard, studentHandler.BulkReplace)
	api.PUT("/students/:id", guard, studentHandler.Update)
	api.DELETE("/students/:id", guard, studentHandler.Delete)

	api.GET("/events/:id/interviewers", interviewerHandler.List)
	api.POST("/events/:id/interviewers", guard, interviewerHandler.Create)
	api.PUT("/events/:id/interviewers/bulk", guard, interviewerHandler.BulkReplace)
	api.PUT("/interviewers/:id", guard, interviewerHandler.Update)
	api.DELETE("/interviewers/:id", guard, interviewerHandler.Delete)

	api.POST("/solve", guard, solveHandler.Solve)
	api.POST("/events/:id/solve", guard, solveHandler.SolveEvent)
	api.POST("/validate", solveHandler.Validate)

	api.GET("/schedules", scheduleHandler.List)
	api.GET("/schedules/:id", scheduleHandler.Get)
	api.DELETE("/schedules/:id", guard, scheduleHandler.Delete)
	api.GET("/events/:id/schedule", scheduleHandler.Latest)
	api.POST("/events/:id/schedule", guard, scheduleHandler.Save)
	api.DELETE("/events/:id/schedule", guard, scheduleHandler.Clear)
	api.GET("/schedules/:id/export/csv", scheduleHandler.ExportCSV)
	api.GET("/schedules/:id/export/pdf", scheduleHandler.ExportPDF)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
