package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/curriculex/classgen/internal/handler"
	internalmiddleware "github.com/curriculex/classgen/internal/middleware"
	"github.com/curriculex/classgen/internal/repository"
	"github.com/curriculex/classgen/internal/scheduler"
	"github.com/curriculex/classgen/internal/service"
	"github.com/curriculex/classgen/pkg/cache"
	"github.com/curriculex/classgen/pkg/config"
	"github.com/curriculex/classgen/pkg/database"
	"github.com/curriculex/classgen/pkg/export"
	"github.com/curriculex/classgen/pkg/logger"
	corsmiddleware "github.com/curriculex/classgen/pkg/middleware/cors"
	reqidmiddleware "github.com/curriculex/classgen/pkg/middleware/requestid"
)

// @title Class Schedule Generator API
// @version 1.0.0
// @description Session-rule derivation, faculty ranking and constraint-based placement scheduling for campus timetables.
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, generation caches disabled", "error", err)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	courseRepo := repository.NewCourseRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	generationSvc := service.NewGenerationService(
		courseRepo, instructorRepo, roomRepo, sessionRepo, cacheRepo, validate, logr, metricsSvc,
		service.GenerationConfig{
			Engine: scheduler.Config{
				GlobalMaxUnits:      cfg.Scheduler.GlobalMaxUnits,
				CampusAdminMaxUnits: cfg.Scheduler.CampusAdminMaxUnits,
				RestBufferMinutes:   cfg.Scheduler.RestBufferMinutes,
			},
			ListCacheTTL:       cfg.Scheduler.ListCacheTTL,
			ProspectusCacheTTL: cfg.Scheduler.ProspectusCacheTTL,
		},
	)
	exportSvc := service.NewExportService(sessionRepo, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	courseHandler := handler.NewCourseHandler(courseRepo, validate)
	instructorHandler := handler.NewInstructorHandler(instructorRepo, validate)
	roomHandler := handler.NewRoomHandler(roomRepo, validate)
	generationHandler := handler.NewGenerationHandler(generationSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		schedules := api.Group("/schedules")
		schedules.POST("/generate", generationHandler.Generate)
		schedules.POST("", generationHandler.Save)
		schedules.GET("", generationHandler.List)
		schedules.GET("/prospectus", generationHandler.Prospectus)
		schedules.GET("/export", exportHandler.Export)

		courses := api.Group("/courses")
		courses.GET("", courseHandler.List)
		courses.GET("/:id", courseHandler.Get)
		courses.POST("", courseHandler.Create)
		courses.PUT("/:id", courseHandler.Update)
		courses.DELETE("/:id", courseHandler.Delete)

		instructors := api.Group("/instructors")
		instructors.GET("", instructorHandler.List)
		instructors.GET("/:id", instructorHandler.Get)
		instructors.POST("", instructorHandler.Create)
		instructors.PUT("/:id", instructorHandler.Update)
		instructors.DELETE("/:id", instructorHandler.Delete)

		rooms := api.Group("/rooms")
		rooms.GET("", roomHandler.List)
		rooms.GET("/:id", roomHandler.Get)
		rooms.POST("", roomHandler.Create)
		rooms.PUT("/:id", roomHandler.Update)
		rooms.DELETE("/:id", roomHandler.Delete)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
