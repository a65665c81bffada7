package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scarlet-scheduler/planner-api/internal/handler"
	internalmiddleware "github.com/scarlet-scheduler/planner-api/internal/middleware"
	"github.com/scarlet-scheduler/planner-api/internal/repository"
	"github.com/scarlet-scheduler/planner-api/internal/service"
	"github.com/scarlet-scheduler/planner-api/pkg/cache"
	"github.com/scarlet-scheduler/planner-api/pkg/config"
	"github.com/scarlet-scheduler/planner-api/pkg/database"
	"github.com/scarlet-scheduler/planner-api/pkg/logger"
	corsmiddleware "github.com/scarlet-scheduler/planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/scarlet-scheduler/planner-api/pkg/middleware/requestid"
)

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
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close()

	var cacheRepo *repository.CacheRepository
	if cfg.Catalog.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient)
			defer cacheRepo.Close()
		}
	}

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr, cacheRepo != nil)

	courseRepo := repository.NewCourseRepository(db)
	requirementRepo := repository.NewRequirementRepository(db)

	catalogSvc := service.NewCatalogService(courseRepo, requirementRepo, cacheSvc, metricsSvc,
		cfg.Catalog.CacheTTL, cfg.Catalog.SearchLimit, logr)
	plannerSvc := service.NewPlannerService(catalogSvc, cfg.Planner, metricsSvc, logr)

	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	plannerHandler := handler.NewPlannerHandler(plannerSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Metrics(metricsSvc))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/schedules/build", plannerHandler.Build)
		api.POST("/schedules/export", plannerHandler.Export)

		api.GET("/courses", catalogHandler.Search)
		api.GET("/courses/:code", catalogHandler.Get)
		api.GET("/courses/:code/prerequisites", catalogHandler.Prerequisites)
		api.GET("/majors/:major/requirements", catalogHandler.MajorRequirements)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
