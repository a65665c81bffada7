// Command importer loads a catalog CSV snapshot into Postgres and drops the
// stale course cache entries.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/scarlet-scheduler/planner-api/internal/csvio"
	"github.com/scarlet-scheduler/planner-api/internal/repository"
	"github.com/scarlet-scheduler/planner-api/internal/service"
	"github.com/scarlet-scheduler/planner-api/pkg/cache"
	"github.com/scarlet-scheduler/planner-api/pkg/config"
	"github.com/scarlet-scheduler/planner-api/pkg/database"
	"github.com/scarlet-scheduler/planner-api/pkg/logger"
)

func main() {
	path := flag.String("file", "", "path to the catalog csv snapshot")
	timeout := flag.Duration("timeout", 5*time.Minute, "import deadline")
	flag.Parse()

	if *path == "" {
		log.Fatal("usage: importer -file catalog.csv")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	file, err := os.Open(*path)
	if err != nil {
		logr.Sugar().Fatalw("open catalog file failed", "path", *path, "error", err)
	}
	defer file.Close()

	courses, err := csvio.LoadCatalog(file)
	if err != nil {
		logr.Sugar().Fatalw("catalog parse failed", "path", *path, "error", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("postgres connection failed", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	repo := repository.NewCourseRepository(db)
	if err := repo.ReplaceCatalog(ctx, courses); err != nil {
		logr.Sugar().Fatalw("catalog import failed", "error", err)
	}

	if cfg.Catalog.CacheEnabled {
		if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
			logr.Sugar().Warnw("redis unavailable, stale cache entries not dropped", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient)
			cacheSvc := service.NewCacheService(cacheRepo, nil, cfg.Catalog.CacheTTL, logr, true)
			if err := cacheSvc.Invalidate(ctx, "catalog:course:*"); err != nil {
				logr.Sugar().Warnw("cache invalidation failed", "error", err)
			}
			_ = cacheRepo.Close()
		}
	}

	logr.Sugar().Infow("catalog import finished", "courses", len(courses))
}
