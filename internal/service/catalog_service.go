package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scarlet-scheduler/planner-api/internal/dto"
	"github.com/scarlet-scheduler/planner-api/internal/models"
	"github.com/scarlet-scheduler/planner-api/internal/scheduler"
	appErrors "github.com/scarlet-scheduler/planner-api/pkg/errors"
)

const courseCacheKeyPrefix = "catalog:course:"

// CourseStore abstracts catalog persistence.
type CourseStore interface {
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	Search(ctx context.Context, query string, limit int) ([]models.Course, error)
}

// RequirementStore abstracts degree requirement persistence.
type RequirementStore interface {
	MajorRequirements(ctx context.Context, major string) (*models.MajorRequirements, error)
}

// CatalogService serves course catalog lookups with a cache-aside layer in
// front of Postgres.
type CatalogService struct {
	courses      CourseStore
	requirements RequirementStore
	cache        *CacheService
	metrics      *MetricsService
	cacheTTL     time.Duration
	searchLimit  int
	logger       *zap.Logger
}

// NewCatalogService constructs a catalog service.
func NewCatalogService(courses CourseStore, requirements RequirementStore, cache *CacheService, metrics *MetricsService, cacheTTL time.Duration, searchLimit int, logger *zap.Logger) *CatalogService {
	if searchLimit <= 0 {
		searchLimit = 20
	}
	return &CatalogService{
		courses:      courses,
		requirements: requirements,
		cache:        cache,
		metrics:      metrics,
		cacheTTL:     cacheTTL,
		searchLimit:  searchLimit,
		logger:       logger,
	}
}

// GetCourse loads one course with its sections, consulting the cache first.
func (s *CatalogService) GetCourse(ctx context.Context, code string) (*models.Course, error) {
	code = models.NormalizeCourseCode(code)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course code is required")
	}

	key := courseCacheKeyPrefix + code
	var cached models.Course
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	start := time.Now()
	course, err := s.courses.GetByCode(ctx, code)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("course_get", time.Since(start))
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnknownCourse, fmt.Sprintf("course %s not found in catalog", code))
		}
		return nil, fmt.Errorf("load course %s: %w", code, err)
	}

	if err := s.cache.Set(ctx, key, course, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.Debug("course cache write skipped", zap.String("code", code), zap.Error(err))
	}
	return course, nil
}

// Search returns catalog summaries matching a code or title fragment.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]dto.CourseSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "search query is required")
	}
	if limit <= 0 || limit > s.searchLimit {
		limit = s.searchLimit
	}

	start := time.Now()
	courses, err := s.courses.Search(ctx, query, limit)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("course_search", time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("search catalog: %w", err)
	}

	summaries := make([]dto.CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, dto.CourseSummary{
			Code:    course.Code,
			Title:   course.Title,
			Credits: course.Credits,
		})
	}
	return summaries, nil
}

// Prerequisites reports which prerequisites of a course the completed set
// leaves uncovered.
func (s *CatalogService) Prerequisites(ctx context.Context, code string, completed []string) (*dto.PrerequisiteStatus, error) {
	course, err := s.GetCourse(ctx, code)
	if err != nil {
		return nil, err
	}

	cs := models.ConstraintSet{CompletedCourses: completed}
	missing := scheduler.MissingPrerequisites(*course, cs)

	return &dto.PrerequisiteStatus{
		CourseCode:    course.Code,
		Prerequisites: course.Prerequisites,
		Missing:       missing,
		Satisfied:     len(missing) == 0,
	}, nil
}

// MajorRequirements returns the required and elective codes for a major.
func (s *CatalogService) MajorRequirements(ctx context.Context, major string) (*models.MajorRequirements, error) {
	major = strings.TrimSpace(major)
	if major == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "major is required")
	}

	start := time.Now()
	reqs, err := s.requirements.MajorRequirements(ctx, major)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("major_requirements", time.Since(start))
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no requirements recorded for major %q", major))
		}
		return nil, fmt.Errorf("load requirements for %s: %w", major, err)
	}
	return reqs, nil
}

// InvalidateCourses drops all cached course payloads. Called after a catalog
// import.
func (s *CatalogService) InvalidateCourses(ctx context.Context) error {
	return s.cache.Invalidate(ctx, courseCacheKeyPrefix+"*")
}
