package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scarlet-scheduler/planner-api/internal/models"
	appErrors "github.com/scarlet-scheduler/planner-api/pkg/errors"
)

type courseStoreStub struct {
	courses map[string]*models.Course
}

func (s *courseStoreStub) GetByCode(_ context.Context, code string) (*models.Course, error) {
	if course, ok := s.courses[code]; ok {
		return course, nil
	}
	return nil, sql.ErrNoRows
}

func (s *courseStoreStub) Search(_ context.Context, query string, limit int) ([]models.Course, error) {
	var hits []models.Course
	for _, course := range s.courses {
		if strings.Contains(strings.ToLower(course.Title), strings.ToLower(query)) {
			hits = append(hits, *course)
		}
		if len(hits) >= limit {
			break
		}
	}
	return hits, nil
}

type requirementStoreStub struct {
	byMajor map[string]*models.MajorRequirements
}

func (s *requirementStoreStub) MajorRequirements(_ context.Context, major string) (*models.MajorRequirements, error) {
	if reqs, ok := s.byMajor[major]; ok {
		return reqs, nil
	}
	return nil, sql.ErrNoRows
}

func newTestCatalog() *CatalogService {
	courses := &courseStoreStub{courses: map[string]*models.Course{
		"01:198:112": {
			Code:          "01:198:112",
			Title:         "Data Structures",
			Credits:       4,
			Prerequisites: []string{"01:198:111", "01:640:152"},
		},
	}}
	requirements := &requirementStoreStub{byMajor: map[string]*models.MajorRequirements{
		"computer-science": {
			Major:    "computer-science",
			Required: []string{"01:198:111", "01:198:112"},
		},
	}}
	cache := NewCacheService(nil, nil, time.Minute, zap.NewNop(), false)
	return NewCatalogService(courses, requirements, cache, nil, time.Minute, 20, zap.NewNop())
}

func TestCatalogGetCourse(t *testing.T) {
	svc := newTestCatalog()

	course, err := svc.GetCourse(context.Background(), "01:198:112")
	require.NoError(t, err)
	assert.Equal(t, "Data Structures", course.Title)
}

func TestCatalogGetCourseNormalizesCode(t *testing.T) {
	svc := newTestCatalog()

	course, err := svc.GetCourse(context.Background(), "  01:198:112 ")
	require.NoError(t, err)
	assert.Equal(t, "01:198:112", course.Code)
}

func TestCatalogGetCourseUnknown(t *testing.T) {
	svc := newTestCatalog()

	_, err := svc.GetCourse(context.Background(), "01:999:999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnknownCourse.Code, appErrors.FromError(err).Code)
}

func TestCatalogSearchRequiresQuery(t *testing.T) {
	svc := newTestCatalog()

	_, err := svc.Search(context.Background(), "  ", 10)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCatalogSearch(t *testing.T) {
	svc := newTestCatalog()

	hits, err := svc.Search(context.Background(), "data", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "01:198:112", hits[0].Code)
}

func TestCatalogPrerequisites(t *testing.T) {
	svc := newTestCatalog()

	status, err := svc.Prerequisites(context.Background(), "01:198:112", []string{"01:198:111"})
	require.NoError(t, err)

	assert.False(t, status.Satisfied)
	assert.Equal(t, []string{"01:640:152"}, status.Missing)

	status, err = svc.Prerequisites(context.Background(), "01:198:112", []string{"01:198:111", "01:640:152"})
	require.NoError(t, err)
	assert.True(t, status.Satisfied)
	assert.Empty(t, status.Missing)
}

func TestCatalogMajorRequirements(t *testing.T) {
	svc := newTestCatalog()

	reqs, err := svc.MajorRequirements(context.Background(), "computer-science")
	require.NoError(t, err)
	assert.Len(t, reqs.Required, 2)

	_, err = svc.MajorRequirements(context.Background(), "underwater-basketry")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
