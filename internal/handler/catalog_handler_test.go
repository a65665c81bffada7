package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarlet-scheduler/planner-api/internal/dto"
	"github.com/scarlet-scheduler/planner-api/internal/models"
	appErrors "github.com/scarlet-scheduler/planner-api/pkg/errors"
)

type catalogMock struct {
	course       *models.Course
	summaries    []dto.CourseSummary
	status       *dto.PrerequisiteStatus
	requirements *models.MajorRequirements
	err          error

	lastCompleted []string
}

func (m *catalogMock) GetCourse(_ context.Context, code string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

func (m *catalogMock) Search(_ context.Context, query string, limit int) ([]dto.CourseSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summaries, nil
}

func (m *catalogMock) Prerequisites(_ context.Context, code string, completed []string) (*dto.PrerequisiteStatus, error) {
	m.lastCompleted = completed
	if m.err != nil {
		return nil, m.err
	}
	return m.status, nil
}

func (m *catalogMock) MajorRequirements(_ context.Context, major string) (*models.MajorRequirements, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.requirements, nil
}

func getRequest(t *testing.T, handlerFn gin.HandlerFunc, path string, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	handlerFn(c)
	return w
}

func TestCatalogGetSuccess(t *testing.T) {
	mockSvc := &catalogMock{course: &models.Course{Code: "01:198:112", Title: "Data Structures"}}
	handler := &CatalogHandler{service: mockSvc}

	w := getRequest(t, handler.Get, "/courses/01:198:112",
		gin.Params{{Key: "code", Value: "01:198:112"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Data Structures")
}

func TestCatalogGetUnknown(t *testing.T) {
	handler := &CatalogHandler{service: &catalogMock{err: appErrors.ErrUnknownCourse}}

	w := getRequest(t, handler.Get, "/courses/01:999:999",
		gin.Params{{Key: "code", Value: "01:999:999"}})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), appErrors.ErrUnknownCourse.Code)
}

func TestCatalogSearchMeta(t *testing.T) {
	handler := &CatalogHandler{service: &catalogMock{summaries: []dto.CourseSummary{
		{Code: "01:198:112", Title: "Data Structures", Credits: 4},
	}}}

	w := getRequest(t, handler.Search, "/courses?q=data", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestCatalogPrerequisitesParsesCompletedList(t *testing.T) {
	mockSvc := &catalogMock{status: &dto.PrerequisiteStatus{CourseCode: "01:198:112", Satisfied: true}}
	handler := &CatalogHandler{service: mockSvc}

	w := getRequest(t, handler.Prerequisites,
		"/courses/01:198:112/prerequisites?completed=01:198:111,%2001:640:152",
		gin.Params{{Key: "code", Value: "01:198:112"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"01:198:111", "01:640:152"}, mockSvc.lastCompleted)
}

func TestCatalogMajorRequirements(t *testing.T) {
	handler := &CatalogHandler{service: &catalogMock{requirements: &models.MajorRequirements{
		Major:    "computer-science",
		Required: []string{"01:198:111"},
	}}}

	w := getRequest(t, handler.MajorRequirements, "/majors/computer-science/requirements",
		gin.Params{{Key: "major", Value: "computer-science"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "computer-science")
}
