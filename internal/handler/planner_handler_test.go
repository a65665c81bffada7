package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarlet-scheduler/planner-api/internal/dto"
	"github.com/scarlet-scheduler/planner-api/internal/models"
	"github.com/scarlet-scheduler/planner-api/internal/service"
	appErrors "github.com/scarlet-scheduler/planner-api/pkg/errors"
)

type plannerMock struct {
	captured dto.BuildScheduleRequest
	response *dto.BuildScheduleResponse
	err      error
	artifact *service.ExportArtifact
}

func (m *plannerMock) BuildSchedules(_ context.Context, req dto.BuildScheduleRequest) (*dto.BuildScheduleResponse, error) {
	m.captured = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func (m *plannerMock) Export(_ dto.ExportScheduleRequest) (*service.ExportArtifact, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.artifact, nil
}

func postJSON(t *testing.T, handlerFn gin.HandlerFunc, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handlerFn(c)
	return w
}

func TestPlannerBuildSuccess(t *testing.T) {
	mockSvc := &plannerMock{response: &dto.BuildScheduleResponse{
		Combinations: []models.RankedCombination{{Rank: 1, Score: 240}},
	}}
	handler := &PlannerHandler{service: mockSvc}

	w := postJSON(t, handler.Build, "/schedules/build",
		[]byte(`{"courses":["01:198:111"],"constraints":{"excludedDays":["Fri"]}}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"01:198:111"}, mockSvc.captured.Courses)
	assert.Equal(t, []string{"Fri"}, mockSvc.captured.Constraints.ExcludedDays)

	var envelope struct {
		Data dto.BuildScheduleResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Combinations, 1)
	assert.Equal(t, 1, envelope.Data.Combinations[0].Rank)
}

func TestPlannerBuildMalformedBody(t *testing.T) {
	handler := &PlannerHandler{service: &plannerMock{}}

	w := postJSON(t, handler.Build, "/schedules/build", []byte(`{"courses":`))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlannerBuildTooManyCourses(t *testing.T) {
	handler := &PlannerHandler{service: &plannerMock{}}

	courses := make([]string, maxRequestedCourses+1)
	for i := range courses {
		courses[i] = "01:198:111"
	}
	body, err := json.Marshal(dto.BuildScheduleRequest{Courses: courses})
	require.NoError(t, err)

	w := postJSON(t, handler.Build, "/schedules/build", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlannerBuildServiceError(t *testing.T) {
	handler := &PlannerHandler{service: &plannerMock{
		err: appErrors.Clone(appErrors.ErrValidation, "minCredits exceeds maxCredits"),
	}}

	w := postJSON(t, handler.Build, "/schedules/build", []byte(`{"courses":["01:198:111"]}`))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "minCredits exceeds maxCredits")
}

func TestPlannerExport(t *testing.T) {
	handler := &PlannerHandler{service: &plannerMock{artifact: &service.ExportArtifact{
		Filename:    "schedule-ab12cd34.csv",
		ContentType: "text/csv",
		Data:        []byte("Day,Start\n"),
	}}}

	w := postJSON(t, handler.Export, "/schedules/export",
		[]byte(`{"format":"csv","combination":{"assignments":[]}}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "schedule-ab12cd34.csv")
	assert.Equal(t, "Day,Start\n", w.Body.String())
}
