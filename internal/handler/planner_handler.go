package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scarlet-scheduler/planner-api/internal/dto"
	"github.com/scarlet-scheduler/planner-api/internal/service"
	appErrors "github.com/scarlet-scheduler/planner-api/pkg/errors"
	"github.com/scarlet-scheduler/planner-api/pkg/response"
)

const maxRequestedCourses = 32

type schedulePlanner interface {
	BuildSchedules(ctx context.Context, req dto.BuildScheduleRequest) (*dto.BuildScheduleResponse, error)
	Export(req dto.ExportScheduleRequest) (*service.ExportArtifact, error)
}

// PlannerHandler exposes the schedule construction endpoints.
type PlannerHandler struct {
	service schedulePlanner
}

// NewPlannerHandler constructs the handler.
func NewPlannerHandler(svc *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{service: svc}
}

// Build enumerates and ranks conflict-free schedules for the requested
// courses.
func (h *PlannerHandler) Build(c *gin.Context) {
	var req dto.BuildScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid planning payload"))
		return
	}
	if len(req.Courses) > maxRequestedCourses {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "courses exceeds supported limit"))
		return
	}

	result, err := h.service.BuildSchedules(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Export renders a chosen combination as a downloadable CSV or PDF
// timetable.
func (h *PlannerHandler) Export(c *gin.Context) {
	var req dto.ExportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	artifact, err := h.service.Export(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
