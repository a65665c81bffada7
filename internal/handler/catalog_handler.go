package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/scarlet-scheduler/planner-api/internal/dto"
	"github.com/scarlet-scheduler/planner-api/internal/models"
	"github.com/scarlet-scheduler/planner-api/internal/service"
	"github.com/scarlet-scheduler/planner-api/pkg/response"
)

type courseCatalog interface {
	GetCourse(ctx context.Context, code string) (*models.Course, error)
	Search(ctx context.Context, query string, limit int) ([]dto.CourseSummary, error)
	Prerequisites(ctx context.Context, code string, completed []string) (*dto.PrerequisiteStatus, error)
	MajorRequirements(ctx context.Context, major string) (*models.MajorRequirements, error)
}

// CatalogHandler exposes course catalog lookups.
type CatalogHandler struct {
	service courseCatalog
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Get returns one course with its sections and meeting times.
func (h *CatalogHandler) Get(c *gin.Context) {
	course, err := h.service.GetCourse(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course)
}

// Search returns catalog summaries matching ?q= by code or title.
func (h *CatalogHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	hits, err := h.service.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{"total": len(hits)}
	response.JSON(c, http.StatusOK, hits, meta)
}

// Prerequisites reports whether ?completed= covers the course's
// prerequisites.
func (h *CatalogHandler) Prerequisites(c *gin.Context) {
	status, err := h.service.Prerequisites(c.Request.Context(), c.Param("code"), splitList(c.Query("completed")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// MajorRequirements returns the required and elective courses for a major.
func (h *CatalogHandler) MajorRequirements(c *gin.Context) {
	reqs, err := h.service.MajorRequirements(c.Request.Context(), c.Param("major"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reqs)
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
