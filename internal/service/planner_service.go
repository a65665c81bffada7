package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scarlet-scheduler/planner-api/internal/dto"
	"github.com/scarlet-scheduler/planner-api/internal/models"
	"github.com/scarlet-scheduler/planner-api/internal/scheduler"
	"github.com/scarlet-scheduler/planner-api/pkg/config"
	appErrors "github.com/scarlet-scheduler/planner-api/pkg/errors"
	"github.com/scarlet-scheduler/planner-api/pkg/export"
)

// CourseResolver is the slice of the catalog the planner needs.
type CourseResolver interface {
	GetCourse(ctx context.Context, code string) (*models.Course, error)
}

// ExportArtifact is a rendered timetable ready for download.
type ExportArtifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// PlannerService turns a planning request into ranked conflict-free
// combinations, and renders chosen combinations for download.
type PlannerService struct {
	catalog  CourseResolver
	cfg      config.PlannerConfig
	travel   scheduler.TravelTable
	weights  scheduler.Weights
	metrics  *MetricsService
	validate *validator.Validate
	logger   *zap.Logger
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
}

// NewPlannerService constructs a planner service from configuration.
func NewPlannerService(catalog CourseResolver, cfg config.PlannerConfig, metrics *MetricsService, logger *zap.Logger) *PlannerService {
	weights := scheduler.DefaultWeights()
	if cfg.DayOffBonus > 0 {
		weights.DayOffBonus = cfg.DayOffBonus
	}
	if cfg.GapPenaltyPerMinute > 0 {
		weights.GapPenaltyPerMinute = cfg.GapPenaltyPerMinute
	}
	if cfg.CreditPenalty > 0 {
		weights.CreditPenalty = cfg.CreditPenalty
	}
	if cfg.CampusBonus > 0 {
		weights.CampusBonus = cfg.CampusBonus
	}

	return &PlannerService{
		catalog:  catalog,
		cfg:      cfg,
		travel:   scheduler.NewTravelTable(cfg.TravelDefaultMinutes, cfg.TravelPairs),
		weights:  weights,
		metrics:  metrics,
		validate: validator.New(),
		logger:   logger,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
	}
}

// BuildSchedules enumerates and ranks conflict-free combinations for the
// requested courses. Unknown and already-completed courses are reported as
// warnings and skipped; a course left with zero candidate sections makes the
// request infeasible and yields no combinations.
func (s *PlannerService) BuildSchedules(ctx context.Context, req dto.BuildScheduleRequest) (*dto.BuildScheduleResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid planning request")
	}

	cs, err := s.buildConstraints(req.Constraints)
	if err != nil {
		return nil, err
	}

	resp := &dto.BuildScheduleResponse{}

	var pools []scheduler.CoursePool
	for _, code := range dedupeCodes(req.Courses) {
		if cs.Completed(code) {
			resp.Warnings = append(resp.Warnings, models.Warning{
				Code:       models.WarningCompletedSkipped,
				CourseCode: code,
				Message:    fmt.Sprintf("%s is already completed and was not scheduled", code),
			})
			continue
		}

		course, err := s.catalog.GetCourse(ctx, code)
		if err != nil {
			if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrUnknownCourse.Code {
				resp.Warnings = append(resp.Warnings, models.Warning{
					Code:       models.WarningUnknownCourse,
					CourseCode: code,
					Message:    fmt.Sprintf("%s is not in the catalog", code),
				})
				continue
			}
			return nil, err
		}

		if missing := scheduler.MissingPrerequisites(*course, cs); len(missing) > 0 {
			resp.Warnings = append(resp.Warnings, models.Warning{
				Code:       models.WarningPrereqUnmet,
				CourseCode: course.Code,
				Message:    fmt.Sprintf("%s has unmet prerequisites: %s", course.Code, strings.Join(missing, ", ")),
			})
		}

		pools = append(pools, scheduler.CoursePool{
			Course:   *course,
			Sections: scheduler.FilterSections(*course, cs),
		})
	}

	opts := scheduler.SearchOptions{
		Budget:      s.clampBudget(req.Budget),
		Travel:      s.travel,
		Constraints: cs,
	}

	searchCtx := ctx
	if s.cfg.SearchTimeout > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, s.cfg.SearchTimeout)
		defer cancel()
	}

	start := time.Now()
	result := scheduler.Search(searchCtx, pools, opts)
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveSearch(result.Nodes, len(result.Combinations), result.Exhausted, elapsed)
	}

	for _, code := range result.Infeasible {
		resp.Warnings = append(resp.Warnings, models.Warning{
			Code:       models.WarningNoFeasibleSections,
			CourseCode: code,
			Message:    fmt.Sprintf("%s has no sections satisfying the constraints", code),
		})
	}
	if result.Exhausted {
		resp.Warnings = append(resp.Warnings, models.Warning{
			Code:    models.WarningBudgetExceeded,
			Message: "search stopped early on its budget; results may be incomplete",
		})
	}

	resp.Infeasible = result.Infeasible
	resp.NodesExplored = result.Nodes
	resp.Combinations = scheduler.Rank(result.Combinations, cs, s.weights)

	if s.logger != nil {
		s.logger.Info("schedule search finished",
			zap.Int("courses", len(pools)),
			zap.Int("combinations", len(resp.Combinations)),
			zap.Int("nodes", result.Nodes),
			zap.Bool("exhausted", result.Exhausted),
			zap.Duration("elapsed", elapsed))
	}

	return resp, nil
}

// Export renders a combination as a downloadable weekly timetable.
func (s *PlannerService) Export(req dto.ExportScheduleRequest) (*ExportArtifact, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export request")
	}

	title := req.Title
	if title == "" {
		title = "Weekly Schedule"
	}

	data := timetableDataset(req.Combination)
	name := fmt.Sprintf("schedule-%s", uuid.NewString()[:8])

	switch req.Format {
	case "csv":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, fmt.Errorf("render csv timetable: %w", err)
		}
		return &ExportArtifact{Filename: name + ".csv", ContentType: "text/csv", Data: payload}, nil
	case "pdf":
		payload, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, fmt.Errorf("render pdf timetable: %w", err)
		}
		return &ExportArtifact{Filename: name + ".pdf", ContentType: "application/pdf", Data: payload}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", req.Format))
	}
}

func (s *PlannerService) buildConstraints(payload dto.ConstraintsPayload) (models.ConstraintSet, error) {
	cs := models.ConstraintSet{
		MinCredits:       payload.MinCredits,
		MaxCredits:       payload.MaxCredits,
		TargetCredits:    payload.TargetCredits,
		CompletedCourses: payload.CompletedCourses,
		RequireOpenSeats: payload.RequireOpenSeats,
	}

	if cs.MaxCredits > 0 && cs.MinCredits > cs.MaxCredits {
		return cs, appErrors.Clone(appErrors.ErrValidation, "minCredits exceeds maxCredits")
	}

	for _, raw := range payload.ExcludedDays {
		day, err := models.ParseWeekday(raw)
		if err != nil {
			return cs, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown excluded day %q", raw))
		}
		if !cs.DayExcluded(day) {
			cs.ExcludedDays = append(cs.ExcludedDays, day)
		}
	}

	return cs, nil
}

// clampBudget fills zero request values from configuration and caps requested
// values at the configured ceilings.
func (s *PlannerService) clampBudget(payload dto.BudgetPayload) models.SearchBudget {
	budget := models.SearchBudget{MaxResults: payload.MaxResults, MaxNodes: payload.MaxNodes}
	if budget.MaxResults <= 0 || (s.cfg.MaxResults > 0 && budget.MaxResults > s.cfg.MaxResults) {
		budget.MaxResults = s.cfg.MaxResults
	}
	if budget.MaxNodes <= 0 || (s.cfg.MaxNodes > 0 && budget.MaxNodes > s.cfg.MaxNodes) {
		budget.MaxNodes = s.cfg.MaxNodes
	}
	return budget
}

func dedupeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	result := make([]string, 0, len(codes))
	for _, raw := range codes {
		code := models.NormalizeCourseCode(raw)
		if code == "" {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		result = append(result, code)
	}
	return result
}

var timetableHeaders = []string{"Day", "Start", "End", "Course", "Section", "Campus", "Room", "Instructors"}

// timetableDataset flattens a combination into one row per meeting, ordered
// by day then start time. Online and arranged meetings come last under a
// blank day.
func timetableDataset(comb models.Combination) export.Dataset {
	type row struct {
		dayOrder int
		start    int
		values   map[string]string
	}

	var rows []row
	for _, a := range comb.Assignments {
		if len(a.Section.Slots) == 0 {
			rows = append(rows, row{
				dayOrder: len(models.Weekdays),
				values: map[string]string{
					"Day":         "",
					"Start":       "",
					"End":         "",
					"Course":      a.CourseCode,
					"Section":     a.Section.Number,
					"Campus":      "",
					"Room":        "",
					"Instructors": strings.Join(a.Section.Instructors, ", "),
				},
			})
			continue
		}
		for _, slot := range a.Section.Slots {
			instructors := strings.Join(a.Section.Instructors, ", ")
			if slot.Online() {
				rows = append(rows, row{
					dayOrder: len(models.Weekdays),
					values: map[string]string{
						"Day":         "",
						"Start":       "",
						"End":         "",
						"Course":      a.CourseCode,
						"Section":     a.Section.Number,
						"Campus":      slot.Campus,
						"Room":        slot.Room,
						"Instructors": instructors,
					},
				})
				continue
			}
			for i, day := range models.Weekdays {
				if !slot.MeetsOn(day) {
					continue
				}
				rows = append(rows, row{
					dayOrder: i,
					start:    slot.Start,
					values: map[string]string{
						"Day":         string(day),
						"Start":       formatMinutes(slot.Start),
						"End":         formatMinutes(slot.End),
						"Course":      a.CourseCode,
						"Section":     a.Section.Number,
						"Campus":      slot.Campus,
						"Room":        slot.Room,
						"Instructors": instructors,
					},
				})
			}
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].dayOrder != rows[j].dayOrder {
			return rows[i].dayOrder < rows[j].dayOrder
		}
		return rows[i].start < rows[j].start
	})

	data := export.Dataset{Headers: timetableHeaders}
	for _, r := range rows {
		data.Rows = append(data.Rows, r.values)
	}
	return data
}

func formatMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
