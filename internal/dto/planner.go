package dto

import "github.com/scarlet-scheduler/planner-api/internal/models"

// ConstraintsPayload carries the user's hard filters. Day names accept the
// usual spellings ("Mon", "monday", "TH").
type ConstraintsPayload struct {
	ExcludedDays     []string `json:"excludedDays" validate:"omitempty,dive,min=1"`
	MinCredits       float64  `json:"minCredits" validate:"omitempty,min=0"`
	MaxCredits       float64  `json:"maxCredits" validate:"omitempty,min=0"`
	TargetCredits    float64  `json:"targetCredits" validate:"omitempty,min=0"`
	CompletedCourses []string `json:"completedCourses"`
	RequireOpenSeats bool     `json:"requireOpenSeats"`
}

// BudgetPayload caps the search. Zero values fall back to server defaults.
type BudgetPayload struct {
	MaxResults int `json:"maxResults" validate:"omitempty,min=1"`
	MaxNodes   int `json:"maxNodes" validate:"omitempty,min=1"`
}

// BuildScheduleRequest asks the planner for ranked conflict-free
// combinations of the requested courses. An empty course list is a valid
// "nothing to schedule" request.
type BuildScheduleRequest struct {
	Courses     []string           `json:"courses" validate:"omitempty,dive,min=1"`
	Constraints ConstraintsPayload `json:"constraints"`
	Budget      BudgetPayload      `json:"budget"`
}

// BuildScheduleResponse returns ranked combinations plus structured
// diagnostics. Infeasible lists requested courses left with no candidate
// sections after filtering.
type BuildScheduleResponse struct {
	Combinations  []models.RankedCombination `json:"combinations"`
	Infeasible    []string                   `json:"infeasible,omitempty"`
	Warnings      []models.Warning           `json:"warnings,omitempty"`
	NodesExplored int                        `json:"nodesExplored"`
}

// ExportScheduleRequest renders a chosen combination as a downloadable
// weekly timetable.
type ExportScheduleRequest struct {
	Format      string             `json:"format" validate:"required,oneof=csv pdf"`
	Title       string             `json:"title" validate:"omitempty,max=120"`
	Combination models.Combination `json:"combination" validate:"required"`
}
