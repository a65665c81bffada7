package models

// ConstraintSet holds the user's hard filters for one planning request. It is
// constructed once per request and read-only during the search.
type ConstraintSet struct {
	ExcludedDays     []Weekday `json:"excludedDays,omitempty"`
	MinCredits       float64   `json:"minCredits,omitempty"`
	MaxCredits       float64   `json:"maxCredits,omitempty"` // <= 0 means unbounded
	TargetCredits    float64   `json:"targetCredits,omitempty"`
	CompletedCourses []string  `json:"completedCourses,omitempty"`
	RequireOpenSeats bool      `json:"requireOpenSeats,omitempty"`
}

// DayExcluded reports whether the day is on the user's excluded list.
func (c ConstraintSet) DayExcluded(day Weekday) bool {
	for _, d := range c.ExcludedDays {
		if d == day {
			return true
		}
	}
	return false
}

// Completed reports whether the course code is in the completed set.
func (c ConstraintSet) Completed(code string) bool {
	code = NormalizeCourseCode(code)
	for _, done := range c.CompletedCourses {
		if NormalizeCourseCode(done) == code {
			return true
		}
	}
	return false
}

// CreditsAllowed checks the inclusive [MinCredits, MaxCredits] bounds.
func (c ConstraintSet) CreditsAllowed(total float64) bool {
	if total < c.MinCredits {
		return false
	}
	if c.MaxCredits > 0 && total > c.MaxCredits {
		return false
	}
	return true
}

// SearchBudget caps the cost of one combination search. Zero values fall back
// to configured defaults.
type SearchBudget struct {
	MaxResults int `json:"maxResults,omitempty"`
	MaxNodes   int `json:"maxNodes,omitempty"`
}

// Warning codes surfaced in planning responses.
const (
	WarningUnknownCourse      = "UNKNOWN_COURSE"
	WarningCompletedSkipped   = "COMPLETED_COURSE_SKIPPED"
	WarningPrereqUnmet        = "PREREQUISITE_UNMET"
	WarningNoFeasibleSections = "NO_FEASIBLE_SECTIONS"
	WarningBudgetExceeded     = "SEARCH_BUDGET_EXCEEDED"
)

// Warning is a structured, non-fatal diagnostic attached to a planning
// result. Error kinds are reported this way instead of being swallowed.
type Warning struct {
	Code       string `json:"code"`
	CourseCode string `json:"courseCode,omitempty"`
	Message    string `json:"message"`
}
