package scheduler

import "github.com/scarlet-scheduler/planner-api/internal/models"

// FilterSections applies the pre-search, section-level constraints: drop
// sections meeting on an excluded day and, when the user insists on open
// seats, drop closed sections. Waitlisted sections survive an open-seat
// filter since students can still queue for them.
func FilterSections(course models.Course, cs models.ConstraintSet) []models.Section {
	filtered := make([]models.Section, 0, len(course.Sections))
	for _, section := range course.Sections {
		if cs.RequireOpenSeats && section.SeatStatus == models.SeatClosed {
			continue
		}
		if meetsOnExcludedDay(section, cs) {
			continue
		}
		filtered = append(filtered, section)
	}
	return filtered
}

func meetsOnExcludedDay(section models.Section, cs models.ConstraintSet) bool {
	for _, day := range cs.ExcludedDays {
		if section.MeetsOn(day) {
			return true
		}
	}
	return false
}

// MissingPrerequisites returns the prerequisite codes of the course that are
// not covered by the completed set. This is a report-only check: the planner
// flags the course but leaves the decision to proceed to the caller.
func MissingPrerequisites(course models.Course, cs models.ConstraintSet) []string {
	var missing []string
	for _, prereq := range course.Prerequisites {
		if !cs.Completed(prereq) {
			missing = append(missing, prereq)
		}
	}
	return missing
}
