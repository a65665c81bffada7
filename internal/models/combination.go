package models

import "sort"

// Assignment binds a requested course to the one section chosen for it.
type Assignment struct {
	CourseCode string  `json:"courseCode"`
	Section    Section `json:"section"`
}

// Combination is a candidate schedule: exactly one section per requested
// course, with no two chosen sections overlapping in time. Combinations are
// never mutated after creation.
type Combination struct {
	Assignments  []Assignment `json:"assignments"`
	TotalCredits float64      `json:"totalCredits"`
	Days         []Weekday    `json:"days"`
	Campuses     []string     `json:"campuses"`
}

// NewCombination derives the credit total, occupied days and campus list from
// the chosen assignments.
func NewCombination(assignments []Assignment) Combination {
	comb := Combination{Assignments: assignments}
	daySet := make(map[Weekday]struct{})
	campusSet := make(map[string]struct{})
	for _, a := range assignments {
		comb.TotalCredits += a.Section.Credits
		for _, slot := range a.Section.Slots {
			for _, day := range slot.Days {
				daySet[day] = struct{}{}
			}
			if slot.Campus != "" {
				campusSet[slot.Campus] = struct{}{}
			}
		}
	}
	for day := range daySet {
		comb.Days = append(comb.Days, day)
	}
	SortWeekdays(comb.Days)
	for campus := range campusSet {
		comb.Campuses = append(comb.Campuses, campus)
	}
	sort.Strings(comb.Campuses)
	return comb
}

// OccupiesDay reports whether any chosen section meets on the given day.
func (c Combination) OccupiesDay(day Weekday) bool {
	for _, d := range c.Days {
		if d == day {
			return true
		}
	}
	return false
}

// RankedCombination pairs a combination with its heuristic score. Rank is
// 1-based presentation order.
type RankedCombination struct {
	Combination
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}
