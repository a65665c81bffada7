package models

import (
	"fmt"
	"sort"
	"strings"
)

// Weekday identifies a meeting day. Catalog data only covers Mon-Fri.
type Weekday string

const (
	Monday    Weekday = "Mon"
	Tuesday   Weekday = "Tue"
	Wednesday Weekday = "Wed"
	Thursday  Weekday = "Thu"
	Friday    Weekday = "Fri"
)

// Weekdays lists all schedulable days in calendar order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayAliases = map[string]Weekday{
	"MON": Monday, "MONDAY": Monday, "M": Monday,
	"TUE": Tuesday, "TUESDAY": Tuesday, "T": Tuesday,
	"WED": Wednesday, "WEDNESDAY": Wednesday, "W": Wednesday,
	"THU": Thursday, "THURSDAY": Thursday, "TH": Thursday,
	"FRI": Friday, "FRIDAY": Friday, "F": Friday,
}

var weekdayOrder = map[Weekday]int{
	Monday: 0, Tuesday: 1, Wednesday: 2, Thursday: 3, Friday: 4,
}

// ParseWeekday resolves common day spellings ("Mon", "monday", "TH") into a
// canonical Weekday.
func ParseWeekday(raw string) (Weekday, error) {
	if day, ok := weekdayAliases[strings.ToUpper(strings.TrimSpace(raw))]; ok {
		return day, nil
	}
	return "", fmt.Errorf("unknown weekday %q", raw)
}

// SortWeekdays orders days Monday first. The input slice is sorted in place.
func SortWeekdays(days []Weekday) {
	sort.SliceStable(days, func(i, j int) bool {
		return weekdayOrder[days[i]] < weekdayOrder[days[j]]
	})
}

// SeatStatus reflects catalog enrolment state for a section.
type SeatStatus string

const (
	SeatOpen       SeatStatus = "open"
	SeatClosed     SeatStatus = "closed"
	SeatWaitlisted SeatStatus = "waitlisted"
)

// TimeSlot is one recurring weekly meeting block. A slot listing several days
// repeats the identical time range on each of them. Times are whole minutes
// since midnight, local time. Slots are treated as immutable after catalog
// ingestion.
type TimeSlot struct {
	Days   []Weekday `json:"days"`
	Start  int       `json:"start"`
	End    int       `json:"end"`
	Campus string    `json:"campus"`
	Room   string    `json:"room,omitempty"`
}

// Online reports whether the slot has no fixed weekly meeting time. Arranged
// and online slots are scheduled but never time-bound, so they cannot
// conflict with anything.
func (t TimeSlot) Online() bool {
	return len(t.Days) == 0 || strings.Contains(strings.ToUpper(t.Campus), "ONLINE")
}

// MeetsOn reports whether the slot occupies the given day.
func (t TimeSlot) MeetsOn(day Weekday) bool {
	for _, d := range t.Days {
		if d == day {
			return true
		}
	}
	return false
}

// SharesDay reports whether two slots have at least one weekday in common.
func (t TimeSlot) SharesDay(other TimeSlot) bool {
	for _, d := range t.Days {
		if other.MeetsOn(d) {
			return true
		}
	}
	return false
}

// Section is one offered instance of a course. A section with zero time slots
// (fully online or hours-by-arrangement) can never conflict.
type Section struct {
	Number      string     `json:"number"`
	CourseCode  string     `json:"courseCode"`
	Slots       []TimeSlot `json:"timeSlots"`
	Instructors []string   `json:"instructors,omitempty"`
	SeatStatus  SeatStatus `json:"seatStatus"`
	Credits     float64    `json:"credits"`
}

// MeetsOn reports whether any slot of the section occupies the given day.
func (s Section) MeetsOn(day Weekday) bool {
	for _, slot := range s.Slots {
		if slot.MeetsOn(day) {
			return true
		}
	}
	return false
}

// Course is a catalog entry aggregating its offered sections. Courses are
// loaded once per planning request and never mutated by the search.
type Course struct {
	Code          string    `json:"code"`
	Title         string    `json:"title"`
	Credits       float64   `json:"credits"`
	Prerequisites []string  `json:"prerequisites,omitempty"`
	Sections      []Section `json:"sections"`
}

// NormalizeCourseCode canonicalises a course code for catalog lookups.
func NormalizeCourseCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
