// Package csvio loads catalog snapshots from CSV exports. Each row is one
// weekly meeting block; rows sharing a course code and section number are
// folded into a single section.
package csvio

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/scarlet-scheduler/planner-api/internal/models"
)

type catalogRow struct {
	CourseCode    string  `csv:"course_code"`
	Title         string  `csv:"title"`
	Credits       float64 `csv:"credits"`
	Prerequisites string  `csv:"prerequisites"`
	Section       string  `csv:"section"`
	SeatStatus    string  `csv:"seat_status"`
	Instructors   string  `csv:"instructors"`
	Days          string  `csv:"days"`
	Start         string  `csv:"start"`
	End           string  `csv:"end"`
	Campus        string  `csv:"campus"`
	Room          string  `csv:"room"`
}

// LoadCatalog parses a catalog CSV into courses. Rows with blank days and
// times become sections without fixed meetings (online or by arrangement).
// Course and section order follows first appearance in the file.
func LoadCatalog(r io.Reader) ([]models.Course, error) {
	var rows []*catalogRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse catalog csv: %w", err)
	}

	var codes []string
	courses := make(map[string]*models.Course)
	sectionIndex := make(map[string]int)

	for i, row := range rows {
		code := models.NormalizeCourseCode(row.CourseCode)
		if code == "" {
			return nil, fmt.Errorf("row %d: missing course_code", i+2)
		}
		if row.Section == "" {
			return nil, fmt.Errorf("row %d: missing section for %s", i+2, code)
		}

		course, ok := courses[code]
		if !ok {
			course = &models.Course{
				Code:          code,
				Title:         strings.TrimSpace(row.Title),
				Credits:       row.Credits,
				Prerequisites: splitField(row.Prerequisites),
			}
			courses[code] = course
			codes = append(codes, code)
		}

		sectionKey := code + "/" + row.Section
		idx, ok := sectionIndex[sectionKey]
		if !ok {
			status := models.SeatStatus(strings.ToLower(strings.TrimSpace(row.SeatStatus)))
			if status == "" {
				status = models.SeatOpen
			}
			credits := row.Credits
			if credits == 0 {
				credits = course.Credits
			}
			course.Sections = append(course.Sections, models.Section{
				Number:      row.Section,
				CourseCode:  code,
				SeatStatus:  status,
				Credits:     credits,
				Instructors: splitField(row.Instructors),
			})
			idx = len(course.Sections) - 1
			sectionIndex[sectionKey] = idx
		}

		slot, hasSlot, err := parseSlot(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if hasSlot {
			course.Sections[idx].Slots = append(course.Sections[idx].Slots, slot)
		}
	}

	result := make([]models.Course, 0, len(codes))
	for _, code := range codes {
		result = append(result, *courses[code])
	}
	return result, nil
}

func parseSlot(row *catalogRow) (models.TimeSlot, bool, error) {
	if strings.TrimSpace(row.Days) == "" && strings.TrimSpace(row.Start) == "" {
		return models.TimeSlot{}, false, nil
	}

	var days []models.Weekday
	for _, token := range strings.Split(row.Days, "/") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		day, err := models.ParseWeekday(token)
		if err != nil {
			return models.TimeSlot{}, false, err
		}
		days = append(days, day)
	}
	models.SortWeekdays(days)

	start, err := parseClock(row.Start)
	if err != nil {
		return models.TimeSlot{}, false, err
	}
	end, err := parseClock(row.End)
	if err != nil {
		return models.TimeSlot{}, false, err
	}
	if end <= start {
		return models.TimeSlot{}, false, fmt.Errorf("meeting ends (%s) before it starts (%s)", row.End, row.Start)
	}

	return models.TimeSlot{
		Days:   days,
		Start:  start,
		End:    end,
		Campus: strings.ToUpper(strings.TrimSpace(row.Campus)),
		Room:   strings.TrimSpace(row.Room),
	}, true, nil
}

// parseClock reads "HH:MM" into minutes since midnight.
func parseClock(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("malformed time %q", raw)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("malformed time %q", raw)
	}
	return hours*60 + minutes, nil
}

func splitField(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
