package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarlet-scheduler/planner-api/internal/models"
)

func TestFilterSectionsExcludedDays(t *testing.T) {
	course := models.Course{Code: "01:119:115", Sections: []models.Section{
		mkSection("01:119:115", "FRI", 4, mkSlot([]models.Weekday{models.Friday}, 600, 680, "BUSCH")),
		mkSection("01:119:115", "MW", 4, mkSlot([]models.Weekday{models.Monday, models.Wednesday}, 600, 680, "BUSCH")),
	}}
	cs := models.ConstraintSet{ExcludedDays: []models.Weekday{models.Friday}}

	filtered := FilterSections(course, cs)

	require.Len(t, filtered, 1)
	assert.Equal(t, "MW", filtered[0].Number)
}

func TestFilterSectionsFridayOnlyCourseBecomesEmpty(t *testing.T) {
	course := models.Course{Code: "01:119:115", Sections: []models.Section{
		mkSection("01:119:115", "FRI", 4, mkSlot([]models.Weekday{models.Friday}, 600, 680, "BUSCH")),
	}}
	cs := models.ConstraintSet{ExcludedDays: []models.Weekday{models.Friday}}

	assert.Empty(t, FilterSections(course, cs))
}

func TestFilterSectionsOpenSeats(t *testing.T) {
	course := models.Course{Code: "01:198:111", Sections: []models.Section{
		{Number: "01", CourseCode: "01:198:111", SeatStatus: models.SeatClosed, Credits: 4},
		{Number: "02", CourseCode: "01:198:111", SeatStatus: models.SeatOpen, Credits: 4},
		{Number: "03", CourseCode: "01:198:111", SeatStatus: models.SeatWaitlisted, Credits: 4},
	}}

	filtered := FilterSections(course, models.ConstraintSet{RequireOpenSeats: true})

	require.Len(t, filtered, 2)
	assert.Equal(t, "02", filtered[0].Number)
	assert.Equal(t, "03", filtered[1].Number)

	// Without the flag everything stays.
	assert.Len(t, FilterSections(course, models.ConstraintSet{}), 3)
}

func TestMissingPrerequisites(t *testing.T) {
	course := models.Course{
		Code:          "01:198:112",
		Prerequisites: []string{"01:198:111", "01:640:151"},
	}

	cs := models.ConstraintSet{CompletedCourses: []string{"01:198:111"}}
	assert.Equal(t, []string{"01:640:151"}, MissingPrerequisites(course, cs))

	cs = models.ConstraintSet{CompletedCourses: []string{"01:198:111", "01:640:151"}}
	assert.Empty(t, MissingPrerequisites(course, cs))

	// Codes compare case-insensitively.
	cs = models.ConstraintSet{CompletedCourses: []string{"01:198:111", "01:640:151"}}
	course.Prerequisites = []string{"01:198:111 "}
	assert.Empty(t, MissingPrerequisites(course, cs))
}
