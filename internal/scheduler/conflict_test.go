package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarlet-scheduler/planner-api/internal/models"
)

func TestSlotsOverlapSameDay(t *testing.T) {
	a := mkSlot([]models.Weekday{models.Monday}, 600, 700, "BUSCH")
	b := mkSlot([]models.Weekday{models.Monday}, 650, 750, "BUSCH")

	assert.True(t, SlotsOverlap(a, b, 0))
}

func TestSlotsOverlapDisjointSameDay(t *testing.T) {
	a := mkSlot([]models.Weekday{models.Monday}, 600, 700, "BUSCH")
	b := mkSlot([]models.Weekday{models.Monday}, 720, 820, "BUSCH")

	assert.False(t, SlotsOverlap(a, b, 0))
}

func TestSlotsOverlapBackToBack(t *testing.T) {
	a := mkSlot([]models.Weekday{models.Monday}, 600, 700, "BUSCH")
	b := mkSlot([]models.Weekday{models.Monday}, 700, 800, "BUSCH")

	assert.False(t, SlotsOverlap(a, b, 0))
}

func TestSlotsOverlapDifferentDays(t *testing.T) {
	a := mkSlot([]models.Weekday{models.Monday}, 600, 700, "BUSCH")
	b := mkSlot([]models.Weekday{models.Tuesday}, 600, 700, "BUSCH")

	assert.False(t, SlotsOverlap(a, b, 0))
}

func TestSlotsOverlapOnlineNeverConflicts(t *testing.T) {
	online := models.TimeSlot{Campus: "ONLINE"}
	busy := mkSlot([]models.Weekday{models.Monday}, 0, 1440, "BUSCH")

	assert.False(t, SlotsOverlap(online, busy, 0))
	assert.False(t, SlotsOverlap(busy, online, 0))
}

func TestSlotsOverlapTravelBuffer(t *testing.T) {
	a := mkSlot([]models.Weekday{models.Monday}, 600, 700, "BUSCH")
	b := mkSlot([]models.Weekday{models.Monday}, 730, 790, "LIVINGSTON")

	// A 30 minute gap absorbs a 30 minute transfer but not a 40 minute one.
	assert.False(t, SlotsOverlap(a, b, 30))
	assert.True(t, SlotsOverlap(a, b, 40))
}

func TestTravelTableBuffer(t *testing.T) {
	table := NewTravelTable(40, map[string]int{"BUSCH|LIVINGSTON": 30})

	assert.Equal(t, 0, table.Buffer("BUSCH", "BUSCH"))
	assert.Equal(t, 0, table.Buffer("busch", "Busch"))
	assert.Equal(t, 0, table.Buffer("", "BUSCH"))
	assert.Equal(t, 0, table.Buffer("ONLINE", "BUSCH"))
	assert.Equal(t, 30, table.Buffer("LIVINGSTON", "BUSCH"))
	assert.Equal(t, 30, table.Buffer("BUSCH", "LIVINGSTON"))
	assert.Equal(t, 40, table.Buffer("BUSCH", "COLLEGE AVE"))
}

func TestSectionsConflictAcrossSlotPairs(t *testing.T) {
	table := NewTravelTable(40, nil)
	lecture := mkSection("01:198:111", "01", 4,
		mkSlot([]models.Weekday{models.Monday, models.Wednesday}, 600, 680, "BUSCH"),
	)
	clashing := mkSection("01:640:151", "02", 4,
		mkSlot([]models.Weekday{models.Wednesday}, 630, 710, "BUSCH"),
	)
	clear := mkSection("01:640:151", "03", 4,
		mkSlot([]models.Weekday{models.Tuesday, models.Thursday}, 630, 710, "BUSCH"),
	)

	assert.True(t, SectionsConflict(lecture, clashing, table))
	assert.False(t, SectionsConflict(lecture, clear, table))
}

func TestSectionsConflictSymmetry(t *testing.T) {
	table := NewTravelTable(40, map[string]int{"BUSCH|LIVINGSTON": 30})
	sections := []models.Section{
		mkSection("A", "01", 3, mkSlot([]models.Weekday{models.Monday}, 600, 700, "BUSCH")),
		mkSection("B", "01", 3, mkSlot([]models.Weekday{models.Monday}, 650, 750, "LIVINGSTON")),
		mkSection("C", "01", 3, mkSlot([]models.Weekday{models.Friday}, 480, 560, "COLLEGE AVE")),
		mkSection("D", "01", 3), // arranged hours
	}

	for i := range sections {
		for j := range sections {
			require.Equal(t,
				SectionsConflict(sections[i], sections[j], table),
				SectionsConflict(sections[j], sections[i], table),
				"conflict check must be symmetric for pair %d,%d", i, j)
		}
	}
}

func TestSectionsConflictArrangedSection(t *testing.T) {
	table := NewTravelTable(40, nil)
	arranged := mkSection("01:198:493", "90", 3)
	packed := mkSection("01:198:111", "01", 4,
		mkSlot([]models.Weekday{models.Monday, models.Tuesday, models.Wednesday, models.Thursday, models.Friday}, 480, 1200, "BUSCH"),
	)

	assert.False(t, SectionsConflict(arranged, packed, table))
}
