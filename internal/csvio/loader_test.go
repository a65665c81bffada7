package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarlet-scheduler/planner-api/internal/models"
)

const sampleCatalog = `course_code,title,credits,prerequisites,section,seat_status,instructors,days,start,end,campus,room
01:198:112,Data Structures,4,01:198:111,01,open,Rivera;Chen,Mon/Wed,10:00,11:20,BUSCH,HLL-114
01:198:112,Data Structures,4,01:198:111,01,open,Rivera;Chen,Fri,09:00,09:50,BUSCH,HLL-114
01:198:112,Data Structures,4,01:198:111,02,closed,,Tue/Thu,14:00,15:20,LIVINGSTON,
01:198:205,Introduction to Discrete Structures,4,,90,open,Ada,,,,ONLINE,
`

func TestLoadCatalog(t *testing.T) {
	courses, err := LoadCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, courses, 2)

	ds := courses[0]
	assert.Equal(t, "01:198:112", ds.Code)
	assert.Equal(t, []string{"01:198:111"}, ds.Prerequisites)
	require.Len(t, ds.Sections, 2)

	// Two rows for section 01 fold into one section with two slots.
	first := ds.Sections[0]
	assert.Equal(t, "01", first.Number)
	assert.Equal(t, []string{"Rivera", "Chen"}, first.Instructors)
	require.Len(t, first.Slots, 2)
	assert.Equal(t, []models.Weekday{models.Monday, models.Wednesday}, first.Slots[0].Days)
	assert.Equal(t, 600, first.Slots[0].Start)
	assert.Equal(t, 680, first.Slots[0].End)
	assert.Equal(t, "HLL-114", first.Slots[0].Room)
	assert.Equal(t, []models.Weekday{models.Friday}, first.Slots[1].Days)

	second := ds.Sections[1]
	assert.Equal(t, models.SeatClosed, second.SeatStatus)
	assert.Empty(t, second.Instructors)

	online := courses[1]
	require.Len(t, online.Sections, 1)
	assert.Empty(t, online.Sections[0].Slots)
	assert.Equal(t, models.SeatOpen, online.Sections[0].SeatStatus)
}

func TestLoadCatalogRejectsMalformedTime(t *testing.T) {
	bad := `course_code,title,credits,prerequisites,section,seat_status,instructors,days,start,end,campus,room
01:198:112,Data Structures,4,,01,open,,Mon,25:99,11:20,BUSCH,
`
	_, err := LoadCatalog(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed time")
}

func TestLoadCatalogRejectsInvertedRange(t *testing.T) {
	bad := `course_code,title,credits,prerequisites,section,seat_status,instructors,days,start,end,campus,room
01:198:112,Data Structures,4,,01,open,,Mon,11:20,10:00,BUSCH,
`
	_, err := LoadCatalog(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before it starts")
}

func TestLoadCatalogRejectsMissingCode(t *testing.T) {
	bad := `course_code,title,credits,prerequisites,section,seat_status,instructors,days,start,end,campus,room
,Data Structures,4,,01,open,,Mon,10:00,11:20,BUSCH,
`
	_, err := LoadCatalog(strings.NewReader(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing course_code")
}
