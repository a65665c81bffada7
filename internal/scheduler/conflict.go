package scheduler

import "github.com/scarlet-scheduler/planner-api/internal/models"

// SlotsOverlap reports whether two weekly meeting blocks collide. The ranges
// are expanded by bufferMinutes, which callers derive from the travel table
// when the campuses differ. Slots with no shared weekday never conflict, and
// online/arranged slots are not time-bound at all.
func SlotsOverlap(a, b models.TimeSlot, bufferMinutes int) bool {
	if a.Online() || b.Online() {
		return false
	}
	if !a.SharesDay(b) {
		return false
	}
	return a.Start < b.End+bufferMinutes && b.Start < a.End+bufferMinutes
}

// SectionsConflict reports whether any pair of meeting blocks across the two
// sections overlaps, honouring the inter-campus travel buffer. Sections of
// the same course are never compared: the search assigns one section per
// course, so intra-course pairs cannot arise.
func SectionsConflict(a, b models.Section, travel TravelTable) bool {
	for _, sa := range a.Slots {
		for _, sb := range b.Slots {
			if SlotsOverlap(sa, sb, travel.Buffer(sa.Campus, sb.Campus)) {
				return true
			}
		}
	}
	return false
}
