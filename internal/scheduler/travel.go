package scheduler

import "strings"

// TravelTable maps campus pairs to the walking/bus transfer minutes required
// between back-to-back meetings. Same-campus and online meetings need no
// buffer. Pairs override DefaultMinutes; the table is configuration, not a
// hard-coded constant.
type TravelTable struct {
	DefaultMinutes int
	Pairs          map[string]int
}

// NewTravelTable builds a table from a pair->minutes map keyed as
// "CAMPUS_A|CAMPUS_B" with the names upper-cased and sorted.
func NewTravelTable(defaultMinutes int, pairs map[string]int) TravelTable {
	normalized := make(map[string]int, len(pairs))
	for key, minutes := range pairs {
		parts := strings.SplitN(key, "|", 2)
		if len(parts) != 2 || minutes < 0 {
			continue
		}
		normalized[pairKey(parts[0], parts[1])] = minutes
	}
	return TravelTable{DefaultMinutes: defaultMinutes, Pairs: normalized}
}

// Buffer returns the travel minutes required between the two campuses. Zero
// when the campuses match, either is blank, or either is an online location.
func (t TravelTable) Buffer(a, b string) int {
	ca := strings.ToUpper(strings.TrimSpace(a))
	cb := strings.ToUpper(strings.TrimSpace(b))
	if ca == "" || cb == "" || ca == cb {
		return 0
	}
	if strings.Contains(ca, "ONLINE") || strings.Contains(cb, "ONLINE") {
		return 0
	}
	if minutes, ok := t.Pairs[pairKey(ca, cb)]; ok {
		return minutes
	}
	return t.DefaultMinutes
}

func pairKey(a, b string) string {
	a = strings.ToUpper(strings.TrimSpace(a))
	b = strings.ToUpper(strings.TrimSpace(b))
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}
