package scheduler

import (
	"math"
	"sort"

	"github.com/scarlet-scheduler/planner-api/internal/models"
)

// Weights parameterise the ranking heuristic. They are configuration, not
// structure: tests and deployments may tune them, but the defaults keep the
// day-off and gap terms dominant so the top result is the schedule an
// advisor would actually recommend.
type Weights struct {
	DayOffBonus         float64
	GapPenaltyPerMinute float64
	CreditPenalty       float64
	CampusBonus         float64
}

// DefaultWeights returns the standard heuristic weighting.
func DefaultWeights() Weights {
	return Weights{
		DayOffBonus:         120,
		GapPenaltyPerMinute: 1,
		CreditPenalty:       5,
		CampusBonus:         10,
	}
}

// Score assigns a heuristic desirability score, higher is better. Weekdays
// the user excluded are guaranteed free and earn no day-off bonus.
func Score(comb models.Combination, cs models.ConstraintSet, w Weights) float64 {
	var score float64

	for _, day := range models.Weekdays {
		if cs.DayExcluded(day) {
			continue
		}
		if !comb.OccupiesDay(day) {
			score += w.DayOffBonus
		}
	}

	score -= w.GapPenaltyPerMinute * float64(totalIdleMinutes(comb))

	if cs.TargetCredits > 0 {
		score -= w.CreditPenalty * math.Abs(comb.TotalCredits-cs.TargetCredits)
	}

	if campusConsistent(comb) {
		score += w.CampusBonus
	}

	return score
}

// Rank scores and orders combinations, best first. The sort is stable so
// ties keep the search's deterministic emission order.
func Rank(combs []models.Combination, cs models.ConstraintSet, w Weights) []models.RankedCombination {
	ranked := make([]models.RankedCombination, len(combs))
	for i, comb := range combs {
		ranked[i] = models.RankedCombination{Combination: comb, Score: Score(comb, cs, w)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

type interval struct {
	start int
	end   int
}

// totalIdleMinutes sums, over each occupied day, the idle minutes strictly
// between the end of one meeting and the start of the next.
func totalIdleMinutes(comb models.Combination) int {
	total := 0
	for _, day := range comb.Days {
		var meetings []interval
		for _, a := range comb.Assignments {
			for _, slot := range a.Section.Slots {
				if slot.Online() || !slot.MeetsOn(day) {
					continue
				}
				meetings = append(meetings, interval{start: slot.Start, end: slot.End})
			}
		}
		if len(meetings) < 2 {
			continue
		}
		sort.Slice(meetings, func(i, j int) bool {
			if meetings[i].start != meetings[j].start {
				return meetings[i].start < meetings[j].start
			}
			return meetings[i].end < meetings[j].end
		})
		latestEnd := meetings[0].end
		for _, m := range meetings[1:] {
			if gap := m.start - latestEnd; gap > 0 {
				total += gap
			}
			if m.end > latestEnd {
				latestEnd = m.end
			}
		}
	}
	return total
}

// campusConsistent reports whether no day requires cross-campus travel:
// every occupied day's in-person meetings share a single campus.
func campusConsistent(comb models.Combination) bool {
	for _, day := range comb.Days {
		campus := ""
		for _, a := range comb.Assignments {
			for _, slot := range a.Section.Slots {
				if slot.Online() || !slot.MeetsOn(day) || slot.Campus == "" {
					continue
				}
				if campus == "" {
					campus = slot.Campus
				} else if campus != slot.Campus {
					return false
				}
			}
		}
	}
	return true
}
