package scheduler

import (
	"context"
	"sort"

	"github.com/scarlet-scheduler/planner-api/internal/models"
)

// CoursePool is one requested course with its constraint-filtered candidate
// sections.
type CoursePool struct {
	Course   models.Course
	Sections []models.Section
}

// SearchOptions bundles the knobs for one search run. Constraints are only
// consulted for the post-search credit bounds; section-level filtering is
// expected to have happened already.
type SearchOptions struct {
	Budget      models.SearchBudget
	Travel      TravelTable
	Constraints models.ConstraintSet
}

// SearchResult carries everything the search observed. Exhausted is set when
// the node budget or the context deadline cut the run short; the collected
// combinations are still valid partial results.
type SearchResult struct {
	Combinations []models.Combination
	Infeasible   []string
	Nodes        int
	Exhausted    bool
}

// Search enumerates conflict-free combinations of one section per requested
// course using backtracking depth-first search. Courses are visited in
// ascending candidate-pool order (ties by course code) so the most
// constrained course fails fast. Traversal order is deterministic for
// identical inputs; final presentation order is the ranker's concern.
//
// An empty pool list yields exactly one empty combination: nothing to
// schedule is not an error. Any course whose pool is empty makes the whole
// request infeasible and is reported instead of being silently dropped.
func Search(ctx context.Context, pools []CoursePool, opts SearchOptions) SearchResult {
	var result SearchResult

	for _, pool := range pools {
		if len(pool.Sections) == 0 {
			result.Infeasible = append(result.Infeasible, pool.Course.Code)
		}
	}
	if len(result.Infeasible) > 0 {
		return result
	}

	if len(pools) == 0 {
		result.Combinations = []models.Combination{models.NewCombination(nil)}
		return result
	}

	ordered := make([]CoursePool, len(pools))
	copy(ordered, pools)
	sort.SliceStable(ordered, func(i, j int) bool {
		if len(ordered[i].Sections) != len(ordered[j].Sections) {
			return len(ordered[i].Sections) < len(ordered[j].Sections)
		}
		return ordered[i].Course.Code < ordered[j].Course.Code
	})

	maxResults := opts.Budget.MaxResults
	chosen := make([]models.Section, 0, len(ordered))

	var visit func(depth int) bool
	visit = func(depth int) bool {
		if depth == len(ordered) {
			assignments := make([]models.Assignment, len(chosen))
			for i, section := range chosen {
				assignments[i] = models.Assignment{CourseCode: ordered[i].Course.Code, Section: section}
			}
			comb := models.NewCombination(assignments)
			// Credit bounds are checked before the combination counts
			// against the result cap.
			if opts.Constraints.CreditsAllowed(comb.TotalCredits) {
				result.Combinations = append(result.Combinations, comb)
				if maxResults > 0 && len(result.Combinations) >= maxResults {
					return false
				}
			}
			return true
		}

		for _, candidate := range ordered[depth].Sections {
			if ctx.Err() != nil {
				result.Exhausted = true
				return false
			}
			result.Nodes++
			if opts.Budget.MaxNodes > 0 && result.Nodes > opts.Budget.MaxNodes {
				result.Exhausted = true
				return false
			}

			if conflictsWithChosen(candidate, chosen, opts.Travel) {
				continue
			}

			chosen = append(chosen, candidate)
			proceed := visit(depth + 1)
			chosen = chosen[:len(chosen)-1]
			if !proceed {
				return false
			}
		}
		return true
	}

	visit(0)
	return result
}

func conflictsWithChosen(candidate models.Section, chosen []models.Section, travel TravelTable) bool {
	for _, existing := range chosen {
		if SectionsConflict(candidate, existing, travel) {
			return true
		}
	}
	return false
}
