package orchestrator

import (
	"sort"

	"github.com/spcflow/spcflow/internal/models"
)

// buildSubgroups merges manual rebaseline indexes and external grouping-break
// indexes with the sequence bounds, deduplicates and sorts them, then pairs
// consecutive boundaries into half-open ranges. Every point belongs to exactly
// one subgroup.
func buildSubgroups(n int, rebaselines, grouping []int) []models.Subgroup {
	if n == 0 {
		return nil
	}

	seen := map[int]bool{0: true, n: true}
	boundaries := []int{0, n}
	for _, lists := range [][]int{rebaselines, grouping} {
		for _, b := range lists {
			if b <= 0 || b >= n || seen[b] {
				continue
			}
			seen[b] = true
			boundaries = append(boundaries, b)
		}
	}
	sort.Ints(boundaries)

	subgroups := make([]models.Subgroup, 0, len(boundaries)-1)
	for i := 1; i < len(boundaries); i++ {
		subgroups = append(subgroups, models.Subgroup{
			Start: boundaries[i-1],
			End:   boundaries[i],
		})
	}
	return subgroups
}
