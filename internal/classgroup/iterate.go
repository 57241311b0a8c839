package classgroup

import (
	"context"
	"sort"
)

// IterateSquarings walks x forward one squaring at a time and snapshots the
// running form at each requested index. Indices are deduplicated and visited
// in ascending order; total work is O(max(indices)) squarings plus
// O(len(indices)) clones. ctx is checked once per squaring so a caller can
// cancel a long solve.
func IterateSquarings(ctx context.Context, x Form, indices []int) (map[int]Form, error) {
	sorted := dedupSorted(indices)
	result := make(map[int]Form, len(sorted))

	cur := x
	previous := 0
	for _, idx := range sorted {
		for i := 0; i < idx-previous; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			var err error
			cur, err = cur.Square()
			if err != nil {
				return nil, err
			}
		}
		previous = idx
		result[idx] = cur
	}

	return result, nil
}

func dedupSorted(indices []int) []int {
	seen := make(map[int]struct{}, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
