package normalize

import (
	"sort"

	"goldboard/internal/domain"
)

// sortDedupeHistory orders points by date ASC and removes duplicate dates.
// Policy: the first occurrence in input order wins; later duplicates are
// dropped. Returns the cleaned series and the number of dropped duplicates.
func sortDedupeHistory(points []domain.PricePoint) ([]domain.PricePoint, int) {
	if len(points) == 0 {
		return nil, 0
	}

	seen := make(map[string]struct{}, len(points))
	unique := make([]domain.PricePoint, 0, len(points))
	dropped := 0
	for _, p := range points {
		if _, dup := seen[p.Date]; dup {
			dropped++
			continue
		}
		seen[p.Date] = struct{}{}
		unique = append(unique, p)
	}

	// ISO dates sort correctly as strings. SliceStable keeps the
	// first-wins decision independent of the sort implementation.
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Date < unique[j].Date
	})

	return unique, dropped
}
