package domain

import "sort"

// recentActivityLimit caps the recency feed returned by ComputeStats.
const recentActivityLimit = 5

// Stats is the derived aggregate view of a resource collection. It is never
// persisted; recompute it whenever the underlying collection may have changed.
type Stats struct {
	Total          int              `json:"total"`
	ByCategory     map[Category]int `json:"by_category"`
	ByStatus       map[Status]int   `json:"by_status"`
	RecentActivity []Resource       `json:"recent_activity"`
}

// ComputeStats aggregates a resource collection into counts by category and
// status plus the five most recently modified resources. Both maps are seeded
// with zeros for every value in the fixed sets; resources carrying an
// off-enum category or status still count toward Total but are not
// enumerated. The recency feed is ordered by effective modified time
// descending with a stable tie-break that preserves input order.
func ComputeStats(resources []Resource) Stats {
	stats := Stats{
		Total:      len(resources),
		ByCategory: make(map[Category]int, len(Categories)),
		ByStatus:   make(map[Status]int, len(Statuses)),
	}
	for _, c := range Categories {
		stats.ByCategory[c] = 0
	}
	for _, s := range Statuses {
		stats.ByStatus[s] = 0
	}

	for _, r := range resources {
		if _, ok := stats.ByCategory[r.Category]; ok {
			stats.ByCategory[r.Category]++
		}
		if _, ok := stats.ByStatus[r.Status]; ok {
			stats.ByStatus[r.Status]++
		}
	}

	recent := make([]Resource, len(resources))
	copy(recent, resources)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].EffectiveModifiedAt().After(recent[j].EffectiveModifiedAt())
	})
	if len(recent) > recentActivityLimit {
		recent = recent[:recentActivityLimit]
	}
	stats.RecentActivity = recent

	return stats
}
