package domain

// Stats holds the aggregate counters derived from a collection.
type Stats struct {
	Total            int
	TotalCompleted   int
	TotalUncompleted int
	PercentCompleted float64
}

// ComputeStats derives the counters from the given items. An empty input
// yields a zero percentage rather than dividing by zero.
func ComputeStats(items []Item) Stats {
	stats := Stats{Total: len(items)}
	for _, item := range items {
		if item.IsCompleted {
			stats.TotalCompleted++
		}
	}
	stats.TotalUncompleted = stats.Total - stats.TotalCompleted
	if stats.Total > 0 {
		stats.PercentCompleted = float64(stats.TotalCompleted) / float64(stats.Total)
	}
	return stats
}
