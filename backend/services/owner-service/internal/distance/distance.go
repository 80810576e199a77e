// Package distance accumulates chair travel distance from location pings.
//
// Distance is the Manhattan length of the path through consecutive pings ordered by
// (created_at, id). It is the in-process counterpart of the windowed SQL used by the
// chair repository and must produce the same numbers.
package distance

import (
	"sort"
	"time"

	"isuride/backend/services/owner-service/internal/models"
)

// Total is the accumulated distance of a single chair.
type Total struct {
	Distance int64
	// UpdatedAt is the timestamp of the last ping that contributed a delta.
	// Zero when the chair has fewer than two pings.
	UpdatedAt time.Time
}

// HasUpdate reports whether at least one delta was accumulated.
func (t Total) HasUpdate() bool {
	return !t.UpdatedAt.IsZero()
}

// Delta returns the per-axis absolute movement between two consecutive pings.
func Delta(prev, current models.ChairLocation) int64 {
	return abs(current.Latitude-prev.Latitude) + abs(current.Longitude-prev.Longitude)
}

// Accumulate groups pings by chair and returns totals keyed by chair id.
// The input may be in any order; it is not modified.
// Chairs with a single ping are present with a zero Total.
func Accumulate(pings []models.ChairLocation) map[string]Total {
	byChair := make(map[string][]models.ChairLocation)
	for _, p := range pings {
		byChair[p.ChairID] = append(byChair[p.ChairID], p)
	}

	totals := make(map[string]Total, len(byChair))
	for chairID, series := range byChair {
		totals[chairID] = Series(series)
	}
	return totals
}

// Series accumulates the pings of one chair. The slice is sorted in place.
func Series(series []models.ChairLocation) Total {
	sort.SliceStable(series, func(i, j int) bool {
		return Less(series[i], series[j])
	})

	var total Total
	for i := 1; i < len(series); i++ {
		total.Distance += Delta(series[i-1], series[i])
		total.UpdatedAt = series[i].CreatedAt
	}
	return total
}

// Less orders pings by timestamp, breaking ties by ping id.
func Less(a, b models.ChairLocation) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
