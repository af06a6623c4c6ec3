package analytics

import (
	"sort"
	"time"

	"github.com/chrissnell/snowtracker/internal/wateryear"
)

// rankWindowDays is the ± DOWY window used to find a comparable historical
// observation for each year when ranking today's value.
const rankWindowDays = 3

// missingCurrentValue is the value a station ranks with when it has no
// current reading. Deliberate policy carried over from the dashboard's
// observed behavior: an absent reading ranks as a record low rather than
// being excluded. Flagged for a product decision; do not change silently.
const missingCurrentValue = 0.0

// RankCurrent ranks current against the historical distribution at today's
// day of water year. For each historical water year the first observation
// within ±rankWindowDays of today's DOWY joins the pool; rank is 1-based
// ascending (1 = lowest on record for this date) and totalYears is the pool
// size. Years with no comparable observation contribute nothing.
//
// current is a pointer so an unavailable reading is explicit; nil ranks as
// missingCurrentValue.
func RankCurrent(por []DailyObservation, today time.Time, current *float64) (rank, totalYears int) {
	todayDOWY := wateryear.DayOfWaterYear(today)
	currentWY := wateryear.ForDate(today)

	byYear := make(map[int][]DailyObservation)
	var years []int
	for _, obs := range por {
		if !obs.Valid {
			continue
		}
		wy := wateryear.ForDate(obs.Date)
		if wy == currentWY {
			continue
		}
		if _, seen := byYear[wy]; !seen {
			years = append(years, wy)
		}
		byYear[wy] = append(byYear[wy], obs)
	}
	// Deterministic pool construction regardless of input order.
	sort.Ints(years)

	var pool []float64
	for _, wy := range years {
		group := byYear[wy]
		sort.Slice(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})
		for _, obs := range group {
			if abs(wateryear.DayOfWaterYear(obs.Date)-todayDOWY) <= rankWindowDays {
				pool = append(pool, obs.Value)
				break
			}
		}
	}

	value := missingCurrentValue
	if current != nil {
		value = *current
	}

	rank = 1
	for _, v := range pool {
		if v < value {
			rank++
		}
	}

	return rank, len(pool)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
