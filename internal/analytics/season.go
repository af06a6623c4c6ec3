package analytics

import (
	"sort"
	"time"

	"github.com/chrissnell/snowtracker/internal/stats"
	"github.com/chrissnell/snowtracker/internal/wateryear"
)

// CurrentSeason returns the observations that fall inside the water year
// containing today, in their original order.
func CurrentSeason(por []DailyObservation, today time.Time) []DailyObservation {
	wy := wateryear.ForDate(today)
	var out []DailyObservation
	for _, obs := range por {
		if wateryear.ForDate(obs.Date) == wy {
			out = append(out, obs)
		}
	}
	return out
}

// MedianCurve builds the day-of-water-year median curve over all historical
// water years. Observations from the water year containing today are
// excluded so the in-progress season cannot skew its own reference curve.
func MedianCurve(por []DailyObservation, today time.Time) []MedianPoint {
	currentWY := wateryear.ForDate(today)

	byDOWY := make(map[int][]float64)
	for _, obs := range por {
		if !obs.Valid || wateryear.ForDate(obs.Date) == currentWY {
			continue
		}
		dowy := wateryear.DayOfWaterYear(obs.Date)
		byDOWY[dowy] = append(byDOWY[dowy], obs.Value)
	}

	dowys := make([]int, 0, len(byDOWY))
	for d := range byDOWY {
		dowys = append(dowys, d)
	}
	sort.Ints(dowys)

	curve := make([]MedianPoint, 0, len(dowys))
	for _, d := range dowys {
		curve = append(curve, MedianPoint{DOWY: d, Value: stats.Median(byDOWY[d])})
	}
	return curve
}
