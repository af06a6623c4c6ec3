package analytics

import (
	"time"

	"github.com/chrissnell/snowtracker/internal/stats"
)

// snowSeasonMonths are the nine months, October through June, that the
// monthly climatology covers.
var snowSeasonMonths = []time.Month{
	time.October, time.November, time.December,
	time.January, time.February, time.March,
	time.April, time.May, time.June,
}

// MonthlyClimatology buckets all valid period-of-record observations by
// calendar month and reports mean/min/max for each snow-season month.
// Months with no observations report zeros rather than being omitted, so the
// result always has nine entries in season order.
func MonthlyClimatology(por []DailyObservation) []MonthlyStat {
	buckets := make(map[time.Month][]float64)
	for _, obs := range por {
		if !obs.Valid {
			continue
		}
		m := obs.Date.Month()
		buckets[m] = append(buckets[m], obs.Value)
	}

	out := make([]MonthlyStat, 0, len(snowSeasonMonths))
	for _, m := range snowSeasonMonths {
		vals := buckets[m]
		ms := MonthlyStat{Month: m}
		if len(vals) > 0 {
			ms.Avg = stats.Mean(vals)
			ms.Min = vals[0]
			ms.Max = vals[0]
			for _, v := range vals[1:] {
				if v < ms.Min {
					ms.Min = v
				}
				if v > ms.Max {
					ms.Max = v
				}
			}
		}
		out = append(out, ms)
	}

	return out
}
