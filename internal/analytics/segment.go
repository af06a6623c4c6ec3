package analytics

import (
	"sort"
	"time"

	"github.com/chrissnell/snowtracker/internal/wateryear"
)

const (
	// OnsetThreshold is the SWE above which measurable snow is considered
	// present. Non-zero so that sensor noise near bare ground does not
	// trigger a false onset.
	OnsetThreshold = 1.0

	// MinObsPerWaterYear is the minimum count of valid daily observations a
	// water year needs before it produces a summary. Sparser years are
	// excluded from every year-indexed series, including trend input.
	MinObsPerWaterYear = 60
)

// Segment groups a raw daily series into per-water-year summaries, computing
// peak, onset, melt-out, and season length for each sufficiently complete
// year. Output is ordered ascending by water year.
//
// Melt-out is the last date at or after the peak with SWE above
// OnsetThreshold. In years with a late-season snowfall after an early
// melt-out this reports the later, post-storm date; known limitation, left
// as-is rather than papered over with a heuristic.
func Segment(series []DailyObservation) []WaterYearSummary {
	byYear := make(map[int][]DailyObservation)
	for _, obs := range series {
		if !obs.Valid {
			continue
		}
		wy := wateryear.ForDate(obs.Date)
		byYear[wy] = append(byYear[wy], obs)
	}

	years := make([]int, 0, len(byYear))
	for wy, group := range byYear {
		if len(group) >= MinObsPerWaterYear {
			years = append(years, wy)
		}
	}
	sort.Ints(years)

	summaries := make([]WaterYearSummary, 0, len(years))
	for _, wy := range years {
		group := byYear[wy]
		sort.Slice(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})
		summaries = append(summaries, summarizeYear(wy, group))
	}

	return summaries
}

// summarizeYear computes the summary for one sorted, valid-only group.
func summarizeYear(wy int, group []DailyObservation) WaterYearSummary {
	s := WaterYearSummary{WaterYear: wy}

	// Peak: max value, earliest date on ties. The tie-break matters because
	// the peak date anchors the melt-out search.
	s.PeakValue = group[0].Value
	s.PeakDate = group[0].Date
	for _, obs := range group[1:] {
		if obs.Value > s.PeakValue {
			s.PeakValue = obs.Value
			s.PeakDate = obs.Date
		}
	}

	for _, obs := range group {
		if obs.Value > OnsetThreshold {
			d := obs.Date
			s.OnsetDate = &d
			break
		}
	}

	for i := len(group) - 1; i >= 0; i-- {
		obs := group[i]
		if obs.Date.Before(s.PeakDate) {
			break
		}
		if obs.Value > OnsetThreshold {
			d := obs.Date
			s.MeltOutDate = &d
			break
		}
	}

	if s.OnsetDate != nil && s.MeltOutDate != nil {
		s.SeasonLengthDays = daysBetween(*s.OnsetDate, *s.MeltOutDate)
	}

	return s
}

func daysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}
