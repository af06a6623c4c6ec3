package analytics

import "github.com/chrissnell/snowtracker/internal/wateryear"

// projectionMinObs is the minimum number of valid current-season
// observations before a projection is attempted.
const projectionMinObs = 6

// ProjectPeak extrapolates a likely seasonal peak by assuming the current
// season tracks the shape of the supplied median curve: the latest
// current-to-median ratio is applied to the median curve's seasonal maximum.
//
// Returns nil when fewer than projectionMinObs current observations exist,
// when no median value is available at the latest observation's DOWY, when
// that median is ≤ 0, or when the season is already at or past the
// climatological peak. The result is a rough proportional estimate and
// intentionally ignores trend and variance; present it as such, never as a
// forecast.
func ProjectPeak(currentSeason []DailyObservation, median []MedianPoint) *float64 {
	var valid []DailyObservation
	for _, obs := range currentSeason {
		if obs.Valid {
			valid = append(valid, obs)
		}
	}
	if len(valid) < projectionMinObs {
		return nil
	}

	medianByDOWY := make(map[int]float64, len(median))
	peakMedian := 0.0
	for _, mp := range median {
		medianByDOWY[mp.DOWY] = mp.Value
		if mp.Value > peakMedian {
			peakMedian = mp.Value
		}
	}

	latest := valid[0]
	for _, obs := range valid[1:] {
		if obs.Date.After(latest.Date) {
			latest = obs
		}
	}

	currentMedian, ok := medianByDOWY[wateryear.DayOfWaterYear(latest.Date)]
	if !ok || currentMedian <= 0 {
		return nil
	}

	// At or past the climatological peak there is nothing left to project.
	if peakMedian <= currentMedian {
		return nil
	}

	projected := latest.Value / currentMedian * peakMedian
	return &projected
}
