package analytics

import (
	"github.com/chrissnell/snowtracker/internal/stats"
	"github.com/chrissnell/snowtracker/internal/wateryear"
)

const (
	// phenologyTrendMinYears gates the onset/melt-out/season-length fits:
	// those dates are noisy enough that fewer than six years produces
	// meaningless slopes, so the fit falls back to the neutral zero trend.
	phenologyTrendMinYears = 6

	// significantRSquared and significantMinYears form the fixed
	// significance heuristic for the peak trend. Arbitrary but stable; not
	// a statistical hypothesis test.
	significantRSquared = 0.15
	significantMinYears = 10
)

// Trends fits per-year trends for peak value, onset DOWY, melt-out DOWY, and
// season length. Years where a metric is absent contribute nothing to that
// metric's fit. Insufficient data never raises an error; it yields a zero
// trend whose SampleSize tells the caller why.
func Trends(summaries []WaterYearSummary) (peak, onset, meltOut, seasonLen TrendEstimate) {
	var (
		peakXs, peakYs     []float64
		onsetXs, onsetYs   []float64
		meltXs, meltYs     []float64
		lengthXs, lengthYs []float64
	)

	for _, s := range summaries {
		year := float64(s.WaterYear)

		peakXs = append(peakXs, year)
		peakYs = append(peakYs, s.PeakValue)

		if s.OnsetDate != nil {
			onsetXs = append(onsetXs, year)
			onsetYs = append(onsetYs, float64(wateryear.DayOfWaterYear(*s.OnsetDate)))
		}
		if s.MeltOutDate != nil {
			meltXs = append(meltXs, year)
			meltYs = append(meltYs, float64(wateryear.DayOfWaterYear(*s.MeltOutDate)))
		}
		if s.OnsetDate != nil && s.MeltOutDate != nil {
			lengthXs = append(lengthXs, year)
			lengthYs = append(lengthYs, float64(s.SeasonLengthDays))
		}
	}

	peak = fitTrend(peakXs, peakYs, 0)
	peak.PercentChangeOverRecord = percentChange(peakXs, peakYs, peak.Slope)
	peak.Significant = peak.RSquared > significantRSquared && peak.SampleSize > significantMinYears

	onset = fitTrend(onsetXs, onsetYs, phenologyTrendMinYears)
	meltOut = fitTrend(meltXs, meltYs, phenologyTrendMinYears)
	seasonLen = fitTrend(lengthXs, lengthYs, phenologyTrendMinYears)

	return peak, onset, meltOut, seasonLen
}

// fitTrend runs the OLS fit when at least minYears pairs exist, otherwise
// returns the neutral zero trend. SampleSize is always populated.
func fitTrend(xs, ys []float64, minYears int) TrendEstimate {
	est := TrendEstimate{SampleSize: len(xs)}
	if len(xs) < minYears {
		return est
	}

	reg := stats.Fit(xs, ys)
	est.Slope = reg.Slope
	est.Intercept = reg.Intercept
	est.RSquared = reg.RSquared
	est.PerDecade = reg.Slope * 10
	return est
}

// percentChange expresses the fitted change over the full record span as a
// percentage of the metric's mean. Zero-mean input returns 0.
func percentChange(xs, ys []float64, slope float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	mean := stats.Mean(ys)
	if mean == 0 {
		return 0
	}
	span := xs[len(xs)-1] - xs[0]
	return slope * span / mean * 100
}
