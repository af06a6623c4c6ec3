package analytics

import (
	"time"

	"go.uber.org/zap"

	"github.com/chrissnell/snowtracker/internal/stats"
	"github.com/chrissnell/snowtracker/internal/wateryear"
)

// belowMedianLookbackYears is the window for the below-median peak count.
const belowMedianLookbackYears = 10

// RegionResult is a resolved region label and its average percent-of-median.
// The caller resolves it (see internal/regions) so the engine stays free of
// roster policy.
type RegionResult struct {
	Name        string
	PctOfMedian float64
}

// Engine computes StationAnalytics from period-of-record series. It is
// stateless beyond its logger; every computation reads an immutable snapshot
// and produces a fresh value, so one Engine is safe for concurrent use.
type Engine struct {
	logger *zap.SugaredLogger
}

// NewEngine creates an analytics engine.
func NewEngine(logger *zap.SugaredLogger) *Engine {
	return &Engine{logger: logger}
}

// ComputeBase runs the first analytics phase: everything derivable from the
// period of record, the station roster snapshot, and the injected "today."
// The peak projection is left nil; RefineWithCurrentSeason fills it once the
// current-season series and median curve arrive.
func (e *Engine) ComputeBase(por []DailyObservation, station StationMeta, roster []StationMeta, region RegionResult, today time.Time) *StationAnalytics {
	start := time.Now()

	a := &StationAnalytics{
		Summaries:          Segment(por),
		MonthlyClimatology: MonthlyClimatology(por),
		Neighbors:          NearbyStations(station, roster),
		RegionName:         region.Name,
		RegionPctOfMedian:  region.PctOfMedian,
	}

	a.PeakTrend, a.OnsetTrend, a.MeltOutTrend, a.SeasonLengthTrend = Trends(a.Summaries)

	a.AvgOnsetDOWY, a.AvgMeltOutDOWY, a.AvgSeasonLengthDays = averagePhenology(a.Summaries)
	a.CurrentOnsetDOWY = currentSeasonOnset(por, today)
	a.CurrentRank, a.TotalYears = RankCurrent(por, today, station.CurrentValue)
	a.BelowMedianCount10yr = belowMedianCount(a.Summaries)

	if e.logger != nil {
		e.logger.Debugf("computed base analytics for %s: %d water years, %d comparable rank years, took %s",
			station.ID, len(a.Summaries), a.TotalYears, time.Since(start))
	}

	return a
}

// RefineWithCurrentSeason runs the second analytics phase: given the base
// record and the current-season series plus its median curve, it returns a
// copy with the projected peak filled in. The base value is not mutated, so
// an abandoned refinement never leaves partial results behind.
func (e *Engine) RefineWithCurrentSeason(base *StationAnalytics, currentSeason []DailyObservation, median []MedianPoint) *StationAnalytics {
	refined := *base
	refined.ProjectedPeak = ProjectPeak(currentSeason, median)
	return &refined
}

// averagePhenology returns mean onset DOWY, melt-out DOWY, and season length
// over the years where each is defined.
func averagePhenology(summaries []WaterYearSummary) (onset, meltOut, length float64) {
	var onsets, melts, lengths []float64
	for _, s := range summaries {
		if s.OnsetDate != nil {
			onsets = append(onsets, float64(wateryear.DayOfWaterYear(*s.OnsetDate)))
		}
		if s.MeltOutDate != nil {
			melts = append(melts, float64(wateryear.DayOfWaterYear(*s.MeltOutDate)))
		}
		if s.OnsetDate != nil && s.MeltOutDate != nil {
			lengths = append(lengths, float64(s.SeasonLengthDays))
		}
	}
	return stats.Mean(onsets), stats.Mean(melts), stats.Mean(lengths)
}

// currentSeasonOnset finds the first measurable-snow date of the water year
// containing today, even when that year is still too sparse to produce a
// summary. Nil when snow has not yet crossed the threshold.
func currentSeasonOnset(por []DailyObservation, today time.Time) *int {
	currentWY := wateryear.ForDate(today)

	var onset *time.Time
	for _, obs := range por {
		if !obs.Valid || wateryear.ForDate(obs.Date) != currentWY {
			continue
		}
		if obs.Value > OnsetThreshold {
			if onset == nil || obs.Date.Before(*onset) {
				d := obs.Date
				onset = &d
			}
		}
	}
	if onset == nil {
		return nil
	}
	dowy := wateryear.DayOfWaterYear(*onset)
	return &dowy
}

// belowMedianCount counts how many of the most recent lookback years peaked
// below the all-time median peak.
func belowMedianCount(summaries []WaterYearSummary) int {
	if len(summaries) == 0 {
		return 0
	}

	peaks := make([]float64, len(summaries))
	for i, s := range summaries {
		peaks[i] = s.PeakValue
	}
	median := stats.Median(peaks)

	recent := summaries
	if len(recent) > belowMedianLookbackYears {
		recent = recent[len(recent)-belowMedianLookbackYears:]
	}

	count := 0
	for _, s := range recent {
		if s.PeakValue < median {
			count++
		}
	}
	return count
}
