// Package narrative turns a StationAnalytics record into short templated
// sentences for the dashboard's summary panel. It contains formatting only;
// every number it prints was computed upstream.
package narrative

import (
	"fmt"
	"math"

	"github.com/chrissnell/snowtracker/internal/analytics"
	"github.com/chrissnell/snowtracker/internal/wateryear"
)

// Build assembles the display sentences for one station. Sentences are
// omitted rather than padded when the underlying analytics are degenerate:
// a zero trend with a thin sample reads as "not enough data," never as a
// genuine flat trend.
func Build(a *analytics.StationAnalytics, station analytics.StationMeta) []string {
	var out []string

	out = append(out, peakTrendSentence(a))

	if s := onsetSentence(a); s != "" {
		out = append(out, s)
	}
	if s := seasonLengthSentence(a); s != "" {
		out = append(out, s)
	}
	if a.TotalYears > 0 {
		out = append(out, fmt.Sprintf(
			"Today's reading ranks %s of %d comparable years on record for this date.",
			ordinal(a.CurrentRank), a.TotalYears))
	}
	if a.BelowMedianCount10yr > 0 && len(a.Summaries) > 10 {
		out = append(out, fmt.Sprintf(
			"%d of the last 10 winters peaked below the long-term median.",
			a.BelowMedianCount10yr))
	}
	if a.ProjectedPeak != nil {
		out = append(out, fmt.Sprintf(
			"If this season tracks the median curve, the peak would land near %.1f — a rough estimate, not a forecast.",
			*a.ProjectedPeak))
	}
	if len(a.Neighbors) > 0 {
		out = append(out, fmt.Sprintf(
			"Nearest comparison station %s sits at %.0f%% of its median; the %s region averages %.0f%%.",
			a.Neighbors[0].Name, a.Neighbors[0].PctOfMedian, a.RegionName, a.RegionPctOfMedian))
	}

	return out
}

func peakTrendSentence(a *analytics.StationAnalytics) string {
	tr := a.PeakTrend
	if tr.SampleSize < 2 {
		return "Not enough complete winters on record to estimate a peak trend."
	}
	if !tr.Significant {
		return fmt.Sprintf(
			"No discernible trend in peak snowpack across %d winters of record.",
			tr.SampleSize)
	}

	direction := "increased"
	if tr.PercentChangeOverRecord < 0 {
		direction = "declined"
	}
	return fmt.Sprintf(
		"Peak snowpack has %s %.1f%% over the %d-year record (%.1f units per decade).",
		direction, math.Abs(tr.PercentChangeOverRecord), tr.SampleSize, tr.PerDecade)
}

func onsetSentence(a *analytics.StationAnalytics) string {
	if a.AvgOnsetDOWY <= 0 || a.AvgMeltOutDOWY <= 0 {
		return ""
	}
	s := fmt.Sprintf("Snow typically arrives around %s and melts out around %s.",
		wateryear.Label(int(math.Round(a.AvgOnsetDOWY))),
		wateryear.Label(int(math.Round(a.AvgMeltOutDOWY))))
	if a.CurrentOnsetDOWY != nil {
		s += fmt.Sprintf(" This season's onset was %s.", wateryear.Label(*a.CurrentOnsetDOWY))
	}
	return s
}

func seasonLengthSentence(a *analytics.StationAnalytics) string {
	tr := a.SeasonLengthTrend
	if tr.SampleSize <= 5 || tr.Slope == 0 {
		return ""
	}
	verb := "lengthening"
	if tr.PerDecade < 0 {
		verb = "shortening"
	}
	return fmt.Sprintf("The snow season is %s by about %.1f days per decade (average length %.0f days).",
		verb, math.Abs(tr.PerDecade), a.AvgSeasonLengthDays)
}

// ordinal renders 1 → "1st", 22 → "22nd", 13 → "13th".
func ordinal(n int) string {
	suffix := "th"
	switch {
	case n%100 >= 11 && n%100 <= 13:
	case n%10 == 1:
		suffix = "st"
	case n%10 == 2:
		suffix = "nd"
	case n%10 == 3:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
