// Command snotel-report fetches a SNOTEL station's period of record and
// prints its water-year history, long-term trends, and a narrative summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/chrissnell/snowtracker/internal/analytics"
	"github.com/chrissnell/snowtracker/internal/log"
	"github.com/chrissnell/snowtracker/internal/narrative"
	"github.com/chrissnell/snowtracker/internal/regions"
	"github.com/chrissnell/snowtracker/internal/snotel"
)

func main() {
	var (
		station = flag.String("station", "", "Station triplet, e.g. 335:CO:SNTL (required)")
		name    = flag.String("name", "", "Station display name (defaults to the triplet)")
		state   = flag.String("state", "", "Two-letter state code, used for the region label")
		baseURL = flag.String("base-url", "", "Override the USDA AWDB base URL")
		asOf    = flag.String("date", "", "Analyze as of this date (YYYY-MM-DD, default today)")
		debug   = flag.Bool("debug", false, "Turn on debugging output")
	)
	flag.Parse()

	if *station == "" {
		fmt.Fprintln(os.Stderr, "the -station flag is required")
		flag.Usage()
		os.Exit(1)
	}

	if err := log.Init(log.Options{Debug: *debug}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger := log.GetSugaredLogger()

	today := time.Now().UTC()
	if *asOf != "" {
		var err error
		today, err = time.ParseInLocation("2006-01-02", *asOf, time.UTC)
		if err != nil {
			logger.Errorf("Invalid -date %q, want YYYY-MM-DD: %v", *asOf, err)
			os.Exit(1)
		}
	}

	displayName := *name
	if displayName == "" {
		displayName = *station
	}
	meta := analytics.StationMeta{ID: *station, Name: displayName, StateCode: *state}

	client := snotel.NewClient(*baseURL, logger, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	por, err := client.FetchPeriodOfRecord(ctx, *station)
	if err != nil {
		logger.Errorf("Failed to fetch period of record for %s: %v", *station, err)
		os.Exit(1)
	}
	logger.Debugf("fetched %d observations for %s", len(por), *station)

	engine := analytics.NewEngine(logger)
	region := analytics.RegionResult{Name: regions.Lookup(regions.DefaultRules, *state)}
	base := engine.ComputeBase(por, meta, []analytics.StationMeta{meta}, region, today)
	a := engine.RefineWithCurrentSeason(base,
		analytics.CurrentSeason(por, today),
		analytics.MedianCurve(por, today))

	fmt.Printf("\n%s (%s) — %d observations, %d complete water years\n\n",
		displayName, *station, len(por), len(a.Summaries))

	printWaterYears(a.Summaries)
	fmt.Println()
	printTrends(a)
	fmt.Println()

	for _, sentence := range narrative.Build(a, meta) {
		fmt.Printf("  %s\n", sentence)
	}
	fmt.Println()
}

func printWaterYears(summaries []analytics.WaterYearSummary) {
	tw := newTable()
	tw.SetHeader([]string{"WATER YEAR", "PEAK", "PEAK DATE", "ONSET", "MELT-OUT", "SEASON DAYS"})

	for _, s := range summaries {
		tw.Append([]string{
			fmt.Sprintf("%d", s.WaterYear),
			fmt.Sprintf("%.1f", s.PeakValue),
			s.PeakDate.Format("2006-01-02"),
			optionalDate(s.OnsetDate),
			optionalDate(s.MeltOutDate),
			fmt.Sprintf("%d", s.SeasonLengthDays),
		})
	}
	tw.Render()
}

func printTrends(a *analytics.StationAnalytics) {
	tw := newTable()
	tw.SetHeader([]string{"METRIC", "PER DECADE", "% CHANGE", "R²", "YEARS", "SIGNIFICANT"})

	rows := []struct {
		name  string
		trend analytics.TrendEstimate
	}{
		{"Peak SWE", a.PeakTrend},
		{"Onset DOWY", a.OnsetTrend},
		{"Melt-out DOWY", a.MeltOutTrend},
		{"Season length", a.SeasonLengthTrend},
	}
	for _, r := range rows {
		tw.Append([]string{
			r.name,
			fmt.Sprintf("%.1f", r.trend.PerDecade),
			fmt.Sprintf("%.1f", r.trend.PercentChangeOverRecord),
			fmt.Sprintf("%.2f", r.trend.RSquared),
			fmt.Sprintf("%d", r.trend.SampleSize),
			fmt.Sprintf("%t", r.trend.Significant),
		})
	}
	tw.Render()
}

func newTable() *tablewriter.Table {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	return tw
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
