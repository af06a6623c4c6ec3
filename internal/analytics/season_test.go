package analytics

import (
	"testing"
	"time"

	"github.com/chrissnell/snowtracker/internal/wateryear"
)

func TestCurrentSeasonSelectsOnlyTodaysWaterYear(t *testing.T) {
	var por []DailyObservation
	por = append(por, seasonSeries(2023, 10, 90)...)
	por = append(por, seasonSeries(2024, 12, 90)...)
	por = append(por, obsAtDOWY(2025, 40, 5.0))

	today := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC) // WY 2025
	got := CurrentSeason(por, today)

	if len(got) != 1 {
		t.Fatalf("CurrentSeason returned %d observations, want 1", len(got))
	}
	if wateryear.ForDate(got[0].Date) != 2025 {
		t.Errorf("observation from water year %d leaked into current season", wateryear.ForDate(got[0].Date))
	}
}

func TestCurrentSeasonEmptyWhenNoData(t *testing.T) {
	por := seasonSeries(2020, 10, 90)
	today := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	if got := CurrentSeason(por, today); len(got) != 0 {
		t.Errorf("CurrentSeason = %d observations, want none", len(got))
	}
}

func TestMedianCurveMedianAcrossYears(t *testing.T) {
	// Three historical years with values 2, 4 and 10 at the same DOWY:
	// the median is 4, not the mean.
	por := []DailyObservation{
		obsAtDOWY(2021, 50, 2),
		obsAtDOWY(2022, 50, 4),
		obsAtDOWY(2023, 50, 10),
	}

	today := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	curve := MedianCurve(por, today)

	if len(curve) != 1 {
		t.Fatalf("MedianCurve returned %d points, want 1", len(curve))
	}
	if curve[0].DOWY != 50 || curve[0].Value != 4 {
		t.Errorf("MedianCurve[0] = %+v, want {DOWY:50 Value:4}", curve[0])
	}
}

func TestMedianCurveExcludesCurrentWaterYear(t *testing.T) {
	por := []DailyObservation{
		obsAtDOWY(2023, 50, 4),
		obsAtDOWY(2025, 50, 100), // current season, must not contribute
	}

	today := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC) // WY 2025
	curve := MedianCurve(por, today)

	if len(curve) != 1 || curve[0].Value != 4 {
		t.Fatalf("MedianCurve = %+v, want single point with value 4", curve)
	}
}

func TestMedianCurveSkipsMissingAndSortsByDOWY(t *testing.T) {
	missing := obsAtDOWY(2023, 10, 0)
	missing.Valid = false

	por := []DailyObservation{
		obsAtDOWY(2023, 90, 9),
		obsAtDOWY(2023, 20, 2),
		missing,
	}

	today := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	curve := MedianCurve(por, today)

	if len(curve) != 2 {
		t.Fatalf("MedianCurve returned %d points, want 2", len(curve))
	}
	if curve[0].DOWY != 20 || curve[1].DOWY != 90 {
		t.Errorf("curve not sorted by DOWY: %+v", curve)
	}
}
