package analytics

import (
	"testing"
	"time"

	"github.com/chrissnell/snowtracker/internal/wateryear"
)

// obsAtDOWY places one valid observation at the given DOWY of a water year.
func obsAtDOWY(wy, dowy int, value float64) DailyObservation {
	return DailyObservation{
		Date:  wateryear.Start(wy).AddDate(0, 0, dowy-1),
		Value: value,
		Valid: true,
	}
}

func fp(v float64) *float64 { return &v }

func TestRankCurrent(t *testing.T) {
	today := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	todayDOWY := wateryear.DayOfWaterYear(today)

	// Five historical years with values 10, 20, 30, 40, 50 at today's DOWY.
	var por []DailyObservation
	for i, v := range []float64{10, 20, 30, 40, 50} {
		por = append(por, obsAtDOWY(2020+i, todayDOWY, v))
	}

	tests := []struct {
		name      string
		current   *float64
		wantRank  int
		wantYears int
	}{
		{"lowest on record", fp(5), 1, 5},
		{"above every historical value", fp(60), 6, 5},
		{"middle of the pack", fp(35), 4, 5},
		{"tie does not count as below", fp(30), 3, 5},
		{"missing current value ranks as record low", nil, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank, years := RankCurrent(por, today, tt.current)
			if rank != tt.wantRank || years != tt.wantYears {
				t.Errorf("RankCurrent() = (%d, %d), want (%d, %d)", rank, years, tt.wantRank, tt.wantYears)
			}
		})
	}
}

func TestRankCurrentWindow(t *testing.T) {
	today := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	todayDOWY := wateryear.DayOfWaterYear(today)

	por := []DailyObservation{
		obsAtDOWY(2020, todayDOWY-3, 10), // in window
		obsAtDOWY(2021, todayDOWY+3, 20), // in window
		obsAtDOWY(2022, todayDOWY-4, 30), // outside
		obsAtDOWY(2023, todayDOWY+9, 40), // outside
	}

	rank, years := RankCurrent(por, today, fp(15))
	if years != 2 {
		t.Errorf("totalYears = %d, want 2 (only ±3-day observations count)", years)
	}
	if rank != 2 {
		t.Errorf("rank = %d, want 2", rank)
	}
}

func TestRankCurrentExcludesCurrentWaterYearAndMissing(t *testing.T) {
	today := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	todayDOWY := wateryear.DayOfWaterYear(today)

	missing := obsAtDOWY(2021, todayDOWY, 99)
	missing.Valid = false

	por := []DailyObservation{
		obsAtDOWY(2020, todayDOWY, 10),
		missing,                       // missing readings never join the pool
		obsAtDOWY(2025, todayDOWY, 5), // current water year is not history
	}

	rank, years := RankCurrent(por, today, fp(12))
	if years != 1 {
		t.Errorf("totalYears = %d, want 1", years)
	}
	if rank != 2 {
		t.Errorf("rank = %d, want 2", rank)
	}
}

func TestRankCurrentOnePerYear(t *testing.T) {
	today := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	todayDOWY := wateryear.DayOfWaterYear(today)

	// Several in-window observations in one year: only the first (earliest)
	// joins the pool.
	por := []DailyObservation{
		obsAtDOWY(2020, todayDOWY-1, 10),
		obsAtDOWY(2020, todayDOWY, 90),
		obsAtDOWY(2020, todayDOWY+1, 95),
	}

	rank, years := RankCurrent(por, today, fp(50))
	if years != 1 {
		t.Errorf("totalYears = %d, want 1", years)
	}
	if rank != 2 {
		t.Errorf("rank = %d, want 2 (pool holds the year's first match, 10)", rank)
	}
}

func TestRankCurrentEmptyHistory(t *testing.T) {
	today := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	rank, years := RankCurrent(nil, today, fp(10))
	if rank != 1 || years != 0 {
		t.Errorf("RankCurrent(nil) = (%d, %d), want (1, 0)", rank, years)
	}
}
