package analytics

import (
	"math"
	"testing"
	"time"
)

func TestMonthlyClimatology(t *testing.T) {
	obs := func(y int, m time.Month, d int, v float64) DailyObservation {
		return DailyObservation{Date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Value: v, Valid: true}
	}

	por := []DailyObservation{
		obs(2020, time.December, 1, 10),
		obs(2020, time.December, 15, 20),
		obs(2021, time.December, 10, 30),
		obs(2021, time.March, 5, 42),
		{Date: time.Date(2021, time.March, 6, 0, 0, 0, 0, time.UTC), Value: 99, Valid: false},
		obs(2021, time.August, 1, 7), // outside the snow season, ignored
	}

	clim := MonthlyClimatology(por)

	if len(clim) != 9 {
		t.Fatalf("expected 9 monthly buckets, got %d", len(clim))
	}
	if clim[0].Month != time.October || clim[8].Month != time.June {
		t.Errorf("buckets span %s..%s, want October..June", clim[0].Month, clim[8].Month)
	}

	byMonth := make(map[time.Month]MonthlyStat)
	for _, ms := range clim {
		byMonth[ms.Month] = ms
	}

	dec := byMonth[time.December]
	if math.Abs(dec.Avg-20) > 1e-9 || dec.Min != 10 || dec.Max != 30 {
		t.Errorf("December = %+v, want avg 20 min 10 max 30", dec)
	}

	mar := byMonth[time.March]
	if mar.Avg != 42 || mar.Min != 42 || mar.Max != 42 {
		t.Errorf("March = %+v, want 42 across the board (missing reading excluded)", mar)
	}

	// Months with no data report zeros, not nil entries.
	oct := byMonth[time.October]
	if oct.Avg != 0 || oct.Min != 0 || oct.Max != 0 {
		t.Errorf("October = %+v, want zeros", oct)
	}
}

func TestMonthlyClimatologyEmpty(t *testing.T) {
	clim := MonthlyClimatology(nil)
	if len(clim) != 9 {
		t.Fatalf("expected 9 buckets for empty input, got %d", len(clim))
	}
	for _, ms := range clim {
		if ms.Avg != 0 || ms.Min != 0 || ms.Max != 0 {
			t.Errorf("%s = %+v, want zeros", ms.Month, ms)
		}
	}
}
