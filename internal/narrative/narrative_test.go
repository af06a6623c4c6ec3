package narrative

import (
	"strings"
	"testing"

	"github.com/chrissnell/snowtracker/internal/analytics"
)

func fp(v float64) *float64 { return &v }

func TestBuildDegenerateRecord(t *testing.T) {
	a := &analytics.StationAnalytics{}
	got := Build(a, analytics.StationMeta{ID: "S1"})

	if len(got) != 1 {
		t.Fatalf("expected a single sentence for an empty record, got %d: %v", len(got), got)
	}
	if !strings.Contains(got[0], "Not enough") {
		t.Errorf("empty record should read as insufficient data, got %q", got[0])
	}
}

func TestBuildFlatVsUnknown(t *testing.T) {
	// A real but non-significant trend must read as "no discernible trend,"
	// not as insufficient data and not as a decline.
	a := &analytics.StationAnalytics{
		PeakTrend: analytics.TrendEstimate{Slope: -0.1, RSquared: 0.05, SampleSize: 15},
	}
	got := Build(a, analytics.StationMeta{})
	if !strings.Contains(got[0], "No discernible trend") {
		t.Errorf("got %q", got[0])
	}
	if !strings.Contains(got[0], "15 winters") {
		t.Errorf("sentence should carry the sample size, got %q", got[0])
	}
}

func TestBuildSignificantDecline(t *testing.T) {
	a := &analytics.StationAnalytics{
		PeakTrend: analytics.TrendEstimate{
			Slope: -0.3, RSquared: 0.4, SampleSize: 30,
			PerDecade: -3, PercentChangeOverRecord: -18.2, Significant: true,
		},
	}
	got := Build(a, analytics.StationMeta{})
	if !strings.Contains(got[0], "declined 18.2%") {
		t.Errorf("got %q", got[0])
	}
}

func TestBuildProjectionCaveat(t *testing.T) {
	a := &analytics.StationAnalytics{ProjectedPeak: fp(36.04)}
	got := Build(a, analytics.StationMeta{})

	var found bool
	for _, s := range got {
		if strings.Contains(s, "36.0") && strings.Contains(s, "not a forecast") {
			found = true
		}
	}
	if !found {
		t.Errorf("projection sentence missing or lacks caveat: %v", got)
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 43: "43rd", 100: "100th",
	}
	for n, want := range tests {
		if got := ordinal(n); got != want {
			t.Errorf("ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}
