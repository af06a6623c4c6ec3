package wateryear

import (
	"testing"
	"time"
)

func TestForDate(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{
			name:     "September stays in its calendar year",
			date:     time.Date(2023, time.September, 30, 0, 0, 0, 0, time.UTC),
			expected: 2023,
		},
		{
			name:     "October 1 rolls into the next water year",
			date:     time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC),
			expected: 2024,
		},
		{
			name:     "December belongs to the next water year",
			date:     time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC),
			expected: 2024,
		},
		{
			name:     "January belongs to its calendar year",
			date:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			expected: 2024,
		},
		{
			name:     "mid-winter",
			date:     time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
			expected: 2024,
		},
		{
			name:     "late spring",
			date:     time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC),
			expected: 2024,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForDate(tt.date); got != tt.expected {
				t.Errorf("ForDate(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.expected)
			}
		})
	}
}

func TestDayOfWaterYear(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{
			name:     "Oct 1 is DOWY 1",
			date:     time.Date(2023, time.October, 1, 0, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "Oct 31",
			date:     time.Date(2023, time.October, 31, 0, 0, 0, 0, time.UTC),
			expected: 31,
		},
		{
			name:     "Jan 1",
			date:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			expected: 93,
		},
		{
			name:     "Apr 1 in a leap year counts Feb 29",
			date:     time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
			expected: 184,
		},
		{
			name:     "Sep 30 closes the water year",
			date:     time.Date(2023, time.September, 30, 0, 0, 0, 0, time.UTC),
			expected: 365,
		},
		{
			name:     "time of day does not matter",
			date:     time.Date(2023, time.October, 1, 23, 59, 59, 0, time.UTC),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayOfWaterYear(tt.date); got != tt.expected {
				t.Errorf("DayOfWaterYear(%s) = %d, want %d", tt.date.Format("2006-01-02"), got, tt.expected)
			}
		})
	}
}

func TestDayOfWaterYearBoundaryAcrossYears(t *testing.T) {
	for wy := 1980; wy <= 2025; wy++ {
		oct1 := Start(wy)
		if got := DayOfWaterYear(oct1); got != 1 {
			t.Errorf("water year %d: DayOfWaterYear(Oct 1) = %d, want 1", wy, got)
		}
		if got := ForDate(oct1); got != wy {
			t.Errorf("water year %d: ForDate(Oct 1) = %d", wy, got)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		dowy     int
		expected string
	}{
		{1, "Oct 1"},
		{31, "Oct 31"},
		{93, "Jan 1"},
		{183, "Apr 1"},
		{365, "Sep 30"},
	}

	for _, tt := range tests {
		if got := Label(tt.dowy); got != tt.expected {
			t.Errorf("Label(%d) = %q, want %q", tt.dowy, got, tt.expected)
		}
	}
}
