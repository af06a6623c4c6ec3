// Package wateryear provides calendar arithmetic for the Oct 1–Sep 30 water
// year used throughout snow hydrology: water-year labels, day-of-water-year
// (DOWY) indices, and display labels for DOWY values.
package wateryear

import "time"

// labelYear is a fixed non-leap reference year used to render DOWY values as
// "Mon Day" labels. Labels on or after Feb 29 of a leap year are off by one
// day; this is an accepted display approximation.
const labelYear = 2001

// ForDate returns the water year containing d. The water year is labeled by
// the calendar year in which it ends, so October through December map to
// year+1.
func ForDate(d time.Time) int {
	if d.Month() >= time.October {
		return d.Year() + 1
	}
	return d.Year()
}

// Start returns Oct 1 00:00:00 UTC of the calendar year in which water year
// wy begins (wy-1).
func Start(wy int) time.Time {
	return time.Date(wy-1, time.October, 1, 0, 0, 0, 0, time.UTC)
}

// DayOfWaterYear returns the 1-based day index of d within its water year.
// Oct 1 is DOWY 1.
func DayOfWaterYear(d time.Time) int {
	start := Start(ForDate(d))
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(start).Hours()/24) + 1
}

// Label renders a DOWY index as a short "Jan 2" style date label.
func Label(dowy int) string {
	d := time.Date(labelYear-1, time.October, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, dowy-1)
	return d.Format("Jan 2")
}
