// Package analytics derives climatological summaries from daily snow water
// equivalent series: water-year segmentation, onset/melt-out detection, trend
// fitting, current-conditions ranking, peak projection, and neighbor/regional
// comparison. All computations are pure functions over immutable input
// slices; there is no hidden state and recomputation is bit-identical.
package analytics

import "time"

// DailyObservation is one instrument or model reading for a single calendar
// day. Missing readings are explicit (Valid false) and are excluded from all
// statistics rather than treated as zero.
type DailyObservation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Valid bool      `json:"valid"`
}

// WaterYearSummary describes one water year with sufficient data.
// OnsetDate and MeltOutDate are nil when the year never crossed the
// measurable-snow threshold (or never did so after the peak).
type WaterYearSummary struct {
	WaterYear        int        `json:"water_year"`
	PeakValue        float64    `json:"peak_value"`
	PeakDate         time.Time  `json:"peak_date"`
	OnsetDate        *time.Time `json:"onset_date,omitempty"`
	MeltOutDate      *time.Time `json:"melt_out_date,omitempty"`
	SeasonLengthDays int        `json:"season_length_days"`
}

// TrendEstimate is an OLS fit of a metric against water year. SampleSize
// carries the number of years behind the fit so consumers can distinguish a
// genuinely flat trend from "not enough data." Significant is a fixed
// R²/sample-size heuristic, not a hypothesis test, and must never be
// presented as a p-value.
type TrendEstimate struct {
	Slope                   float64 `json:"slope"`
	Intercept               float64 `json:"intercept"`
	RSquared                float64 `json:"r_squared"`
	PerDecade               float64 `json:"per_decade"`
	PercentChangeOverRecord float64 `json:"percent_change_over_record"`
	SampleSize              int     `json:"sample_size"`
	Significant             bool    `json:"significant"`
}

// MonthlyStat is the period-of-record climatology for one calendar month.
// A month with no observations reports all zeros, not nil; consumers must
// check before rendering.
type MonthlyStat struct {
	Month time.Month `json:"month"`
	Avg   float64    `json:"avg"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
}

// StationMeta is the metadata/current-value snapshot for one station, as
// supplied by the external metadata source. CurrentValue and PctOfMedian are
// nil when the station has no recent reading.
type StationMeta struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	StateCode    string   `json:"state"`
	Elevation    float64  `json:"elevation"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	CurrentValue *float64 `json:"current_value,omitempty"`
	PctOfMedian  *float64 `json:"pct_of_median,omitempty"`
}

// NeighborComparison is a nearby station and its current standing.
type NeighborComparison struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DistanceDeg float64 `json:"distance_deg"`
	PctOfMedian float64 `json:"pct_of_median"`
}

// MedianPoint is one point of a day-of-water-year median curve.
type MedianPoint struct {
	DOWY  int     `json:"dowy"`
	Value float64 `json:"value"`
}

// StationAnalytics is the aggregate analytics record for one station,
// combining period-of-record summaries, trends, current-year context, and
// spatial comparison. It is a plain serializable value; presentation rounding
// happens at the API boundary, never here.
type StationAnalytics struct {
	Summaries []WaterYearSummary `json:"summaries"`

	PeakTrend         TrendEstimate `json:"peak_trend"`
	OnsetTrend        TrendEstimate `json:"onset_trend"`
	MeltOutTrend      TrendEstimate `json:"melt_out_trend"`
	SeasonLengthTrend TrendEstimate `json:"season_length_trend"`

	AvgOnsetDOWY        float64 `json:"avg_onset_dowy"`
	AvgMeltOutDOWY      float64 `json:"avg_melt_out_dowy"`
	AvgSeasonLengthDays float64 `json:"avg_season_length_days"`

	CurrentOnsetDOWY *int `json:"current_onset_dowy,omitempty"`

	CurrentRank          int `json:"current_rank"`
	TotalYears           int `json:"total_years"`
	BelowMedianCount10yr int `json:"below_median_count_10yr"`

	ProjectedPeak *float64 `json:"projected_peak,omitempty"`

	MonthlyClimatology []MonthlyStat `json:"monthly_climatology"`

	Neighbors         []NeighborComparison `json:"neighbors"`
	RegionName        string               `json:"region_name"`
	RegionPctOfMedian float64              `json:"region_pct_of_median"`
}
