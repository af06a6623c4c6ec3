package server

import (
	"math"
	"time"

	"github.com/chrissnell/snowtracker/internal/analytics"
)

// The wire types below mirror the analytics records but carry presentation
// precision: every float is rounded to one decimal here and nowhere else.

type stationResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	State        string   `json:"state"`
	Elevation    float64  `json:"elevation"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	CurrentValue *float64 `json:"current_value,omitempty"`
	PctOfMedian  *float64 `json:"pct_of_median,omitempty"`
}

type waterYearResponse struct {
	WaterYear        int     `json:"water_year"`
	PeakValue        float64 `json:"peak_value"`
	PeakDate         string  `json:"peak_date"`
	OnsetDate        *string `json:"onset_date,omitempty"`
	MeltOutDate      *string `json:"melt_out_date,omitempty"`
	SeasonLengthDays int     `json:"season_length_days"`
}

type trendResponse struct {
	Slope                   float64 `json:"slope"`
	RSquared                float64 `json:"r_squared"`
	PerDecade               float64 `json:"per_decade"`
	PercentChangeOverRecord float64 `json:"percent_change_over_record"`
	SampleSize              int     `json:"sample_size"`
	Significant             bool    `json:"significant"`
}

type monthlyResponse struct {
	Month string  `json:"month"`
	Avg   float64 `json:"avg"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type neighborResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DistanceDeg float64 `json:"distance_deg"`
	PctOfMedian float64 `json:"pct_of_median"`
}

type analyticsResponse struct {
	Summaries []waterYearResponse `json:"summaries"`

	PeakTrend         trendResponse `json:"peak_trend"`
	OnsetTrend        trendResponse `json:"onset_trend"`
	MeltOutTrend      trendResponse `json:"melt_out_trend"`
	SeasonLengthTrend trendResponse `json:"season_length_trend"`

	AvgOnsetDOWY        float64 `json:"avg_onset_dowy"`
	AvgMeltOutDOWY      float64 `json:"avg_melt_out_dowy"`
	AvgSeasonLengthDays float64 `json:"avg_season_length_days"`

	CurrentOnsetDOWY *int `json:"current_onset_dowy,omitempty"`

	CurrentRank          int `json:"current_rank"`
	TotalYears           int `json:"total_years"`
	BelowMedianCount10yr int `json:"below_median_count_10yr"`

	ProjectedPeak *float64 `json:"projected_peak,omitempty"`

	MonthlyClimatology []monthlyResponse `json:"monthly_climatology"`

	Neighbors         []neighborResponse `json:"neighbors"`
	RegionName        string             `json:"region_name"`
	RegionPctOfMedian float64            `json:"region_pct_of_median"`
}

type narrativeResponse struct {
	Station   string   `json:"station"`
	Name      string   `json:"name"`
	Sentences []string `json:"sentences"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round1p(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round1(*v)
	return &r
}

func dateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func dateStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := dateString(*t)
	return &s
}

func transformStations(roster []analytics.StationMeta) []stationResponse {
	out := make([]stationResponse, 0, len(roster))
	for _, s := range roster {
		out = append(out, stationResponse{
			ID:           s.ID,
			Name:         s.Name,
			State:        s.StateCode,
			Elevation:    round1(s.Elevation),
			Lat:          round1(s.Lat),
			Lon:          round1(s.Lon),
			CurrentValue: round1p(s.CurrentValue),
			PctOfMedian:  round1p(s.PctOfMedian),
		})
	}
	return out
}

func transformTrend(tr analytics.TrendEstimate) trendResponse {
	return trendResponse{
		Slope:                   round1(tr.Slope),
		RSquared:                round1(tr.RSquared),
		PerDecade:               round1(tr.PerDecade),
		PercentChangeOverRecord: round1(tr.PercentChangeOverRecord),
		SampleSize:              tr.SampleSize,
		Significant:             tr.Significant,
	}
}

func transformAnalytics(a *analytics.StationAnalytics) analyticsResponse {
	resp := analyticsResponse{
		Summaries: make([]waterYearResponse, 0, len(a.Summaries)),

		PeakTrend:         transformTrend(a.PeakTrend),
		OnsetTrend:        transformTrend(a.OnsetTrend),
		MeltOutTrend:      transformTrend(a.MeltOutTrend),
		SeasonLengthTrend: transformTrend(a.SeasonLengthTrend),

		AvgOnsetDOWY:        round1(a.AvgOnsetDOWY),
		AvgMeltOutDOWY:      round1(a.AvgMeltOutDOWY),
		AvgSeasonLengthDays: round1(a.AvgSeasonLengthDays),

		CurrentOnsetDOWY: a.CurrentOnsetDOWY,

		CurrentRank:          a.CurrentRank,
		TotalYears:           a.TotalYears,
		BelowMedianCount10yr: a.BelowMedianCount10yr,

		ProjectedPeak: round1p(a.ProjectedPeak),

		MonthlyClimatology: make([]monthlyResponse, 0, len(a.MonthlyClimatology)),

		Neighbors:         make([]neighborResponse, 0, len(a.Neighbors)),
		RegionName:        a.RegionName,
		RegionPctOfMedian: round1(a.RegionPctOfMedian),
	}

	for _, s := range a.Summaries {
		resp.Summaries = append(resp.Summaries, waterYearResponse{
			WaterYear:        s.WaterYear,
			PeakValue:        round1(s.PeakValue),
			PeakDate:         dateString(s.PeakDate),
			OnsetDate:        dateStringPtr(s.OnsetDate),
			MeltOutDate:      dateStringPtr(s.MeltOutDate),
			SeasonLengthDays: s.SeasonLengthDays,
		})
	}

	for _, m := range a.MonthlyClimatology {
		resp.MonthlyClimatology = append(resp.MonthlyClimatology, monthlyResponse{
			Month: m.Month.String(),
			Avg:   round1(m.Avg),
			Min:   round1(m.Min),
			Max:   round1(m.Max),
		})
	}

	for _, n := range a.Neighbors {
		resp.Neighbors = append(resp.Neighbors, neighborResponse{
			ID:          n.ID,
			Name:        n.Name,
			DistanceDeg: round1(n.DistanceDeg),
			PctOfMedian: round1(n.PctOfMedian),
		})
	}

	return resp
}
