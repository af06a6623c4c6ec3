// Package snotel fetches daily snow water equivalent series and station
// snapshots from the USDA AWDB services: the report-generator CSV endpoint
// for daily series and the REST data endpoint for current values with
// medians.
package snotel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/chrissnell/snowtracker/internal/analytics"
	"github.com/chrissnell/snowtracker/internal/metrics"
)

// DefaultBaseURL is the production USDA AWDB host.
const DefaultBaseURL = "https://wcc.sc.egov.usda.gov"

// Client talks to the AWDB endpoints. Safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
	metrics    *metrics.Collector
}

// NewClient creates an AWDB client. metrics may be nil (the CLI runs without
// a collector).
func NewClient(baseURL string, logger *zap.SugaredLogger, m *metrics.Collector) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
		metrics:    m,
	}
}

// FetchPeriodOfRecord fetches the full daily WTEQ history for a station
// triplet such as "335:CO:SNTL".
func (c *Client) FetchPeriodOfRecord(ctx context.Context, triplet string) ([]analytics.DailyObservation, error) {
	return c.fetchDailyCSV(ctx, triplet, "POR_BEGIN,POR_END")
}

// FetchRecentDays fetches the trailing days of daily WTEQ values, including
// today.
func (c *Client) FetchRecentDays(ctx context.Context, triplet string, days int) ([]analytics.DailyObservation, error) {
	return c.fetchDailyCSV(ctx, triplet, fmt.Sprintf("-%d,0", days))
}

func (c *Client) fetchDailyCSV(ctx context.Context, triplet, span string) ([]analytics.DailyObservation, error) {
	// Report-generator path format, as used by the dashboard:
	// /reportGenerator/view_csv/customSingleStationReport/daily/<triplet>|id=""|name/<span>/WTEQ::value
	reportURL := fmt.Sprintf("%s/reportGenerator/view_csv/customSingleStationReport/daily/%s/%s/WTEQ::value",
		c.baseURL,
		url.PathEscape(triplet+`|id=""|name`),
		span)

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building report request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.countFetchError()
		return nil, fmt.Errorf("fetching daily series for %s: %w", triplet, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.countFetchError()
		return nil, fmt.Errorf("fetching daily series for %s: unexpected status %d", triplet, resp.StatusCode)
	}

	obs, dropped, err := ParseDailyCSV(resp.Body)
	if err != nil {
		c.countFetchError()
		return nil, fmt.Errorf("parsing daily series for %s: %w", triplet, err)
	}

	if c.metrics != nil {
		c.metrics.FetchDuration.WithLabelValues("snotel").Observe(time.Since(start).Seconds())
		c.metrics.RowsIngestedTotal.WithLabelValues(triplet).Add(float64(len(obs)))
		c.metrics.RowsDroppedTotal.WithLabelValues(triplet).Add(float64(dropped))
	}
	if dropped > 0 && c.logger != nil {
		c.logger.Warnf("dropped %d malformed rows for %s", dropped, triplet)
	}
	if c.logger != nil {
		c.logger.Debugf("fetched %d daily observations for %s in %s", len(obs), triplet, time.Since(start))
	}

	return obs, nil
}

func (c *Client) countFetchError() {
	if c.metrics != nil {
		c.metrics.FetchErrorsTotal.WithLabelValues("snotel").Inc()
	}
}

// awdb REST data response shapes; only the fields we read.
type awdbStationData struct {
	StationTriplet string `json:"stationTriplet"`
	Data           []struct {
		StationElement struct {
			ElementCode string `json:"elementCode"`
		} `json:"stationElement"`
		Values []struct {
			Date   string   `json:"date"`
			Value  *float64 `json:"value"`
			Median *float64 `json:"median"`
		} `json:"values"`
	} `json:"data"`
}

// FetchSnapshots fills CurrentValue and PctOfMedian on a copy of the roster
// using the AWDB REST data endpoint, which returns the latest daily WTEQ
// alongside its climatological median. Stations missing from the response
// keep nil values; a partial snapshot is not an error.
func (c *Client) FetchSnapshots(ctx context.Context, roster []analytics.StationMeta) ([]analytics.StationMeta, error) {
	if len(roster) == 0 {
		return nil, nil
	}

	triplets := ""
	for i, s := range roster {
		if i > 0 {
			triplets += ","
		}
		triplets += s.ID
	}

	q := url.Values{}
	q.Set("stationTriplets", triplets)
	q.Set("elements", "WTEQ")
	q.Set("duration", "DAILY")
	q.Set("centralTendencyType", "MEDIAN")
	dataURL := fmt.Sprintf("%s/awdbRestApi/services/v1/data?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dataURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building snapshot request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.countFetchError()
		return nil, fmt.Errorf("fetching station snapshots: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.countFetchError()
		return nil, fmt.Errorf("fetching station snapshots: unexpected status %d", resp.StatusCode)
	}

	var payload []awdbStationData
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.countFetchError()
		return nil, fmt.Errorf("decoding station snapshots: %w", err)
	}

	byTriplet := make(map[string]awdbStationData, len(payload))
	for _, sd := range payload {
		byTriplet[sd.StationTriplet] = sd
	}

	out := make([]analytics.StationMeta, len(roster))
	copy(out, roster)
	for i := range out {
		sd, ok := byTriplet[out[i].ID]
		if !ok {
			continue
		}
		applySnapshot(&out[i], sd)
	}

	return out, nil
}

// applySnapshot copies the latest WTEQ value and percent-of-median from an
// AWDB data record onto a station.
func applySnapshot(s *analytics.StationMeta, sd awdbStationData) {
	for _, d := range sd.Data {
		if d.StationElement.ElementCode != "WTEQ" {
			continue
		}
		for i := len(d.Values) - 1; i >= 0; i-- {
			v := d.Values[i]
			if v.Value == nil {
				continue
			}
			val := *v.Value
			s.CurrentValue = &val
			if v.Median != nil && *v.Median > 0 {
				pct := val / *v.Median * 100
				s.PctOfMedian = &pct
			}
			return
		}
	}
}
