package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/chrissnell/snowtracker/internal/analytics"
	"github.com/chrissnell/snowtracker/internal/narrative"
	"github.com/chrissnell/snowtracker/internal/regions"
)

var errUnknownStation = errors.New("unknown station")

// Handlers contains all HTTP handlers for the API server.
type Handlers struct {
	controller *Controller
}

// NewHandlers creates a new handlers instance.
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{controller: ctrl}
}

// GetHealth reports liveness.
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// GetStations returns the station roster with current-value snapshots.
func (h *Handlers) GetStations(w http.ResponseWriter, req *http.Request) {
	roster, err := h.controller.snapshots.FetchSnapshots(req.Context(), h.controller.cfg.Roster())
	if err != nil {
		h.controller.logger.Errorf("snapshot fetch failed: %v", err)
		respondError(w, http.StatusBadGateway, "upstream snapshot fetch failed")
		return
	}
	respondJSON(w, http.StatusOK, transformStations(roster))
}

// GetStationAnalytics returns the full analytics record for one station.
// An optional ?date=YYYY-MM-DD query parameter pins "today" so responses are
// reproducible.
func (h *Handlers) GetStationAnalytics(w http.ResponseWriter, req *http.Request) {
	today, ok := h.resolveDate(w, req)
	if !ok {
		return
	}

	a, _, err := h.computeStation(req.Context(), mux.Vars(req)["id"], today)
	if err != nil {
		h.respondComputeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transformAnalytics(a))
}

// GetStationNarrative returns the templated summary sentences for one
// station. It accepts the same ?date override as the analytics endpoint.
func (h *Handlers) GetStationNarrative(w http.ResponseWriter, req *http.Request) {
	today, ok := h.resolveDate(w, req)
	if !ok {
		return
	}

	a, station, err := h.computeStation(req.Context(), mux.Vars(req)["id"], today)
	if err != nil {
		h.respondComputeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, narrativeResponse{
		Station:   station.ID,
		Name:      station.Name,
		Sentences: narrative.Build(a, station),
	})
}

// computeStation runs both analytics phases for one station as of today.
func (h *Handlers) computeStation(ctx context.Context, stationID string, today time.Time) (*analytics.StationAnalytics, analytics.StationMeta, error) {
	c := h.controller

	roster := c.cfg.Roster()
	if !rosterContains(roster, stationID) {
		return nil, analytics.StationMeta{}, errUnknownStation
	}

	// Snapshots are best-effort: the period-of-record analytics still stand
	// when the current-value endpoint is down.
	snaps, err := c.snapshots.FetchSnapshots(ctx, roster)
	if err != nil {
		c.logger.Warnf("snapshot fetch failed, serving analytics without current values: %v", err)
		snaps = roster
	}
	station := stationByID(snaps, stationID)

	por, err := c.series.Get(ctx, stationID)
	if err != nil {
		return nil, analytics.StationMeta{}, err
	}

	regionName := regions.Lookup(c.rules, station.StateCode)
	region := analytics.RegionResult{
		Name:        regionName,
		PctOfMedian: regions.Average(c.rules, regionName, snaps),
	}

	start := time.Now()
	base := c.engine.ComputeBase(por, station, snaps, region, today)
	refined := c.engine.RefineWithCurrentSeason(base,
		analytics.CurrentSeason(por, today),
		analytics.MedianCurve(por, today))
	if c.metrics != nil {
		c.metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	}

	return refined, station, nil
}

// resolveDate returns the effective "today" for a request: the ?date
// override when present, the injected clock otherwise. On a malformed date
// it writes a 400 and reports false.
func (h *Handlers) resolveDate(w http.ResponseWriter, req *http.Request) (time.Time, bool) {
	raw := req.URL.Query().Get("date")
	if raw == "" {
		return h.controller.clock.Now().UTC(), true
	}
	date, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}

func (h *Handlers) respondComputeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnknownStation) {
		respondError(w, http.StatusNotFound, "unknown station")
		return
	}
	h.controller.logger.Errorf("analytics computation failed: %v", err)
	respondError(w, http.StatusBadGateway, "upstream series fetch failed")
}

func rosterContains(roster []analytics.StationMeta, id string) bool {
	for _, s := range roster {
		if s.ID == id {
			return true
		}
	}
	return false
}

func stationByID(roster []analytics.StationMeta, id string) analytics.StationMeta {
	for _, s := range roster {
		if s.ID == id {
			return s
		}
	}
	return analytics.StationMeta{ID: id}
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
