// Package server exposes the snow analytics over HTTP: a small JSON API for
// the station roster, per-station analytics, and narrative summaries, plus
// health and Prometheus endpoints. All presentation rounding happens here,
// in the transform layer; the analytics values underneath stay full
// precision.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chrissnell/snowtracker/internal/analytics"
	"github.com/chrissnell/snowtracker/internal/cache"
	"github.com/chrissnell/snowtracker/internal/metrics"
	"github.com/chrissnell/snowtracker/internal/regions"
	"github.com/chrissnell/snowtracker/pkg/config"
)

// SnapshotSource supplies current-value snapshots for the station roster.
// *snotel.Client satisfies it; tests substitute a stub.
type SnapshotSource interface {
	FetchSnapshots(ctx context.Context, roster []analytics.StationMeta) ([]analytics.StationMeta, error)
}

// Deps are the collaborators the controller serves from. Logger and Series
// are required; Clock defaults to the wall clock, Rules to the standard
// region table, Gatherer to the default Prometheus registry.
type Deps struct {
	Logger    *zap.SugaredLogger
	Clock     clockwork.Clock
	Metrics   *metrics.Collector
	Gatherer  prometheus.Gatherer
	Series    *cache.SeriesCache
	Snapshots SnapshotSource
	Rules     []regions.Rule
}

// Controller represents the analytics API server.
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	cfg      *config.Config
	logger   *zap.SugaredLogger
	clock    clockwork.Clock
	metrics  *metrics.Collector
	gatherer prometheus.Gatherer

	series    *cache.SeriesCache
	snapshots SnapshotSource
	engine    *analytics.Engine
	rules     []regions.Rule

	Server   http.Server
	handlers *Handlers
}

// NewController creates an API server controller and wires up its router.
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg *config.Config, deps Deps) (*Controller, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("server requires a logger")
	}
	if deps.Series == nil {
		return nil, fmt.Errorf("server requires a series cache")
	}
	if deps.Snapshots == nil {
		return nil, fmt.Errorf("server requires a snapshot source")
	}
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Rules == nil {
		deps.Rules = regions.DefaultRules
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	if err := regions.Validate(deps.Rules); err != nil {
		return nil, fmt.Errorf("invalid region table: %w", err)
	}

	ctrl := &Controller{
		ctx:       ctx,
		wg:        wg,
		cfg:       cfg,
		logger:    deps.Logger,
		clock:     deps.Clock,
		metrics:   deps.Metrics,
		gatherer:  deps.Gatherer,
		series:    deps.Series,
		snapshots: deps.Snapshots,
		engine:    analytics.NewEngine(deps.Logger),
		rules:     deps.Rules,
	}
	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = cfg.ListenAddr
	ctrl.Server.Handler = ctrl.setupRouter()

	return ctrl, nil
}

// StartController starts the API server and shuts it down when the
// controller's context is canceled.
func (c *Controller) StartController() error {
	c.logger.Infof("starting API server on %s", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			c.logger.Errorf("API server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Info("shutting down the API server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints.
func (c *Controller) setupRouter() http.Handler {
	router := mux.NewRouter()
	router.Use(c.requestMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/stations", c.handlers.GetStations).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id}/analytics", c.handlers.GetStationAnalytics).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id}/narrative", c.handlers.GetStationNarrative).Methods(http.MethodGet)

	router.HandleFunc("/healthz", c.handlers.GetHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return handlers.CompressHandler(handlers.RecoveryHandler()(router))
}
