// Command snowtracker serves SNOTEL snowpack analytics over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/chrissnell/snowtracker/internal/analytics"
	"github.com/chrissnell/snowtracker/internal/cache"
	"github.com/chrissnell/snowtracker/internal/log"
	"github.com/chrissnell/snowtracker/internal/metrics"
	"github.com/chrissnell/snowtracker/internal/regions"
	"github.com/chrissnell/snowtracker/internal/server"
	"github.com/chrissnell/snowtracker/internal/snotel"
	"github.com/chrissnell/snowtracker/internal/store"
	"github.com/chrissnell/snowtracker/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

// porRefreshInterval is how long a stored period-of-record series is served
// before refetching from the USDA API.
const porRefreshInterval = 24 * time.Hour

func main() {
	cfgFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("snowtracker %s\n", version)
		os.Exit(0)
	}

	filename, _ := filepath.Abs(*cfgFile)
	cfg, err := config.Load(filename)
	if err != nil {
		fmt.Printf("Failed to load configuration. Did you pass the -config flag? Run with -h for help: %v\n", err)
		os.Exit(1)
	}

	if err := log.Init(log.Options{Debug: *debug || cfg.Debug, File: cfg.LogFile}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger := log.GetSugaredLogger()

	if err := regions.Validate(regions.DefaultRules); err != nil {
		logger.Errorf("Invalid region table: %v", err)
		os.Exit(1)
	}

	m := metrics.NewCollector("snowtracker", prometheus.DefaultRegisterer)
	client := snotel.NewClient(cfg.SnotelBaseURL, logger, m)

	var seriesStore *store.Store
	if cfg.DBPath != "" {
		seriesStore, err = store.Open(cfg.DBPath)
		if err != nil {
			logger.Errorf("Failed to open series store %s: %v", cfg.DBPath, err)
			os.Exit(1)
		}
		defer seriesStore.Close()
		logger.Infof("using series store at %s", cfg.DBPath)
	}

	seriesCache := cache.New(fetchFunc(client, seriesStore, logger), m)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	wg := &sync.WaitGroup{}
	ctrl, err := server.NewController(ctx, wg, cfg, server.Deps{
		Logger:    logger,
		Clock:     clockwork.NewRealClock(),
		Metrics:   m,
		Gatherer:  prometheus.DefaultGatherer,
		Series:    seriesCache,
		Snapshots: client,
		Rules:     regions.DefaultRules,
	})
	if err != nil {
		logger.Errorf("Failed to create API server: %v", err)
		os.Exit(1)
	}

	if err := ctrl.StartController(); err != nil {
		logger.Errorf("Failed to start API server: %v", err)
		os.Exit(1)
	}

	wg.Wait()
}

// fetchFunc builds the cache's upstream loader: serve the stored series when
// fresh, refetch and persist otherwise, and fall back to a stale stored
// series when the USDA API is down.
func fetchFunc(client *snotel.Client, seriesStore *store.Store, logger *zap.SugaredLogger) cache.FetchFunc {
	return func(ctx context.Context, stationID string) ([]analytics.DailyObservation, error) {
		if seriesStore != nil {
			fetchedAt, err := seriesStore.FetchedAt(ctx, stationID)
			if err == nil && time.Since(fetchedAt) < porRefreshInterval {
				if series, err := seriesStore.LoadSeries(ctx, stationID); err == nil && len(series) > 0 {
					return series, nil
				}
			}
		}

		series, err := client.FetchPeriodOfRecord(ctx, stationID)
		if err != nil {
			if seriesStore != nil {
				if stale, loadErr := seriesStore.LoadSeries(ctx, stationID); loadErr == nil && len(stale) > 0 {
					logger.Warnf("serving stale stored series for %s, upstream fetch failed: %v", stationID, err)
					return stale, nil
				}
			}
			return nil, err
		}

		if seriesStore != nil {
			if err := seriesStore.SaveSeries(ctx, stationID, series); err != nil {
				logger.Warnf("failed to persist series for %s: %v", stationID, err)
			}
		}
		return series, nil
	}
}
