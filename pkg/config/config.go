// Package config loads the snow tracker's YAML configuration: the HTTP
// listener, storage paths, upstream endpoint, and the station roster the
// dashboard serves.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/chrissnell/snowtracker/internal/analytics"
)

// Config is the complete service configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	Debug      bool   `yaml:"debug"`
	LogFile    string `yaml:"log_file,omitempty"`

	// DBPath is the SQLite series store location; empty disables
	// persistence and every series is fetched on demand.
	DBPath string `yaml:"db_path,omitempty"`

	// SnotelBaseURL overrides the USDA AWDB host, mainly for tests.
	SnotelBaseURL string `yaml:"snotel_base_url,omitempty"`

	Stations []StationConfig `yaml:"stations"`
}

// StationConfig describes one SNOTEL station in the roster.
type StationConfig struct {
	Triplet   string  `yaml:"triplet"` // e.g. "335:CO:SNTL"
	Name      string  `yaml:"name"`
	State     string  `yaml:"state"`
	Elevation float64 `yaml:"elevation"`
	Lat       float64 `yaml:"lat"`
	Lon       float64 `yaml:"lon"`
}

// Load reads and validates a YAML configuration file.
func Load(filename string) (*Config, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8090"
	}

	if len(cfg.Stations) == 0 {
		return nil, fmt.Errorf("config declares no stations")
	}
	seen := make(map[string]bool, len(cfg.Stations))
	for _, s := range cfg.Stations {
		if s.Triplet == "" {
			return nil, fmt.Errorf("station %q has no triplet", s.Name)
		}
		if seen[s.Triplet] {
			return nil, fmt.Errorf("station triplet %s declared twice", s.Triplet)
		}
		seen[s.Triplet] = true
	}

	return &cfg, nil
}

// Roster converts the configured stations to analytics metadata, without
// current-value snapshots.
func (c *Config) Roster() []analytics.StationMeta {
	roster := make([]analytics.StationMeta, 0, len(c.Stations))
	for _, s := range c.Stations {
		roster = append(roster, analytics.StationMeta{
			ID:        s.Triplet,
			Name:      s.Name,
			StateCode: s.State,
			Elevation: s.Elevation,
			Lat:       s.Lat,
			Lon:       s.Lon,
		})
	}
	return roster
}
