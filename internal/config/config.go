// Package config loads the YAML scan configuration: dataset location, filter
// dimensions, trade parameters and optional results persistence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"chartscan/internal/backtest"
	"chartscan/internal/filter"
	"chartscan/internal/types"
)

type Config struct {
	Dataset  string `yaml:"dataset"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	Filter struct {
		Sources           []string    `yaml:"sources"`
		Frequencies       []int       `yaml:"frequencies"`  // minutes
		BarsOptions       []string    `yaml:"bars_options"` // "all" or a bar count
		GapDirections     []string    `yaml:"gap_directions"`
		GapSizeClasses    []string    `yaml:"gap_size_classes"`
		OpenAbovePrevHigh bool        `yaml:"open_above_prev_high"`
		CloseBelowPrevLow bool        `yaml:"close_below_prev_low"`
		Bars              []BarFilter `yaml:"bars"`
	} `yaml:"filter"`

	Trade struct {
		TriggerBar int     `yaml:"trigger_bar"`
		Direction  string  `yaml:"direction"`
		TargetPct  float64 `yaml:"target_pct"`
		StopPct    float64 `yaml:"stop_pct"`
	} `yaml:"trade"`
}

type BarFilter struct {
	Bar       int    `yaml:"bar"`
	Direction string `yaml:"direction"`
	Body      string `yaml:"body"` // empty = any body class
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if v := os.Getenv("CHARTSCAN_DATASET"); v != "" {
		cfg.Dataset = v
	}
	if v := os.Getenv("CHARTSCAN_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Trade.TriggerBar == 0 {
		cfg.Trade.TriggerBar = 1
	}
	if cfg.Trade.Direction == "" {
		cfg.Trade.Direction = string(types.Long)
	}
	if cfg.Trade.TargetPct == 0 {
		cfg.Trade.TargetPct = 100
	}
	if cfg.Trade.StopPct == 0 {
		cfg.Trade.StopPct = 100
	}

	return cfg, nil
}

// Validate checks everything that would otherwise only fail mid-scan.
func (c *Config) Validate() error {
	if c.Dataset == "" {
		return fmt.Errorf("dataset is required")
	}
	if _, err := c.FilterSpec(); err != nil {
		return err
	}
	if err := c.TradeParams().Validate(); err != nil {
		return err
	}
	return nil
}

// FilterSpec converts the YAML shape into the engine's spec.
func (c *Config) FilterSpec() (filter.Spec, error) {
	spec := filter.Spec{
		Sources:           c.Filter.Sources,
		GapDirections:     c.Filter.GapDirections,
		GapSizeClasses:    c.Filter.GapSizeClasses,
		OpenAbovePrevHigh: c.Filter.OpenAbovePrevHigh,
		CloseBelowPrevLow: c.Filter.CloseBelowPrevLow,
	}

	for _, m := range c.Filter.Frequencies {
		if m < 1 {
			return filter.Spec{}, fmt.Errorf("frequency must be positive minutes, got %d", m)
		}
		spec.Frequencies = append(spec.Frequencies, types.Frequency(m))
	}

	for _, raw := range c.Filter.BarsOptions {
		opt, err := parseBarsOption(raw)
		if err != nil {
			return filter.Spec{}, err
		}
		spec.BarsOptions = append(spec.BarsOptions, opt)
	}

	for _, bf := range c.Filter.Bars {
		dir, err := parseDirection(bf.Direction)
		if err != nil {
			return filter.Spec{}, fmt.Errorf("bar filter %d: %w", bf.Bar, err)
		}
		body, err := parseBodyClass(bf.Body)
		if err != nil {
			return filter.Spec{}, fmt.Errorf("bar filter %d: %w", bf.Bar, err)
		}
		spec.BarFilters = append(spec.BarFilters, filter.BarFilter{
			Bar:       bf.Bar,
			Direction: dir,
			Body:      body,
		})
	}

	return spec, nil
}

func (c *Config) TradeParams() backtest.Params {
	return backtest.Params{
		TriggerBar: c.Trade.TriggerBar,
		Direction:  types.TradeDirection(c.Trade.Direction),
		TargetPct:  c.Trade.TargetPct,
		StopPct:    c.Trade.StopPct,
	}
}

func parseBarsOption(raw string) (types.BarsOption, error) {
	if raw == "all" {
		return types.AllBars(), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return types.BarsOption{}, fmt.Errorf("bars option must be \"all\" or a positive count, got %q", raw)
	}
	return types.Limited(n), nil
}

func parseDirection(raw string) (types.Direction, error) {
	switch d := types.Direction(raw); d {
	case types.UP, types.DOWN, types.FLAT:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q", raw)
	}
}

func parseBodyClass(raw string) (types.BodyClass, error) {
	switch b := types.BodyClass(raw); b {
	case "", types.BodySmall, types.BodyMedium, types.BodyLarge, types.BodyFull:
		return b, nil
	default:
		return "", fmt.Errorf("unknown body class %q", raw)
	}
}
