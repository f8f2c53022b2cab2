package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"chartscan/internal/backtest"
	"chartscan/internal/catalog"
	"chartscan/internal/config"
	"chartscan/internal/dataset"
	"chartscan/internal/filter"
	"chartscan/internal/recorder"
)

func main() {
	cfgPath := flag.String("config", "scan.yaml", "path to the scan config")
	listTrades := flag.Bool("trades", false, "print the per-view trade list")
	flag.Parse()

	if err := run(*cfgPath, *listTrades); err != nil {
		slog.Error("scan failed", "error", err)
		os.Exit(1)
	}
}

func run(cfgPath string, listTrades bool) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	ds, err := dataset.LoadFile(cfg.Dataset)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(ds)
	if err != nil {
		return err
	}
	slog.Info("catalog loaded",
		"sources", len(cat.Sources()),
		"tradingDays", cat.Len(),
		"baseFrequency", cat.BaseFrequency().String(),
		"maxBars", cat.MaxBaseBarCount())

	spec, err := cfg.FilterSpec()
	if err != nil {
		return err
	}

	views := filter.Generate(cat, spec)
	slog.Info("views generated", "filter", spec.String(), "count", len(views))

	summary, err := backtest.Simulate(views, cfg.TradeParams())
	if err != nil {
		return err
	}

	summary.Print()
	if listTrades {
		summary.PrintResults()
	}

	rec, err := openRecorder(cfg)
	if err != nil {
		return err
	}
	defer rec.Close()

	return rec.RecordRun(&recorder.Run{
		Dataset:    cfg.Dataset,
		FilterDesc: spec.String(),
		Params:     cfg.TradeParams(),
		Views:      len(views),
		Summary:    summary,
	})
}

func openRecorder(cfg *config.Config) (recorder.Recorder, error) {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoop(), nil
	}
	return recorder.NewSQLite(cfg.Database.SQLitePath)
}
