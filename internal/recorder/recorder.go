// Package recorder persists scan runs so parameter sweeps can be compared
// after the fact. Computed views are never persisted, only run inputs and
// trade outcomes.
package recorder

import "chartscan/internal/backtest"

// Run is one completed scan: the inputs that shaped it and its summary.
type Run struct {
	Dataset    string
	FilterDesc string // compact human-readable description of the filter spec
	Params     backtest.Params
	Views      int
	Summary    *backtest.Summary
}

// Recorder persists completed runs.
type Recorder interface {
	RecordRun(run *Run) error
	Close() error
}
