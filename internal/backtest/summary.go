package backtest

import (
	"fmt"

	"chartscan/internal/catalog"
)

// Summary aggregates the per-view results of one scan run.
type Summary struct {
	Wins     int
	Losses   int
	Skipped  int
	Decisive int
	WinRate  float64 // percent of decisive trades won
	AvgPnL   float64 // mean pnl over decisive trades

	Results []Result
}

// Simulate validates the params, then runs every view through SimulateOne and
// aggregates. Invalid params are the caller's configuration problem and are
// reported as an error; they never produce a zero-trade summary.
func Simulate(views []*catalog.View, p Params) (*Summary, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trade params: %w", err)
	}

	s := &Summary{Results: make([]Result, 0, len(views))}
	var pnlSum float64

	for _, v := range views {
		r := SimulateOne(v, p)
		s.Results = append(s.Results, r)

		switch r.Outcome {
		case Win:
			s.Wins++
			pnlSum += r.PnL
		case Loss:
			s.Losses++
			pnlSum += r.PnL
		default:
			s.Skipped++
		}
	}

	s.Decisive = s.Wins + s.Losses
	if s.Decisive > 0 {
		s.WinRate = float64(s.Wins) / float64(s.Decisive) * 100
		s.AvgPnL = pnlSum / float64(s.Decisive)
	}

	simLog.Debug("simulation done", "views", len(views), "wins", s.Wins, "losses", s.Losses, "skipped", s.Skipped)
	return s, nil
}
