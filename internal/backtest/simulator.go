// Package backtest runs a deterministic single-trade simulation per chart
// view: enter at the trigger bar's close, then walk forward until the
// range-scaled target or stop is hit.
package backtest

import (
	"fmt"

	"chartscan/internal/catalog"
	"chartscan/internal/logging"
	"chartscan/internal/types"
)

var simLog = logging.New("sim")

const (
	Win  Outcome = "WIN"
	Loss Outcome = "LOSS"
	Skip Outcome = "SKIP"
)

type Outcome string

const (
	SkipNotEnoughBars SkipReason = "not enough bars"
	SkipZeroRange     SkipReason = "zero range"
	SkipBothHit       SkipReason = "both hit"
	SkipEndOfDay      SkipReason = "end of day"
)

// SkipReason says why a simulation resolved without a trade. These are normal
// outcomes, not errors.
type SkipReason string

// Params configures the simulated trade. TriggerBar is 1-based; target and
// stop are percentages of the trigger bar's high-low range.
type Params struct {
	TriggerBar int
	Direction  types.TradeDirection
	TargetPct  float64
	StopPct    float64
}

func (p Params) Validate() error {
	if p.TriggerBar < 1 {
		return fmt.Errorf("trigger bar must be >= 1, got %d", p.TriggerBar)
	}
	if p.Direction != types.Long && p.Direction != types.Short {
		return fmt.Errorf("direction must be %s or %s, got %q", types.Long, types.Short, p.Direction)
	}
	if p.TargetPct <= 0 {
		return fmt.Errorf("target pct must be positive, got %v", p.TargetPct)
	}
	if p.StopPct <= 0 {
		return fmt.Errorf("stop pct must be positive, got %v", p.StopPct)
	}
	return nil
}

// Result is the outcome of one view's simulation. Entry/Target/Stop are
// populated as soon as they are computed, even for SKIP outcomes, so callers
// can inspect what the trade would have been.
type Result struct {
	ViewKey    string
	Outcome    Outcome
	PnL        float64
	Entry      float64
	Target     float64
	Stop       float64
	SkipReason SkipReason
}

// SimulateOne runs the walk-forward state machine for a single view. It is
// stateless: nothing carries over between views or between calls.
func SimulateOne(v *catalog.View, p Params) Result {
	res := Result{ViewKey: v.Key, Outcome: Skip}

	trigger := p.TriggerBar - 1
	if trigger < 0 || trigger >= len(v.Bars) {
		res.SkipReason = SkipNotEnoughBars
		return res
	}

	bar := v.Bars[trigger]
	res.Entry = bar.Close

	rng := bar.Range()
	if rng <= 0 {
		res.SkipReason = SkipZeroRange
		return res
	}

	targetOffset := p.TargetPct / 100 * rng
	stopOffset := p.StopPct / 100 * rng
	if p.Direction == types.Long {
		res.Target = res.Entry + targetOffset
		res.Stop = res.Entry - stopOffset
	} else {
		res.Target = res.Entry - targetOffset
		res.Stop = res.Entry + stopOffset
	}

	for _, b := range v.Bars[trigger+1:] {
		var hitTarget, hitStop bool
		if p.Direction == types.Long {
			hitTarget = b.High >= res.Target
			hitStop = b.Low <= res.Stop
		} else {
			hitTarget = b.Low <= res.Target
			hitStop = b.High >= res.Stop
		}

		switch {
		case hitTarget && hitStop:
			// OHLC alone cannot order intrabar moves, so a bar that
			// spans both levels is unresolvable.
			res.SkipReason = SkipBothHit
			simLog.Debug("both levels hit on one bar", "view", v.Key, "target", res.Target, "stop", res.Stop)
			return res
		case hitTarget:
			res.Outcome = Win
			res.PnL = targetOffset
			return res
		case hitStop:
			res.Outcome = Loss
			res.PnL = -stopOffset
			return res
		}
	}

	res.SkipReason = SkipEndOfDay
	return res
}
