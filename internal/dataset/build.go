package dataset

import (
	"fmt"
	"math"
	"time"

	"chartscan/internal/types"
)

const minDayBars = 5

// BuildConfig describes one instrument feed for trading-day construction.
type BuildConfig struct {
	Name         string
	Timezone     string // IANA name, e.g. "Europe/London"
	TradingHours string // "HH:MM-HH:MM" in local time
}

// BuildSource constructs a dataset source from a flat, chronologically ordered
// stream of base-granularity bars: bars are grouped into trading days by their
// local calendar date, days with fewer than 5 bars are dropped, and each kept
// day gets its gap labels and prior-day comparison flags.
//
// The previous close used for gap measurement is the close of the last bar in
// the hour before session end (the cash-close proxy); if no such bar exists the
// day's final close is used. Gaps are only measured when at most 5 calendar
// days elapsed since the previous session, so long halts read as N/A rather
// than as huge gaps.
func BuildSource(cfg BuildConfig, bars []types.Bar) (Source, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Source{}, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	endHour, err := sessionEndHour(cfg.TradingHours)
	if err != nil {
		return Source{}, err
	}

	src := Source{
		Name:         cfg.Name,
		Timezone:     cfg.Timezone,
		TradingHours: cfg.TradingHours,
	}

	type prevStats struct {
		day              time.Time
		close, high, low float64
	}
	var prev *prevStats

	for start := 0; start < len(bars); {
		day := bars[start].Timestamp.In(loc)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

		end := start
		for end < len(bars) && sameLocalDay(bars[end].Timestamp, dayStart, loc) {
			end++
		}
		dayBars := bars[start:end]
		start = end

		if len(dayBars) < minDayBars {
			continue
		}

		dayOpen := dayBars[0].Open
		dayClose := dayBars[len(dayBars)-1].Close
		dayHigh := math.Inf(-1)
		dayLow := math.Inf(1)
		for _, b := range dayBars {
			if b.High > dayHigh {
				dayHigh = b.High
			}
			if b.Low < dayLow {
				dayLow = b.Low
			}
		}

		// Cash-close proxy: last bar in the hour before session end.
		closeRef := dayClose
		for i := len(dayBars) - 1; i >= 0; i-- {
			if dayBars[i].Timestamp.In(loc).Hour() == endHour-1 {
				closeRef = dayBars[i].Close
				break
			}
		}

		td := TradingDay{
			Date:         dayStart.Format("20060102"),
			GapDirection: "N/A",
			GapSizeClass: "N/A",
		}

		if prev != nil {
			td.PrevClose = ptr(round2(prev.close))
			td.PrevHigh = ptr(round2(prev.high))
			td.PrevLow = ptr(round2(prev.low))

			if dayStart.Sub(prev.day) <= 5*24*time.Hour {
				gapPct := (dayOpen - prev.close) / prev.close * 100
				switch {
				case dayOpen > prev.close:
					td.GapDirection = "GAP UP"
				case dayOpen < prev.close:
					td.GapDirection = "GAP DOWN"
				default:
					td.GapDirection = "FLAT"
				}
				td.GapSizeClass = ClassifyGapSize(gapPct)
				td.OpenAbovePrevHigh = ptr(dayOpen > prev.high)
				td.CloseBelowPrevLow = ptr(dayClose < prev.low)
			}
		}

		td.Bars = make([]CompactBar, len(dayBars))
		for i, b := range dayBars {
			td.Bars[i] = CompactBar{
				TimestampMs: b.Timestamp.UnixMilli(),
				Open:        round2(b.Open),
				High:        round2(b.High),
				Low:         round2(b.Low),
				Close:       round2(b.Close),
			}
		}

		src.TradingDays = append(src.TradingDays, td)
		prev = &prevStats{day: dayStart, close: closeRef, high: dayHigh, low: dayLow}
	}

	return src, nil
}

// ClassifyGapSize buckets an open gap by absolute percent size.
func ClassifyGapSize(pct float64) string {
	abs := math.Abs(pct)
	switch {
	case abs < 0.1:
		return "0-0.1%"
	case abs < 0.25:
		return "0.1%-0.25%"
	case abs < 0.5:
		return "0.25%-0.5%"
	case abs < 1.0:
		return "0.5%-1.0%"
	default:
		return "1.0%+"
	}
}

func sessionEndHour(hours string) (int, error) {
	var sh, sm, eh, em int
	if _, err := fmt.Sscanf(hours, "%d:%d-%d:%d", &sh, &sm, &eh, &em); err != nil {
		return 0, fmt.Errorf("parse trading hours %q: %w", hours, err)
	}
	return eh, nil
}

func sameLocalDay(ts, dayStart time.Time, loc *time.Location) bool {
	t := ts.In(loc)
	return t.Year() == dayStart.Year() && t.YearDay() == dayStart.YearDay()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr[T any](v T) *T {
	return &v
}
