package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chartscan/internal/types"
)

func sessionBars(day time.Time, n int, base float64) []types.Bar {
	bars := make([]types.Bar, n)
	for i := range bars {
		o := base + float64(i)
		bars[i] = types.Bar{
			Timestamp: day.Add(time.Duration(i) * 5 * time.Minute),
			Open:      o, High: o + 2, Low: o - 1, Close: o + 1,
		}
	}
	return bars
}

func TestBuildSource_GapLabelsAndFlags(t *testing.T) {
	day1 := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)

	var bars []types.Bar
	bars = append(bars, sessionBars(day1, 6, 100)...) // closes 101..106
	bars = append(bars, sessionBars(day2, 6, 106.5)...)

	src, err := BuildSource(BuildConfig{
		Name: "TESTIDX", Timezone: "UTC", TradingHours: "08:00-17:00",
	}, bars)
	assert.NoError(t, err)
	assert.Len(t, src.TradingDays, 2)

	first := src.TradingDays[0]
	assert.Equal(t, "20240105", first.Date)
	assert.Equal(t, "N/A", first.GapDirection, "first day has nothing to gap against")
	assert.Equal(t, "N/A", first.GapSizeClass)
	assert.Nil(t, first.PrevClose)
	assert.Nil(t, first.OpenAbovePrevHigh)
	assert.Len(t, first.Bars, 6)

	second := src.TradingDays[1]
	assert.Equal(t, "20240108", second.Date)
	// No bar in the pre-close hour, so prev close falls back to the day close.
	assert.Equal(t, 106.0, *second.PrevClose)
	assert.Equal(t, 107.0, *second.PrevHigh)
	assert.Equal(t, 99.0, *second.PrevLow)
	// Open 106.5 vs prev close 106 -> +0.47% gap up.
	assert.Equal(t, "GAP UP", second.GapDirection)
	assert.Equal(t, "0.25%-0.5%", second.GapSizeClass)
	assert.False(t, *second.OpenAbovePrevHigh, "106.5 does not clear the prior high of 107")
	assert.False(t, *second.CloseBelowPrevLow)
}

func TestBuildSource_DropsShortDays(t *testing.T) {
	day1 := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	stub := time.Date(2024, 1, 6, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC)

	var bars []types.Bar
	bars = append(bars, sessionBars(day1, 6, 100)...)
	bars = append(bars, sessionBars(stub, 2, 200)...) // too short, dropped
	bars = append(bars, sessionBars(day2, 6, 106)...)

	src, err := BuildSource(BuildConfig{
		Name: "TESTIDX", Timezone: "UTC", TradingHours: "08:00-17:00",
	}, bars)
	assert.NoError(t, err)

	assert.Len(t, src.TradingDays, 2)
	assert.Equal(t, "20240105", src.TradingDays[0].Date)
	assert.Equal(t, "20240108", src.TradingDays[1].Date)
	// The dropped stub day must not have become the gap reference.
	assert.Equal(t, 106.0, *src.TradingDays[1].PrevClose)
}

func TestBuildSource_LongHaltReadsAsNA(t *testing.T) {
	day1 := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 22, 8, 0, 0, 0, time.UTC) // 17 days later

	var bars []types.Bar
	bars = append(bars, sessionBars(day1, 6, 100)...)
	bars = append(bars, sessionBars(day2, 6, 150)...)

	src, err := BuildSource(BuildConfig{
		Name: "TESTIDX", Timezone: "UTC", TradingHours: "08:00-17:00",
	}, bars)
	assert.NoError(t, err)

	second := src.TradingDays[1]
	assert.Equal(t, "N/A", second.GapDirection, "a 17-day halt should not be read as a gap")
	assert.Equal(t, "N/A", second.GapSizeClass)
	assert.Nil(t, second.OpenAbovePrevHigh)
	assert.NotNil(t, second.PrevClose, "prior-day stats are still carried for reference")
}

func TestBuildSource_CashCloseProxy(t *testing.T) {
	mk := func(hour, minute int, c float64) types.Bar {
		return types.Bar{
			Timestamp: time.Date(2024, 1, 5, hour, minute, 0, 0, time.UTC),
			Open:      c - 1, High: c + 1, Low: c - 2, Close: c,
		}
	}

	bars := []types.Bar{
		mk(15, 50, 100), mk(15, 55, 101),
		mk(16, 0, 102), mk(16, 30, 103), mk(16, 55, 104),
		mk(17, 0, 110), // after-close print, not the gap reference
	}
	bars = append(bars, sessionBars(time.Date(2024, 1, 8, 8, 0, 0, 0, time.UTC), 6, 103)...)

	src, err := BuildSource(BuildConfig{
		Name: "TESTIDX", Timezone: "UTC", TradingHours: "08:00-17:00",
	}, bars)
	assert.NoError(t, err)

	second := src.TradingDays[1]
	assert.Equal(t, 104.0, *second.PrevClose, "gap reference should be the last bar in the pre-close hour")
	assert.Equal(t, 111.0, *second.PrevHigh, "day high still covers the full session")
}

func TestBuildSource_BadConfig(t *testing.T) {
	_, err := BuildSource(BuildConfig{Name: "X", Timezone: "Mars/Olympus", TradingHours: "08:00-17:00"}, nil)
	assert.Error(t, err)

	_, err = BuildSource(BuildConfig{Name: "X", Timezone: "UTC", TradingHours: "all day"}, nil)
	assert.Error(t, err)
}

func TestClassifyGapSize(t *testing.T) {
	assert.Equal(t, "0-0.1%", ClassifyGapSize(0.05))
	assert.Equal(t, "0.1%-0.25%", ClassifyGapSize(-0.2))
	assert.Equal(t, "0.25%-0.5%", ClassifyGapSize(0.25))
	assert.Equal(t, "0.5%-1.0%", ClassifyGapSize(-0.75))
	assert.Equal(t, "1.0%+", ClassifyGapSize(1.0))
	assert.Equal(t, "1.0%+", ClassifyGapSize(-3.2))
}
