package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chartscan/internal/types"
)

func barAt(minute int, o, h, l, c float64) types.Bar {
	return types.Bar{
		Timestamp: time.Date(2024, 3, 4, 9, minute, 0, 0, time.UTC),
		Open:      o, High: h, Low: l, Close: c,
	}
}

func TestAggregate_FactorOneIsIndependentCopy(t *testing.T) {
	bars := []types.Bar{
		barAt(0, 100, 102, 99, 101),
		barAt(5, 101, 103, 100, 102),
		barAt(10, 102, 102, 98, 99),
	}

	out := Aggregate(bars, 1)

	assert.Equal(t, bars, out, "factor 1 should preserve every field and the order")

	// Mutating the output must not touch the input.
	out[0].High = 9999
	assert.Equal(t, float64(102), bars[0].High, "input should not share storage with output")
}

func TestAggregate_ChunkInvariants(t *testing.T) {
	bars := []types.Bar{
		barAt(0, 100, 105, 99, 101),
		barAt(5, 101, 110, 100, 108),
		barAt(10, 108, 109, 95, 96),
		barAt(15, 96, 98, 94, 97),
	}

	out := Aggregate(bars, 3)

	assert.Len(t, out, 2, "4 bars by factor 3 should yield ceil(4/3)=2 bars")

	// First chunk: bars[0..2]
	assert.Equal(t, bars[0].Timestamp, out[0].Timestamp)
	assert.Equal(t, float64(100), out[0].Open, "open should come from the first bar of the chunk")
	assert.Equal(t, float64(110), out[0].High, "high should be the chunk max")
	assert.Equal(t, float64(95), out[0].Low, "low should be the chunk min")
	assert.Equal(t, float64(96), out[0].Close, "close should come from the last bar of the chunk")

	// Final short chunk: just bars[3]
	assert.Equal(t, bars[3], out[1], "a single-bar final chunk should pass through unchanged")
}

func TestAggregate_ChunkCount(t *testing.T) {
	mk := func(n int) []types.Bar {
		bars := make([]types.Bar, n)
		for i := range bars {
			bars[i] = barAt(i, 100, 101, 99, 100)
		}
		return bars
	}

	assert.Len(t, Aggregate(mk(10), 2), 5)
	assert.Len(t, Aggregate(mk(10), 3), 4)
	assert.Len(t, Aggregate(mk(10), 10), 1)
	assert.Len(t, Aggregate(mk(10), 11), 1, "factor larger than input should yield a single bar")
	assert.Empty(t, Aggregate(nil, 3))
}
