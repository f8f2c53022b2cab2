package series

import (
	"chartscan/internal/types"
)

// Aggregate rolls up base-granularity bars into coarser bars. The input is
// partitioned into consecutive chunks of factor bars; the final chunk may be
// shorter and is kept. Per chunk: timestamp and open come from the first bar,
// close from the last, high/low are the chunk extremes.
//
// The result is always freshly allocated, so factor 1 yields an independent
// copy of the input. Output length is ceil(len(bars)/factor).
func Aggregate(bars []types.Bar, factor int) []types.Bar {
	if factor < 1 {
		factor = 1
	}

	out := make([]types.Bar, 0, (len(bars)+factor-1)/factor)

	for start := 0; start < len(bars); start += factor {
		end := start + factor
		if end > len(bars) {
			end = len(bars)
		}
		chunk := bars[start:end]

		agg := types.Bar{
			Timestamp: chunk[0].Timestamp,
			Open:      chunk[0].Open,
			High:      chunk[0].High,
			Low:       chunk[0].Low,
			Close:     chunk[len(chunk)-1].Close,
		}
		for _, b := range chunk[1:] {
			if b.High > agg.High {
				agg.High = b.High
			}
			if b.Low < agg.Low {
				agg.Low = b.Low
			}
		}

		out = append(out, agg)
	}

	return out
}
