package series

import (
	"math"

	"chartscan/internal/types"
)

// ClassifyDirection returns UP when the bar closed above its open, DOWN when
// below, FLAT otherwise.
func ClassifyDirection(bar types.Bar) types.Direction {
	switch {
	case bar.Close > bar.Open:
		return types.UP
	case bar.Close < bar.Open:
		return types.DOWN
	default:
		return types.FLAT
	}
}

// ClassifyBody buckets the bar by body-to-range ratio. A zero (or inverted)
// range means the ratio is undefined; such bars count as small-bodied.
func ClassifyBody(bar types.Bar) types.BodyClass {
	rng := bar.High - bar.Low
	if rng <= 0 {
		return types.BodySmall
	}

	ratio := math.Abs(bar.Close-bar.Open) / rng * 100
	switch {
	case ratio < 25:
		return types.BodySmall
	case ratio < 50:
		return types.BodyMedium
	case ratio < 75:
		return types.BodyLarge
	default:
		return types.BodyFull
	}
}

// Directions classifies every bar of a sequence.
func Directions(bars []types.Bar) []types.Direction {
	out := make([]types.Direction, len(bars))
	for i, b := range bars {
		out[i] = ClassifyDirection(b)
	}
	return out
}

// BodyClasses classifies every bar of a sequence.
func BodyClasses(bars []types.Bar) []types.BodyClass {
	out := make([]types.BodyClass, len(bars))
	for i, b := range bars {
		out[i] = ClassifyBody(b)
	}
	return out
}
