package series

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chartscan/internal/types"
)

func TestClassifyDirection(t *testing.T) {
	up := types.Bar{Open: 100, High: 105, Low: 99, Close: 104}
	down := types.Bar{Open: 100, High: 101, Low: 95, Close: 96}
	flat := types.Bar{Open: 100, High: 102, Low: 98, Close: 100}

	assert.Equal(t, types.UP, ClassifyDirection(up))
	assert.Equal(t, types.DOWN, ClassifyDirection(down))
	assert.Equal(t, types.FLAT, ClassifyDirection(flat))
}

func TestClassifyBody_Boundaries(t *testing.T) {
	// range 10, body 2.5 -> exactly 25% falls into the 25-50% bucket
	assert.Equal(t, types.BodyMedium, ClassifyBody(types.Bar{Open: 100, High: 108, Low: 98, Close: 102.5}))

	// range 10, body 7.5 -> exactly 75% falls into the >75% bucket
	assert.Equal(t, types.BodyFull, ClassifyBody(types.Bar{Open: 100, High: 108, Low: 98, Close: 107.5}))

	// range 10, body 4.9 -> 49% stays in 25-50%
	assert.Equal(t, types.BodyMedium, ClassifyBody(types.Bar{Open: 100, High: 108, Low: 98, Close: 104.9}))

	// range 10, body 5 -> 50% moves to 50-75%
	assert.Equal(t, types.BodyLarge, ClassifyBody(types.Bar{Open: 100, High: 108, Low: 98, Close: 105}))

	// doji-like small body
	assert.Equal(t, types.BodySmall, ClassifyBody(types.Bar{Open: 100, High: 105, Low: 95, Close: 100.5}))
}

func TestClassifyBody_ZeroRange(t *testing.T) {
	b := types.Bar{Open: 100, High: 100, Low: 100, Close: 100}
	assert.Equal(t, types.BodySmall, ClassifyBody(b), "zero-range bar should classify as small without dividing by zero")
}

func TestDirectionsAndBodyClasses(t *testing.T) {
	bars := []types.Bar{
		{Open: 100, High: 110, Low: 100, Close: 110},
		{Open: 110, High: 110, Low: 100, Close: 100},
	}

	assert.Equal(t, []types.Direction{types.UP, types.DOWN}, Directions(bars))
	assert.Equal(t, []types.BodyClass{types.BodyFull, types.BodyFull}, BodyClasses(bars))
	assert.Empty(t, Directions(nil))
}
