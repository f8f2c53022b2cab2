package types

import (
	"fmt"
	"strconv"
	"time"
)

const (
	UP   Direction = "UP"
	DOWN Direction = "DOWN"
	FLAT Direction = "FLAT"
)

// Direction classifies a bar by its close relative to its open.
type Direction string

const (
	BodySmall  BodyClass = "<25%"
	BodyMedium BodyClass = "25-50%"
	BodyLarge  BodyClass = "50-75%"
	BodyFull   BodyClass = ">75%"
)

// BodyClass buckets a bar by body size relative to its high-low range.
type BodyClass string

type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
}

// Range returns the bar's high-low range. May be zero for degenerate bars.
func (b Bar) Range() float64 {
	return b.High - b.Low
}

// Frequency is a bar interval expressed in minutes.
type Frequency int

func (f Frequency) Minutes() int {
	return int(f)
}

func (f Frequency) String() string {
	return fmt.Sprintf("%dm", int(f))
}

// BarsOption says how many bars of a view to keep: either the full trading
// day, or just the first n bars. The zero value means "all bars".
type BarsOption struct {
	n int
}

func AllBars() BarsOption {
	return BarsOption{}
}

func Limited(n int) BarsOption {
	if n <= 0 {
		return BarsOption{}
	}
	return BarsOption{n: n}
}

func (o BarsOption) IsAll() bool {
	return o.n == 0
}

// Limit returns the bar cap, 0 when the option is AllBars.
func (o BarsOption) Limit() int {
	return o.n
}

func (o BarsOption) String() string {
	if o.n == 0 {
		return "all"
	}
	return strconv.Itoa(o.n)
}

const (
	Long  TradeDirection = "LONG"
	Short TradeDirection = "SHORT"
)

type TradeDirection string
