// Package catalog flattens a loaded dataset into an immutable, ordered
// collection of trading-day entries and serves aggregated chart views of them.
package catalog

import (
	"fmt"

	"chartscan/internal/dataset"
	"chartscan/internal/logging"
	"chartscan/internal/types"
)

var catLog = logging.New("catalog")

const (
	// MinViewBars is the smallest view worth surfacing; shorter views are
	// dropped silently.
	MinViewBars = 5

	// DefaultBarCountCeiling bounds the advertised max bar count. A full
	// 9-hour session of 5-minute bars is 108; anything above that is noise
	// for per-bar filter enumeration.
	DefaultBarCountCeiling = 108
)

// Entry is one trading day of one source, flattened from the dataset.
// Entries are created at load time and never mutated.
type Entry struct {
	Source       string
	Timezone     string
	TradingHours string
	Date         string // YYYYMMDD

	GapDirection      string
	GapSizeClass      string
	OpenAbovePrevHigh bool
	CloseBelowPrevLow bool

	HasPrevDay bool
	PrevClose  float64
	PrevHigh   float64
	PrevLow    float64

	Bars []types.Bar // base granularity
}

// SourceMeta describes one dataset source.
type SourceMeta struct {
	Name         string
	Timezone     string
	TradingHours string
	Days         int
}

type Catalog struct {
	baseFreq types.Frequency
	entries  []Entry
	index    map[string]int // source + "\x00" + date -> entries offset
	sources  []SourceMeta

	maxBaseBars int // uncapped max across entries
	barCeiling  int
}

type Option func(*Catalog)

// WithBarCountCeiling overrides the cap applied by MaxBaseBarCount.
func WithBarCountCeiling(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.barCeiling = n
		}
	}
}

// Load flattens the dataset source-major, preserving the given day order.
// It performs no filtering; every day the dataset carries becomes an entry.
func Load(ds *dataset.Dataset, opts ...Option) (*Catalog, error) {
	baseMin, err := ds.Metadata.BaseFrequencyMinutes()
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		baseFreq:   types.Frequency(baseMin),
		index:      make(map[string]int),
		barCeiling: DefaultBarCountCeiling,
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, src := range ds.Sources {
		for _, day := range src.TradingDays {
			key := entryKey(src.Name, day.Date)
			if _, dup := c.index[key]; dup {
				return nil, fmt.Errorf("duplicate trading day %s for source %q", day.Date, src.Name)
			}

			e := Entry{
				Source:       src.Name,
				Timezone:     src.Timezone,
				TradingHours: src.TradingHours,
				Date:         day.Date,
				GapDirection: day.GapDirection,
				GapSizeClass: day.GapSizeClass,
				Bars:         make([]types.Bar, len(day.Bars)),
			}
			if day.OpenAbovePrevHigh != nil {
				e.OpenAbovePrevHigh = *day.OpenAbovePrevHigh
			}
			if day.CloseBelowPrevLow != nil {
				e.CloseBelowPrevLow = *day.CloseBelowPrevLow
			}
			if day.PrevClose != nil && day.PrevHigh != nil && day.PrevLow != nil {
				e.HasPrevDay = true
				e.PrevClose = *day.PrevClose
				e.PrevHigh = *day.PrevHigh
				e.PrevLow = *day.PrevLow
			}
			for i, b := range day.Bars {
				e.Bars[i] = b.Bar()
			}

			c.index[key] = len(c.entries)
			c.entries = append(c.entries, e)
			if len(e.Bars) > c.maxBaseBars {
				c.maxBaseBars = len(e.Bars)
			}
		}

		c.sources = append(c.sources, SourceMeta{
			Name:         src.Name,
			Timezone:     src.Timezone,
			TradingHours: src.TradingHours,
			Days:         len(src.TradingDays),
		})
	}

	catLog.Debug("catalog loaded", "sources", len(c.sources), "entries", len(c.entries), "maxBaseBars", c.maxBaseBars)
	return c, nil
}

// BaseFrequency is the finest bar interval present in the dataset.
func (c *Catalog) BaseFrequency() types.Frequency {
	return c.baseFreq
}

// Entries returns the flattened entries in catalog order. Callers must treat
// the slice as read-only.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Sources lists source names in dataset order.
func (c *Catalog) Sources() []string {
	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.Name
	}
	return names
}

func (c *Catalog) SourceMeta(name string) (SourceMeta, bool) {
	for _, s := range c.sources {
		if s.Name == name {
			return s, true
		}
	}
	return SourceMeta{}, false
}

// MaxBaseBarCount is the largest base-granularity bar count across all
// entries, capped at the configured ceiling. It bounds per-bar filter
// enumeration; it is not used for truncation.
func (c *Catalog) MaxBaseBarCount() int {
	if c.maxBaseBars > c.barCeiling {
		return c.barCeiling
	}
	return c.maxBaseBars
}

func entryKey(source, date string) string {
	return source + "\x00" + date
}
