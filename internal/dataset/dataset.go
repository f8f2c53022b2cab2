// Package dataset decodes prepared multi-source OHLC datasets. The wire format
// is a single JSON document: metadata plus a list of sources, each carrying its
// trading days with compact [timestampMs, open, high, low, close] bar arrays.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"chartscan/internal/types"
)

type Dataset struct {
	Metadata Metadata `json:"metadata"`
	Sources  []Source `json:"sources"`
}

type Metadata struct {
	Generated        string   `json:"generated"`
	BaseFrequency    string   `json:"baseFrequency"`
	Sources          []string `json:"sources"`
	TotalSources     int      `json:"totalSources"`
	TotalTradingDays int      `json:"totalTradingDays"`
}

// BaseFrequencyMinutes parses the metadata interval, e.g. "5min" -> 5.
func (m Metadata) BaseFrequencyMinutes() (int, error) {
	s := strings.TrimSuffix(m.BaseFrequency, "min")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid base frequency %q", m.BaseFrequency)
	}
	return n, nil
}

type Source struct {
	Name         string       `json:"name"`
	Timezone     string       `json:"timezone"`
	TradingHours string       `json:"tradingHours"`
	TradingDays  []TradingDay `json:"tradingDays"`
}

type TradingDay struct {
	Date              string       `json:"date"` // YYYYMMDD
	PrevClose         *float64     `json:"prevClose"`
	PrevHigh          *float64     `json:"prevHigh"`
	PrevLow           *float64     `json:"prevLow"`
	GapDirection      string       `json:"gapDirection"`
	GapSizeClass      string       `json:"gapSizeClass"`
	OpenAbovePrevHigh *bool        `json:"openAbovePrevHigh"`
	CloseBelowPrevLow *bool        `json:"closeBelowPrevLow"`
	Bars              []CompactBar `json:"bars"`
}

// CompactBar is one bar in the compact array encoding.
type CompactBar struct {
	TimestampMs int64
	Open        float64
	High        float64
	Low         float64
	Close       float64
}

func (b *CompactBar) UnmarshalJSON(data []byte) error {
	var vals []float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("bar must be a numeric array: %w", err)
	}
	if len(vals) != 5 {
		return fmt.Errorf("bar must have 5 elements, got %d", len(vals))
	}
	b.TimestampMs = int64(vals[0])
	b.Open = vals[1]
	b.High = vals[2]
	b.Low = vals[3]
	b.Close = vals[4]
	return nil
}

func (b CompactBar) MarshalJSON() ([]byte, error) {
	return json.Marshal([]float64{float64(b.TimestampMs), b.Open, b.High, b.Low, b.Close})
}

// Bar converts the compact encoding into the in-memory bar type.
func (b CompactBar) Bar() types.Bar {
	return types.Bar{
		Timestamp: time.UnixMilli(b.TimestampMs).UTC(),
		Open:      b.Open,
		High:      b.High,
		Low:       b.Low,
		Close:     b.Close,
	}
}

// Load decodes and structurally validates a dataset. A dataset that does not
// match the expected shape is the one condition that fails loudly; per-day
// oddities are left for the filter and simulator layers to resolve.
func Load(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return &ds, nil
}

func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func (ds *Dataset) validate() error {
	if _, err := ds.Metadata.BaseFrequencyMinutes(); err != nil {
		return err
	}
	if len(ds.Sources) == 0 {
		return fmt.Errorf("no sources")
	}
	for _, src := range ds.Sources {
		if src.Name == "" {
			return fmt.Errorf("source with empty name")
		}
		for _, day := range src.TradingDays {
			if len(day.Date) != 8 {
				return fmt.Errorf("source %q: bad date %q", src.Name, day.Date)
			}
			if _, err := strconv.Atoi(day.Date); err != nil {
				return fmt.Errorf("source %q: bad date %q", src.Name, day.Date)
			}
			if len(day.Bars) == 0 {
				return fmt.Errorf("source %q day %s: no bars", src.Name, day.Date)
			}
		}
	}
	return nil
}
