package catalog

import (
	"fmt"

	"chartscan/internal/series"
	"chartscan/internal/types"
)

// View is one trading day re-expressed at a requested (frequency, bars) pair.
// Views are recomputed per request and never cached or mutated.
type View struct {
	Source     string
	Date       string
	Frequency  types.Frequency
	BarsOption types.BarsOption
	Key        string

	Bars        []types.Bar
	Directions  []types.Direction
	BodyClasses []types.BodyClass
}

// View locates the entry for (source, date) and derives the requested view:
// aggregate to the target frequency, truncate per the bars option, then
// reclassify direction and body on the result. The second return is false on
// a lookup miss or when the frequency is not a multiple of the base interval.
func (c *Catalog) View(source, date string, freq types.Frequency, opt types.BarsOption) (*View, bool) {
	idx, ok := c.index[entryKey(source, date)]
	if !ok {
		catLog.Debug("view miss", "source", source, "date", date)
		return nil, false
	}
	e := &c.entries[idx]

	base := c.baseFreq.Minutes()
	if freq.Minutes() < base || freq.Minutes()%base != 0 {
		catLog.Debug("view rejected: frequency not a multiple of base", "freq", freq, "base", c.baseFreq)
		return nil, false
	}

	bars := series.Aggregate(e.Bars, freq.Minutes()/base)

	opt = c.normalizeBarsOption(opt)
	if !opt.IsAll() && len(bars) > opt.Limit() {
		bars = bars[:opt.Limit()]
	}

	return &View{
		Source:      source,
		Date:        date,
		Frequency:   freq,
		BarsOption:  opt,
		Key:         viewKey(source, date, freq, opt),
		Bars:        bars,
		Directions:  series.Directions(bars),
		BodyClasses: series.BodyClasses(bars),
	}, true
}

// normalizeBarsOption folds a limit that can never truncate anything into
// AllBars, so both spellings produce the same view and the same key.
func (c *Catalog) normalizeBarsOption(opt types.BarsOption) types.BarsOption {
	if !opt.IsAll() && opt.Limit() >= c.maxBaseBars {
		return types.AllBars()
	}
	return opt
}

func viewKey(source, date string, freq types.Frequency, opt types.BarsOption) string {
	return fmt.Sprintf("%s-%s-%s-%s", source, date, freq, opt)
}
