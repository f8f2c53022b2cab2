// Package filter generates chart views matching a multi-dimensional scan
// specification: entry-level dimensions first, then the cross product of
// requested (frequency, bars) pairs, then per-bar shape constraints.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"chartscan/internal/catalog"
	"chartscan/internal/logging"
	"chartscan/internal/types"
)

var filterLog = logging.New("filter")

// BarFilter constrains a single bar of a view. Bar is 1-based. An empty Body
// is a wildcard: any body class passes.
type BarFilter struct {
	Bar       int
	Direction types.Direction
	Body      types.BodyClass
}

// Spec holds the accept sets per dimension. An empty set leaves its dimension
// unconstrained; set order is preserved in the generated output. Omitted
// Frequencies default to the catalog's base frequency, omitted BarsOptions to
// the full trading day.
type Spec struct {
	Sources        []string
	Frequencies    []types.Frequency
	BarsOptions    []types.BarsOption
	GapDirections  []string
	GapSizeClasses []string

	// Each requested flag must be true on the entry; both requested means
	// both must hold.
	OpenAbovePrevHigh bool
	CloseBelowPrevLow bool

	BarFilters []BarFilter
}

// String renders a compact description of the constrained dimensions, mainly
// for run records and logs.
func (s Spec) String() string {
	var parts []string
	if len(s.Sources) > 0 {
		parts = append(parts, "sources="+strings.Join(s.Sources, ","))
	}
	if len(s.Frequencies) > 0 {
		fs := make([]string, len(s.Frequencies))
		for i, f := range s.Frequencies {
			fs[i] = f.String()
		}
		parts = append(parts, "freq="+strings.Join(fs, ","))
	}
	if len(s.BarsOptions) > 0 {
		bs := make([]string, len(s.BarsOptions))
		for i, b := range s.BarsOptions {
			bs[i] = b.String()
		}
		parts = append(parts, "bars="+strings.Join(bs, ","))
	}
	if len(s.GapDirections) > 0 {
		parts = append(parts, "gap="+strings.Join(s.GapDirections, ","))
	}
	if len(s.GapSizeClasses) > 0 {
		parts = append(parts, "gapSize="+strings.Join(s.GapSizeClasses, ","))
	}
	if s.OpenAbovePrevHigh {
		parts = append(parts, "openAbovePrevHigh")
	}
	if s.CloseBelowPrevLow {
		parts = append(parts, "closeBelowPrevLow")
	}
	for _, bf := range s.BarFilters {
		p := fmt.Sprintf("bar%d=%s", bf.Bar, bf.Direction)
		if bf.Body != "" {
			p += "/" + string(bf.Body)
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return "unconstrained"
	}
	return strings.Join(parts, " ")
}

// Generate returns every view that survives all of the spec's dimensions, in
// catalog order: source, then date, then frequency, then bars option. Views
// shorter than catalog.MinViewBars are dropped, never surfaced as errors.
func Generate(c *catalog.Catalog, spec Spec) []*catalog.View {
	freqs := spec.Frequencies
	if len(freqs) == 0 {
		freqs = []types.Frequency{c.BaseFrequency()}
	}
	barsOpts := spec.BarsOptions
	if len(barsOpts) == 0 {
		barsOpts = []types.BarsOption{types.AllBars()}
	}

	var views []*catalog.View
	entries := c.Entries()
	for i := range entries {
		e := &entries[i]
		if !matchEntry(e, &spec) {
			continue
		}

		for _, freq := range freqs {
			for _, opt := range barsOpts {
				v, ok := c.View(e.Source, e.Date, freq, opt)
				if !ok || len(v.Bars) < catalog.MinViewBars {
					continue
				}
				if !matchBars(v, spec.BarFilters) {
					continue
				}
				views = append(views, v)
			}
		}
	}

	filterLog.Debug("generate done", "entries", len(entries), "views", len(views))
	return views
}

// matchEntry is a conjunction across dimensions; each non-empty set is a
// disjunction over its members.
func matchEntry(e *catalog.Entry, spec *Spec) bool {
	if len(spec.Sources) > 0 && !slices.Contains(spec.Sources, e.Source) {
		return false
	}
	if len(spec.GapDirections) > 0 && !slices.Contains(spec.GapDirections, e.GapDirection) {
		return false
	}
	if len(spec.GapSizeClasses) > 0 && !slices.Contains(spec.GapSizeClasses, e.GapSizeClass) {
		return false
	}
	if spec.OpenAbovePrevHigh && !e.OpenAbovePrevHigh {
		return false
	}
	if spec.CloseBelowPrevLow && !e.CloseBelowPrevLow {
		return false
	}
	return true
}

// matchBars fails closed: an out-of-range bar number excludes the view just
// like a direction or body mismatch does.
func matchBars(v *catalog.View, filters []BarFilter) bool {
	for _, f := range filters {
		i := f.Bar - 1
		if i < 0 || i >= len(v.Directions) {
			return false
		}
		if v.Directions[i] != f.Direction {
			return false
		}
		if f.Body != "" && v.BodyClasses[i] != f.Body {
			return false
		}
	}
	return true
}
