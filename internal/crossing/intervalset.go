package crossing

import (
	"slices"
)

// IntervalSet is a normalized union of closed intervals: sorted by start,
// with overlapping or touching members merged.
type IntervalSet struct {
	ivs []Interval
}

// NewIntervalSet builds a normalized set from arbitrary closed intervals.
// Intervals with End < Start are ignored.
func NewIntervalSet(ivs ...Interval) IntervalSet {
	sorted := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.End >= iv.Start {
			sorted = append(sorted, iv)
		}
	}
	slices.SortFunc(sorted, func(a, b Interval) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})

	var merged []Interval
	for _, iv := range sorted {
		n := len(merged)
		if n > 0 && iv.Start <= merged[n-1].End {
			merged[n-1].End = max(merged[n-1].End, iv.End)
			continue
		}
		merged = append(merged, iv)
	}
	return IntervalSet{ivs: merged}
}

// Intervals returns a copy of the normalized members.
func (s IntervalSet) Intervals() []Interval {
	return slices.Clone(s.ivs)
}

// Empty reports whether the set has no members.
func (s IntervalSet) Empty() bool {
	return len(s.ivs) == 0
}

// Hull returns the smallest interval containing the whole set.
// The second return is false for an empty set.
func (s IntervalSet) Hull() (Interval, bool) {
	if len(s.ivs) == 0 {
		return Interval{}, false
	}
	return Interval{Start: s.ivs[0].Start, End: s.ivs[len(s.ivs)-1].End}, true
}

// Union returns the normalized union of s and other.
func (s IntervalSet) Union(other IntervalSet) IntervalSet {
	all := make([]Interval, 0, len(s.ivs)+len(other.ivs))
	all = append(all, s.ivs...)
	all = append(all, other.ivs...)
	return NewIntervalSet(all...)
}

// Complement returns the parts of within not covered by s. The returned
// intervals are open: their endpoints belong to s (or lie on within's edges
// when within extends past the set).
func (s IntervalSet) Complement(within Interval) []Interval {
	var gaps []Interval
	cursor := within.Start
	for _, iv := range s.ivs {
		if iv.End < within.Start || iv.Start > within.End {
			continue
		}
		if iv.Start > cursor {
			gaps = append(gaps, Interval{Start: cursor, End: iv.Start})
		}
		cursor = max(cursor, iv.End)
	}
	if cursor < within.End {
		gaps = append(gaps, Interval{Start: cursor, End: within.End})
	}
	return gaps
}

// Margins returns the index gaps between adjacent runs, i.e. the
// complement of the union of all runs inside their hull. Each gap is an
// (i, i+1) pair that contains a crossing, so for runs produced by
// ClassifyRuns the result equals FindCrossingIndices on the same samples.
func Margins(pos, neg []Run) []IndexPair {
	ivs := make([]Interval, 0, len(pos)+len(neg))
	for _, r := range pos {
		ivs = append(ivs, Interval{Start: float64(r.Start), End: float64(r.End)})
	}
	for _, r := range neg {
		ivs = append(ivs, Interval{Start: float64(r.Start), End: float64(r.End)})
	}

	set := NewIntervalSet(ivs...)
	hull, ok := set.Hull()
	if !ok {
		return nil
	}

	gaps := set.Complement(hull)
	var pairs []IndexPair
	for _, g := range gaps {
		pairs = append(pairs, IndexPair{Lo: int(g.Start), Hi: int(g.End)})
	}
	return pairs
}
