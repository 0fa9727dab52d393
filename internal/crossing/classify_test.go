package crossing

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linspace(a, b float64, n int) []float64 {
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + float64(i)*step
	}
	out[n-1] = b
	return out
}

// requireTiles asserts that pos and neg together cover [lo, hi] with no gaps
// or overlaps.
func requireTiles(t *testing.T, lo, hi float64, pos, neg []Interval) {
	t.Helper()

	all := append(slices.Clone(pos), neg...)
	require.NotEmpty(t, all)
	slices.SortFunc(all, func(a, b Interval) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})

	assert.Equal(t, lo, all[0].Start)
	assert.Equal(t, hi, all[len(all)-1].End)
	for i := 1; i < len(all); i++ {
		assert.Equal(t, all[i-1].End, all[i].Start, "gap or overlap between %v and %v", all[i-1], all[i])
	}
}

func TestClassifyIntervalsCubic(t *testing.T) {
	domain := linspace(-2, 5, 1000)
	eval := EvaluatorFunc(cubic)

	brackets, err := FindBrackets(domain, 0, eval)
	require.NoError(t, err)
	require.Len(t, brackets, 3)

	crossings, err := RefineAll(brackets, 0, eval, DefaultRefineConfig())
	require.NoError(t, err)

	pos, neg, err := ClassifyIntervals(domain, 0, eval, crossings)
	require.NoError(t, err)
	require.Len(t, pos, 2)
	require.Len(t, neg, 2)

	assert.InDelta(t, -1, pos[0].Start, 1e-9)
	assert.InDelta(t, 1, pos[0].End, 1e-9)
	assert.InDelta(t, 4, pos[1].Start, 1e-9)
	assert.Equal(t, 5.0, pos[1].End)

	assert.Equal(t, -2.0, neg[0].Start)
	assert.InDelta(t, -1, neg[0].End, 1e-9)
	assert.InDelta(t, 1, neg[1].Start, 1e-9)
	assert.InDelta(t, 4, neg[1].End, 1e-9)

	requireTiles(t, -2, 5, pos, neg)
}

func TestClassifyIntervalsNoCrossings(t *testing.T) {
	domain := []float64{0, 1, 2, 3}

	above := EvaluatorFunc(func(x, threshold float64, _ ...any) (float64, error) { return 20, nil })
	pos, neg, err := ClassifyIntervals(domain, 10, above, nil)
	require.NoError(t, err)
	assert.Equal(t, []Interval{{0, 3}}, pos)
	assert.Empty(t, neg)

	below := EvaluatorFunc(func(x, threshold float64, _ ...any) (float64, error) { return 5, nil })
	pos, neg, err = ClassifyIntervals(domain, 10, below, nil)
	require.NoError(t, err)
	assert.Empty(t, pos)
	assert.Equal(t, []Interval{{0, 3}}, neg)
}

func TestClassifyIntervalsOnThreshold(t *testing.T) {
	// A midpoint sitting exactly on the threshold counts as positive.
	flat := EvaluatorFunc(func(x, threshold float64, _ ...any) (float64, error) { return threshold, nil })

	pos, neg, err := ClassifyIntervals([]float64{0, 10}, 7, flat, nil)
	require.NoError(t, err)
	assert.Equal(t, []Interval{{0, 10}}, pos)
	assert.Empty(t, neg)
}

func TestClassifyIntervalsCrossingAtEndpoints(t *testing.T) {
	domain := linspace(0, 10, 11)
	eval := EvaluatorFunc(linear)

	// Crossing equal to the first domain point is not duplicated.
	pos, neg, err := ClassifyIntervals(domain, 0, eval, []float64{0, 5})
	require.NoError(t, err)
	assert.Equal(t, []Interval{{5, 10}}, pos)
	assert.Equal(t, []Interval{{0, 5}}, neg)

	// Same for the last domain point.
	pos, neg, err = ClassifyIntervals(domain, 0, eval, []float64{5, 10})
	require.NoError(t, err)
	assert.Equal(t, []Interval{{5, 10}}, pos)
	assert.Equal(t, []Interval{{0, 5}}, neg)
}

func TestClassifyIntervalsSinglePoint(t *testing.T) {
	eval := EvaluatorFunc(linear)

	pos, neg, err := ClassifyIntervals([]float64{7}, 0, eval, nil)
	require.NoError(t, err)
	assert.Equal(t, []Interval{{7, 7}}, pos)
	assert.Empty(t, neg)
}

func TestClassifyIntervalsErrors(t *testing.T) {
	_, _, err := ClassifyIntervals(nil, 0, EvaluatorFunc(linear), nil)
	assert.ErrorIs(t, err, ErrEmptyDomain)

	boom := errors.New("no ephemeris")
	failing := EvaluatorFunc(func(x, threshold float64, _ ...any) (float64, error) { return 0, boom })
	pos, neg, err := ClassifyIntervals([]float64{0, 1}, 0, failing, nil)
	assert.Same(t, boom, err)
	assert.Nil(t, pos)
	assert.Nil(t, neg)
}

// TestClassifyIntervalsIdempotent reclassifies each output interval as a domain
// of its own and expects the same bucket back.
func TestClassifyIntervalsIdempotent(t *testing.T) {
	wave := EvaluatorFunc(func(x, threshold float64, _ ...any) (float64, error) {
		return math.Sin(x) + 0.3*math.Sin(3*x), nil
	})
	domain := linspace(0, 20, 400)

	p, err := Continuous{}.Classify(Problem{Domain: domain, Threshold: 0.2, Eval: wave})
	require.NoError(t, err)
	require.NotEmpty(t, p.Positive)
	require.NotEmpty(t, p.Negative)

	for _, iv := range p.Positive {
		pos, neg, err := ClassifyIntervals([]float64{iv.Start, iv.End}, 0.2, wave, nil)
		require.NoError(t, err)
		assert.Equal(t, []Interval{iv}, pos)
		assert.Empty(t, neg)
	}
	for _, iv := range p.Negative {
		pos, neg, err := ClassifyIntervals([]float64{iv.Start, iv.End}, 0.2, wave, nil)
		require.NoError(t, err)
		assert.Empty(t, pos)
		assert.Equal(t, []Interval{iv}, neg)
	}

	requireTiles(t, 0, 20, p.Positive, p.Negative)
}
