package crossing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRuns(t *testing.T) {
	tests := []struct {
		values  []float64
		wantPos []Run
		wantNeg []Run
	}{
		{[]float64{1, 2, 3, 4, 5}, []Run{{0, 4}}, nil},
		{[]float64{-1, -2, -3, -4, -5}, nil, []Run{{0, 4}}},
		{[]float64{1, 2, 3, -4, -5}, []Run{{0, 2}}, []Run{{3, 4}}},
		{[]float64{-1, -2, -3, 4, 5}, []Run{{3, 4}}, []Run{{0, 2}}},
		{[]float64{1, 2, -3, 4, -5}, []Run{{0, 1}, {3, 3}}, []Run{{2, 2}, {4, 4}}},
		{[]float64{0, -1, 0}, []Run{{0, 0}, {2, 2}}, []Run{{1, 1}}},
		{[]float64{3}, []Run{{0, 0}}, nil},
		{[]float64{-3}, nil, []Run{{0, 0}}},
	}

	for _, tt := range tests {
		pos, neg, err := ClassifyRuns(tt.values)
		require.NoError(t, err)
		assert.Equal(t, tt.wantPos, pos, "positive runs for %v", tt.values)
		assert.Equal(t, tt.wantNeg, neg, "negative runs for %v", tt.values)
	}
}

func TestClassifyRunsEmpty(t *testing.T) {
	pos, neg, err := ClassifyRuns(nil)
	assert.ErrorIs(t, err, ErrEmptySamples)
	assert.Nil(t, pos)
	assert.Nil(t, neg)
}

// TestClassifyRunsPartition checks that the runs cover every index exactly once
// and alternate between the two buckets.
func TestClassifyRunsPartition(t *testing.T) {
	values := []float64{-2, -1, 0, 1, 0.5, -0.1, -3, 2, 2, 2, -1, 0}

	pos, neg, err := ClassifyRuns(values)
	require.NoError(t, err)

	owner := make([]int, len(values))
	for _, r := range pos {
		for i := r.Start; i <= r.End; i++ {
			owner[i]++
			assert.Equal(t, 1, Sign(values[i]))
		}
	}
	for _, r := range neg {
		for i := r.Start; i <= r.End; i++ {
			owner[i]++
			assert.Equal(t, -1, Sign(values[i]))
		}
	}
	for i, n := range owner {
		assert.Equal(t, 1, n, "index %d covered %d times", i, n)
	}

	// Interleave by first index: buckets must alternate and be contiguous.
	next := 0
	lastBucket := 0
	for next < len(values) {
		bucket := 0
		var run Run
		for _, r := range pos {
			if r.Start == next {
				bucket, run = 1, r
			}
		}
		for _, r := range neg {
			if r.Start == next {
				bucket, run = -1, r
			}
		}
		require.NotZero(t, bucket, "no run starts at %d", next)
		assert.NotEqual(t, lastBucket, bucket, "buckets must alternate at %d", next)
		lastBucket = bucket
		next = run.End + 1
	}
}
