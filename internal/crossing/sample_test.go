package crossing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleShiftsByThreshold(t *testing.T) {
	calls := map[float64]int{}
	eval := EvaluatorFunc(func(x, threshold float64, _ ...any) (float64, error) {
		calls[x]++
		return 2 * x, nil
	})

	got, err := Sample([]float64{0, 1, 2, 3}, 3, eval)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -1, 1, 3}, got)

	for x, n := range calls {
		assert.Equal(t, 1, n, "domain point %v evaluated %d times", x, n)
	}
	assert.Len(t, calls, 4)
}

func TestSampleForwardsArgs(t *testing.T) {
	type station struct{ name string }
	st := &station{name: "atlanta"}

	eval := EvaluatorFunc(func(x, threshold float64, args ...any) (float64, error) {
		require.Len(t, args, 2)
		assert.Same(t, st, args[0])
		assert.Equal(t, "deg", args[1])
		assert.Equal(t, 10.0, threshold)
		return x, nil
	})

	_, err := Sample([]float64{1, 2}, 10, eval, st, "deg")
	require.NoError(t, err)
}

func TestSamplePropagatesEvaluatorError(t *testing.T) {
	boom := errors.New("ephemeris out of range")
	eval := EvaluatorFunc(func(x, threshold float64, _ ...any) (float64, error) {
		if x > 1 {
			return 0, boom
		}
		return x, nil
	})

	got, err := Sample([]float64{0, 1, 2, 3}, 0, eval)
	assert.Same(t, boom, err)
	assert.Nil(t, got)
}

func TestSampleValidation(t *testing.T) {
	eval := EvaluatorFunc(func(x, threshold float64, _ ...any) (float64, error) {
		t.Fatal("evaluator must not be called for invalid input")
		return 0, nil
	})

	_, err := Sample(nil, 0, eval)
	assert.ErrorIs(t, err, ErrEmptyDomain)

	_, err = Sample([]float64{0, 2, 1}, 0, eval)
	assert.ErrorIs(t, err, ErrUnorderedDomain)

	_, err = Sample([]float64{0, 1, 1}, 0, eval)
	assert.ErrorIs(t, err, ErrUnorderedDomain)
}
