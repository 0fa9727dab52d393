package crossing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairs(ps ...[2]int) []IndexPair {
	out := make([]IndexPair, 0, len(ps))
	for _, p := range ps {
		out = append(out, IndexPair{Lo: p[0], Hi: p[1]})
	}
	return out
}

func TestFindCrossingIndices(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []IndexPair
	}{
		{"v shape through zero", []float64{3, 2, 1, 0, -1, -2, -3, -2, -1, 0, 1, 2, 3}, pairs([2]int{3, 4}, [2]int{8, 9})},
		{"alternating", []float64{1, -1, 1, -1, 1}, pairs([2]int{0, 1}, [2]int{1, 2}, [2]int{2, 3}, [2]int{3, 4})},
		{"all positive", []float64{1, 1, 1, 1}, nil},
		{"rising through zero", []float64{-1, 0, 1}, pairs([2]int{0, 1})},
		{"falling through zero", []float64{1, 0, -1}, pairs([2]int{1, 2})},
		{"touching zero from below", []float64{-1, 0, -1}, pairs([2]int{0, 1}, [2]int{1, 2})},
		{"spike", []float64{-1, 1, -1}, pairs([2]int{0, 1}, [2]int{1, 2})},
		{"plateau", []float64{-1, 1, 1, 1, 1, -1}, pairs([2]int{0, 1}, [2]int{4, 5})},
		{"mixed", []float64{1, 2, -3, 4, -5}, pairs([2]int{1, 2}, [2]int{2, 3}, [2]int{3, 4})},
		{"empty", nil, nil},
		{"single", []float64{-7}, nil},
		{"all negative", []float64{-1, -2, -3}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindCrossingIndices(tt.values)
			assert.Equal(t, tt.want, got)

			for _, p := range got {
				assert.Equal(t, p.Lo+1, p.Hi)
				assert.NotEqual(t, Sign(tt.values[p.Lo]), Sign(tt.values[p.Hi]))
			}
		})
	}
}

func TestMapBrackets(t *testing.T) {
	domain := []float64{0, 10, 20, 30}

	got, err := MapBrackets(domain, pairs([2]int{0, 1}, [2]int{2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []Bracket{{0, 10}, {20, 30}}, got)

	got, err = MapBrackets(domain, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMapBracketsOutOfRange(t *testing.T) {
	domain := []float64{0, 10, 20}

	for _, p := range []IndexPair{{2, 3}, {-1, 0}, {3, 4}} {
		_, err := MapBrackets(domain, []IndexPair{p})
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "pair %v", p)
	}
}

func TestFindBrackets(t *testing.T) {
	domain := []float64{0, 1, 2, 3, 4, 5, 6}
	// Positive on (1.5, 4.5).
	eval := EvaluatorFunc(func(x, threshold float64, _ ...any) (float64, error) {
		return 4 - (x-3)*(x-3), nil
	})

	got, err := FindBrackets(domain, 1.75, eval)
	require.NoError(t, err)
	assert.Equal(t, []Bracket{{1, 2}, {4, 5}}, got)
}

func TestSampleBrackets(t *testing.T) {
	got, err := SampleBrackets([]float64{0, 10, 20, 30}, []float64{-1, 2, 3, -4})
	require.NoError(t, err)
	assert.Equal(t, []Bracket{{0, 10}, {20, 30}}, got)

	_, err = SampleBrackets([]float64{0, 10}, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
}
