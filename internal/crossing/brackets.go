package crossing

import "fmt"

// IndexPair holds two adjacent sample indices whose signs differ.
type IndexPair struct {
	Lo, Hi int
}

// Bracket is a domain range assumed to contain exactly one crossing.
type Bracket struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// FindCrossingIndices scans the signed samples once and returns (i, i+1) for
// every i where Sign(samples[i]) != Sign(samples[i+1]). Pairs come back in
// increasing order; a sequence that flips at every step yields one pair per
// step.
func FindCrossingIndices(samples []float64) []IndexPair {
	var pairs []IndexPair
	for i := 0; i+1 < len(samples); i++ {
		if Sign(samples[i]) != Sign(samples[i+1]) {
			pairs = append(pairs, IndexPair{Lo: i, Hi: i + 1})
		}
	}
	return pairs
}

// MapBrackets converts index pairs into domain brackets by positional lookup.
// No pairs yields nil.
func MapBrackets(domain []float64, pairs []IndexPair) ([]Bracket, error) {
	var brackets []Bracket
	for _, p := range pairs {
		if p.Lo < 0 || p.Hi < 0 || p.Lo >= len(domain) || p.Hi >= len(domain) {
			return nil, fmt.Errorf("%w: pair (%d, %d) with domain length %d",
				ErrIndexOutOfRange, p.Lo, p.Hi, len(domain))
		}
		brackets = append(brackets, Bracket{Lo: domain[p.Lo], Hi: domain[p.Hi]})
	}
	return brackets, nil
}

// FindBrackets samples the domain and returns the brackets around every sign
// change. It is Sample, FindCrossingIndices and MapBrackets in one call.
func FindBrackets(domain []float64, threshold float64, eval Evaluator, args ...any) ([]Bracket, error) {
	samples, err := Sample(domain, threshold, eval, args...)
	if err != nil {
		return nil, err
	}
	return SampleBrackets(domain, samples)
}

// SampleBrackets returns the brackets around every sign change in samples,
// which must be aligned with domain.
func SampleBrackets(domain, samples []float64) ([]Bracket, error) {
	if len(domain) != len(samples) {
		return nil, fmt.Errorf("%w: %d domain points, %d samples",
			ErrLengthMismatch, len(domain), len(samples))
	}
	return MapBrackets(domain, FindCrossingIndices(samples))
}
