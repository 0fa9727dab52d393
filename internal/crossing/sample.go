package crossing

import "fmt"

// Sample evaluates eval at every domain point and returns the signed samples
// eval(d, threshold, args...) - threshold, in domain order.
//
// The first evaluator error is returned unchanged and no samples are returned.
func Sample(domain []float64, threshold float64, eval Evaluator, args ...any) ([]float64, error) {
	if err := validateDomain(domain); err != nil {
		return nil, err
	}

	samples := make([]float64, len(domain))
	for i, d := range domain {
		v, err := shifted(eval, d, threshold, args)
		if err != nil {
			return nil, err
		}
		samples[i] = v
	}
	return samples, nil
}

// validateDomain checks the domain is non-empty and strictly increasing.
func validateDomain(domain []float64) error {
	if len(domain) == 0 {
		return ErrEmptyDomain
	}
	for i := 1; i < len(domain); i++ {
		if !(domain[i] > domain[i-1]) {
			return fmt.Errorf("%w: domain[%d]=%g, domain[%d]=%g",
				ErrUnorderedDomain, i-1, domain[i-1], i, domain[i])
		}
	}
	return nil
}
