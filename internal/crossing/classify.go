package crossing

// Interval is an inclusive span of the domain.
type Interval struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Midpoint returns Start + (End-Start)/2.
func (iv Interval) Midpoint() float64 {
	return iv.Start + (iv.End-iv.Start)/2
}

// ClassifyIntervals splits [domain[0], domain[last]] at the given crossing
// points and buckets each piece by the sign of the shifted evaluator at its
// midpoint. crossings must be sorted and lie inside the domain.
//
// The domain endpoints are added to the boundary list unless the first or last
// crossing already coincides with them. With no crossings the whole domain is a
// single interval. Both returned slices keep chronological order.
func ClassifyIntervals(domain []float64, threshold float64, eval Evaluator, crossings []float64, args ...any) (pos, neg []Interval, err error) {
	if err := validateDomain(domain); err != nil {
		return nil, nil, err
	}

	for _, iv := range boundaryIntervals(domain, crossings) {
		v, err := shifted(eval, iv.Midpoint(), threshold, args)
		if err != nil {
			return nil, nil, err
		}
		if Sign(v) > 0 {
			pos = append(pos, iv)
		} else {
			neg = append(neg, iv)
		}
	}
	return pos, neg, nil
}

// boundaryIntervals returns the consecutive sub-intervals between the domain
// endpoints and the crossings.
func boundaryIntervals(domain, crossings []float64) []Interval {
	first, last := domain[0], domain[len(domain)-1]

	var bounds []float64
	if len(crossings) == 0 {
		bounds = []float64{first, last}
	} else {
		bounds = make([]float64, 0, len(crossings)+2)
		if crossings[0] != first {
			bounds = append(bounds, first)
		}
		bounds = append(bounds, crossings...)
		if crossings[len(crossings)-1] != last {
			bounds = append(bounds, last)
		}
	}

	ivs := make([]Interval, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		ivs = append(ivs, Interval{Start: bounds[i], End: bounds[i+1]})
	}
	return ivs
}
