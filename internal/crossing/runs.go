package crossing

// Run is an inclusive range of sample indices sharing one sign.
type Run struct {
	Start, End int
}

// ClassifyRuns partitions the signed samples into maximal runs of equal sign
// without any refinement. A run is closed when the sign changes and is
// bucketed by the sign that is ending. Runs alternate between the two buckets
// and together cover [0, len(samples)-1].
func ClassifyRuns(samples []float64) (pos, neg []Run, err error) {
	if len(samples) == 0 {
		return nil, nil, ErrEmptySamples
	}

	start := 0
	prev := Sign(samples[0])
	for i := 1; i < len(samples); i++ {
		s := Sign(samples[i])
		if s == prev {
			continue
		}
		r := Run{Start: start, End: i - 1}
		if prev > 0 {
			pos = append(pos, r)
		} else {
			neg = append(neg, r)
		}
		start = i
		prev = s
	}

	last := Run{Start: start, End: len(samples) - 1}
	if prev > 0 {
		pos = append(pos, last)
	} else {
		neg = append(neg, last)
	}
	return pos, neg, nil
}
