package crossing

// Problem bundles the inputs shared by every classification strategy.
type Problem struct {
	Domain    []float64
	Threshold float64
	Eval      Evaluator
	Args      []any
}

// Stats records how much work a classification did.
type Stats struct {
	Evaluations      int `json:"evaluations"`       // total evaluator calls
	Brackets         int `json:"brackets"`          // sign changes found on the coarse grid
	RefineIterations int `json:"refine_iterations"` // Brent iterations summed over all brackets
}

// Partition is the result of a classification. Positive and Negative are in
// domain order. For the continuous strategy they tile
// [Domain[0], Domain[last]] exactly; for the discrete strategy the Margins
// between runs complete the tiling.
type Partition struct {
	Positive []Interval
	Negative []Interval

	// Crossings holds the refined crossing points (continuous only).
	Crossings []float64

	// Runs and Margins are set by the discrete strategy only.
	PositiveRuns []Run
	NegativeRuns []Run
	Margins      []Bracket

	Stats Stats
}

// Classifier turns a Problem into a Partition.
type Classifier interface {
	Classify(p Problem) (Partition, error)
}

// Continuous samples the domain, refines every bracket with Brent's method and
// classifies the sub-intervals between crossings by their midpoints.
type Continuous struct {
	Refine RefineConfig
}

// Classify implements Classifier.
func (c Continuous) Classify(p Problem) (Partition, error) {
	eval := &countingEvaluator{next: p.Eval}

	samples, err := Sample(p.Domain, p.Threshold, eval, p.Args...)
	if err != nil {
		return Partition{}, err
	}
	brackets, err := SampleBrackets(p.Domain, samples)
	if err != nil {
		return Partition{}, err
	}

	var iters int
	crossings := make([]float64, 0, len(brackets))
	for _, b := range brackets {
		r, err := RefineRoot(b, p.Threshold, eval, c.Refine, p.Args...)
		if err != nil {
			return Partition{}, err
		}
		iters += r.Iterations
		crossings = append(crossings, r.X)
	}

	pos, neg, err := ClassifyIntervals(p.Domain, p.Threshold, eval, crossings, p.Args...)
	if err != nil {
		return Partition{}, err
	}

	return Partition{
		Positive:  pos,
		Negative:  neg,
		Crossings: crossings,
		Stats: Stats{
			Evaluations:      eval.calls,
			Brackets:         len(brackets),
			RefineIterations: iters,
		},
	}, nil
}

// Discrete classifies the coarse samples into index runs without refinement.
// Each run maps to the domain span [Domain[Start], Domain[End]]; the gap
// between two runs is reported as a margin bracket holding the crossing.
type Discrete struct{}

// Classify implements Classifier.
func (Discrete) Classify(p Problem) (Partition, error) {
	eval := &countingEvaluator{next: p.Eval}

	samples, err := Sample(p.Domain, p.Threshold, eval, p.Args...)
	if err != nil {
		return Partition{}, err
	}
	posRuns, negRuns, err := ClassifyRuns(samples)
	if err != nil {
		return Partition{}, err
	}
	margins, err := MapBrackets(p.Domain, Margins(posRuns, negRuns))
	if err != nil {
		return Partition{}, err
	}

	return Partition{
		Positive:     runsToIntervals(p.Domain, posRuns),
		Negative:     runsToIntervals(p.Domain, negRuns),
		PositiveRuns: posRuns,
		NegativeRuns: negRuns,
		Margins:      margins,
		Stats: Stats{
			Evaluations: eval.calls,
			Brackets:    len(margins),
		},
	}, nil
}

func runsToIntervals(domain []float64, runs []Run) []Interval {
	ivs := make([]Interval, len(runs))
	for i, r := range runs {
		ivs[i] = Interval{Start: domain[r.Start], End: domain[r.End]}
	}
	return ivs
}

// countingEvaluator counts calls for a single classification.
// It is never shared between calls.
type countingEvaluator struct {
	next  Evaluator
	calls int
}

func (c *countingEvaluator) Evaluate(x, threshold float64, args ...any) (float64, error) {
	c.calls++
	return c.next.Evaluate(x, threshold, args...)
}
