package crossing

// Evaluator computes the raw value of the monitored function at domain point x.
// threshold and args are forwarded untouched from the caller; the engine
// subtracts threshold from the result itself.
//
// Implementations may be arbitrarily expensive. The engine calls Evaluate
// exactly once per coarse sample and per midpoint, plus a bounded number of
// times per refined bracket, and never caches results.
type Evaluator interface {
	Evaluate(x, threshold float64, args ...any) (float64, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(x, threshold float64, args ...any) (float64, error)

// Evaluate calls f(x, threshold, args...).
func (f EvaluatorFunc) Evaluate(x, threshold float64, args ...any) (float64, error) {
	return f(x, threshold, args...)
}

// shifted evaluates eval at x and moves the result so the boundary sits at zero.
func shifted(eval Evaluator, x, threshold float64, args []any) (float64, error) {
	v, err := eval.Evaluate(x, threshold, args...)
	if err != nil {
		return 0, err
	}
	return v - threshold, nil
}
