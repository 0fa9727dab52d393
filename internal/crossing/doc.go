// Package crossing finds the intervals over which a scalar function of one
// ordered variable stays on one side of a threshold.
//
// The pipeline is: sample f(x) - threshold on a caller-supplied grid, locate
// adjacent samples whose signs differ, refine each of those brackets to a
// crossing point with Brent's method, then classify the sub-intervals between
// crossings by evaluating their midpoints. A cheaper discrete path partitions
// the raw samples into index runs without refinement.
//
// Zero is always classified as positive: a value sitting exactly on the
// threshold satisfies the condition.
//
// Sampling contract: the grid must be fine enough that the signal crosses the
// threshold at most once between two consecutive samples. Two crossings inside
// one step cancel out and are not detected; the engine does not try to guess
// when that has happened. Callers that suspect it should resample with a
// smaller step.
//
// The package holds no state and never logs. Every evaluation goes through the
// caller's Evaluator, so it is safe for concurrent use whenever the evaluator
// is.
package crossing
