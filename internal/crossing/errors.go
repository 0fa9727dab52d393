package crossing

import "errors"

var (
	// ErrEmptyDomain is returned when no domain points are supplied.
	ErrEmptyDomain = errors.New("crossing: empty domain")

	// ErrEmptySamples is returned by ClassifyRuns for an empty sample slice.
	ErrEmptySamples = errors.New("crossing: empty sample sequence")

	// ErrUnorderedDomain is returned when domain points are not strictly increasing.
	ErrUnorderedDomain = errors.New("crossing: domain is not strictly increasing")

	// ErrLengthMismatch is returned when domain and sample slices differ in length.
	ErrLengthMismatch = errors.New("crossing: domain and sample lengths differ")

	// ErrIndexOutOfRange is returned when an index pair points outside the domain.
	ErrIndexOutOfRange = errors.New("crossing: index out of range")

	// ErrDegenerateBracket is returned when a bracket's endpoints do not have
	// strictly opposite signs.
	ErrDegenerateBracket = errors.New("crossing: no sign change in bracket")

	// ErrNoConvergence is returned when root refinement exhausts its iteration budget.
	ErrNoConvergence = errors.New("crossing: root refinement did not converge")
)
