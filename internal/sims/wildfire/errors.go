package wildfire

import "errors"

var (
	// ErrNoData reports an empty or fully invalid point set at start.
	ErrNoData = errors.New("wildfire: no criticality points loaded")
	// ErrIndexUnavailable reports a missing or failed spatial index.
	ErrIndexUnavailable = errors.New("wildfire: spatial index unavailable")
	// ErrInvalidInput reports input records that cannot form a field.
	ErrInvalidInput = errors.New("wildfire: invalid input")
)
