package fsrs

import "errors"

// Sentinel errors for the fsrs package. Check with errors.Is.
var (
	ErrInvalidRating    = errors.New("fsrs: invalid rating")
	ErrInvalidWeights   = errors.New("fsrs: invalid weight vector")
	ErrInvalidRetention = errors.New("fsrs: requested retention out of range")
)
