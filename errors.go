package twisty

import "errors"

// Sentinel errors for the twisty package.
//
// The puzzle core itself never fails; these are returned by the helpers
// that turn user or configuration input into core values.
var (
	ErrInvalidAxis  = errors.New("twisty: invalid axis")
	ErrInvalidColor = errors.New("twisty: invalid color")
)
