package money

import "errors"

// ErrInvalidAmount is returned when a string cannot be read as a non-negative
// two-decimal amount.
var ErrInvalidAmount = errors.New("invalid monetary amount")
