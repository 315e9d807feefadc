package balance

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every error caused by malformed upstream
// data rather than by a failed computation.
var ErrConfiguration = errors.New("balance configuration error")

var (
	ErrUnknownTransactionType   = fmt.Errorf("%w: unknown transaction type", ErrConfiguration)
	ErrUnknownRecurrencePattern = fmt.Errorf("%w: unknown recurrence pattern", ErrConfiguration)
	ErrInvalidInterval          = fmt.Errorf("%w: recurrence interval must be positive", ErrConfiguration)
	ErrInvalidEndDate           = fmt.Errorf("%w: recurrence end date precedes anchor", ErrConfiguration)
)
