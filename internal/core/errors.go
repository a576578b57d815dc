package core

import "gitlab.com/distributed_lab/logan/v3/errors"

// State-conflict and authorization errors. They signal a logical race or a
// duplicate attempt and are never retried automatically.
var (
	ErrUnauthorized            = errors.New("caller is not authorized")
	ErrOrderAlreadyExecuted    = errors.New("order is already executed")
	ErrOrderAlreadyCancelled   = errors.New("order is already cancelled")
	ErrOrderExpired            = errors.New("order is expired")
	ErrMessageAlreadyProcessed = errors.New("message is already processed")
)
