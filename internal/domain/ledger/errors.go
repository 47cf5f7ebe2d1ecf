package ledger

import "errors"

var (
	ErrNoItems          = errors.New("operation needs at least one item")
	ErrClientRequired   = errors.New("operation type requires a client")
	ErrClientNotAllowed = errors.New("operation type does not take a client")
)
