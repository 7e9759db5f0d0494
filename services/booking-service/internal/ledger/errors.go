package ledger

import "errors"

var (
	ErrSlotUnavailable   = errors.New("slot unavailable")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)
