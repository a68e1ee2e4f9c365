package toast

import "errors"

var (
	ErrInvalidKind = errors.New("toast: invalid notification kind")
	ErrEmptyTitle  = errors.New("toast: title is required")
	ErrClosed      = errors.New("toast: emitter is closed")
)
