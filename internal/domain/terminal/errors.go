package terminal

import "errors"

// Pairing failures are sentinel errors so the interface layer can map each
// one to a distinct user-facing message. Checks happen in a fixed order
// (exists, unused, unexpired, terminal active) and short-circuit on the first
// failure.
var (
	ErrCodeInvalid      = errors.New("pairing code is required")
	ErrCodeNotFound     = errors.New("pairing code not found")
	ErrCodeAlreadyUsed  = errors.New("pairing code already used")
	ErrCodeExpired      = errors.New("pairing code expired")
	ErrTerminalInactive = errors.New("terminal is inactive")

	ErrTerminalNotFound = errors.New("terminal not found")
)
