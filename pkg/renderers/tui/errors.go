package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrSessionRequired is returned when Run receives no session.
	ErrSessionRequired = errors.New("tui: session is required")
)
