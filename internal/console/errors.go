package console

import "errors"

var (
	// ErrUnknownGame is returned for menu values that name no game.
	ErrUnknownGame = errors.New("console: unknown game")

	// ErrInvalidStepPeriod indicates a non-positive generation period.
	ErrInvalidStepPeriod = errors.New("console: step period must be positive")

	// ErrDisplayTooSmall is returned when the display cannot fit the
	// minimum board.
	ErrDisplayTooSmall = errors.New("console: display too small for board")
)
