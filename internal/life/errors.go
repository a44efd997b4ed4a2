package life

import "errors"

var (
	// ErrInvalidRule indicates a malformed B/S rulestring.
	ErrInvalidRule = errors.New("life: invalid rule")

	// ErrUnknownPattern is returned for pattern names not in the library.
	ErrUnknownPattern = errors.New("life: unknown pattern")

	// ErrPatternTooLarge indicates a pattern that does not fit on the board.
	ErrPatternTooLarge = errors.New("life: pattern does not fit board")

	// ErrInvalidPlaintext indicates a malformed .cells document.
	ErrInvalidPlaintext = errors.New("life: invalid plaintext pattern")
)
