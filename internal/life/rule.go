package life

import (
	"fmt"
	"strings"
)

// Rule is an outer-totalistic birth/survival rule over the Moore neighborhood.
type Rule struct {
	Birth   [9]bool
	Survive [9]bool
}

// Conway is B3/S23.
var Conway = MustParseRule("B3/S23")

// Next returns whether a cell is alive in the next generation.
func (r Rule) Next(alive bool, neighbors int) bool {
	if alive {
		return r.Survive[neighbors]
	}
	return r.Birth[neighbors]
}

func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	for n, ok := range r.Birth {
		if ok {
			b.WriteByte(byte('0' + n))
		}
	}
	b.WriteString("/S")
	for n, ok := range r.Survive {
		if ok {
			b.WriteByte(byte('0' + n))
		}
	}
	return b.String()
}

// ParseRule reads rulestrings in B/S notation, e.g. "B36/S23".
func ParseRule(s string) (Rule, error) {
	var r Rule
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return r, fmt.Errorf("%w: %q", ErrInvalidRule, s)
	}
	for _, part := range parts {
		if part == "" {
			return r, fmt.Errorf("%w: %q", ErrInvalidRule, s)
		}
		var set *[9]bool
		switch part[0] {
		case 'B':
			set = &r.Birth
		case 'S':
			set = &r.Survive
		default:
			return r, fmt.Errorf("%w: %q", ErrInvalidRule, s)
		}
		for _, ch := range part[1:] {
			if ch < '0' || ch > '8' {
				return r, fmt.Errorf("%w: %q", ErrInvalidRule, s)
			}
			set[ch-'0'] = true
		}
	}
	return r, nil
}

// MustParseRule is ParseRule for package-level constants.
func MustParseRule(s string) Rule {
	r, err := ParseRule(s)
	if err != nil {
		panic(err)
	}
	return r
}
