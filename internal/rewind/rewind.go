// Package rewind keeps a bounded history of board changes so a session can
// be paused, played backwards and forwards, and resumed into a new future.
package rewind

import (
	"errors"
	"fmt"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
)

// ErrZeroCapacity is returned when a buffer is requested with no room for
// even a single entry.
var ErrZeroCapacity = errors.New("rewind: capacity must be positive")

// Entry is one recorded change of the board: a simulated generation or a
// manual edit.
type Entry struct {
	// Seq increases by one for every Record call and is never reused, even
	// after the future has been discarded by resuming from a rewound point.
	Seq uint64

	// Generation is the simulated generation the board is at once Diffs
	// have been applied. Edits do not advance it.
	Generation int

	// Edit marks a manual single-cell toggle.
	Edit bool

	Diffs grid.DiffSet
}

// Before returns the generation displayed once the entry is unapplied.
func (e Entry) Before() int {
	if e.Edit {
		return e.Generation
	}
	return e.Generation - 1
}

// Buffer is a fixed-capacity circular array of entries.
//
// The write cursor is the slot of the most recent entry and the playback
// cursor the slot whose entry was the last one applied to the board. Outside
// of rewind both are equal. Retained entries sit in the window
// [write-depth+1, write] (mod capacity); once full, recording evicts the
// oldest slot.
type Buffer struct {
	entries []Entry

	write    int
	playback int
	latest   int

	// depth is the number of valid entries ending at the write cursor
	depth int

	// behind counts how many entries have been unapplied since rewind was
	// entered. The playback slot alone cannot tell "at the present" from
	// "rewound across the whole window" when depth equals the capacity.
	behind int

	rewinding bool
	seq       uint64
}

// New creates an empty buffer. Capacity is fixed for the buffer's lifetime.
func New(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrZeroCapacity, capacity)
	}
	return &Buffer{
		entries:  make([]Entry, capacity),
		write:    -1,
		playback: -1,
		latest:   -1,
	}, nil
}

// Cap is the fixed number of slots.
func (b *Buffer) Cap() int { return len(b.entries) }

// Len is the number of retained entries.
func (b *Buffer) Len() int { return b.depth }

// Empty reports whether nothing can be rewound.
func (b *Buffer) Empty() bool { return b.depth == 0 }

// Cursor returns the playback slot, -1 when nothing has been recorded.
func (b *Buffer) Cursor() int { return b.playback }

// Latest returns the forward limit set when rewind was entered.
func (b *Buffer) Latest() int { return b.latest }

// Behind is how many entries are currently unapplied.
func (b *Buffer) Behind() int { return b.behind }

// Rewinding reports whether the buffer is in rewind mode.
func (b *Buffer) Rewinding() bool { return b.rewinding }

func (b *Buffer) next(slot int) int {
	slot++
	if slot >= len(b.entries) {
		slot = 0
	}
	return slot
}

func (b *Buffer) prev(slot int) int {
	slot--
	if slot < 0 {
		slot = len(b.entries) - 1
	}
	return slot
}

// Record stores an entry in the slot after the playback cursor, evicting
// whatever was there, and makes it the present. Recording while rewinding
// first leaves rewind mode, discarding the old future.
func (b *Buffer) Record(e Entry) Entry {
	if b.rewinding {
		b.ExitRewind()
	}

	b.seq++
	e.Seq = b.seq

	slot := b.next(b.playback)
	b.entries[slot] = e
	b.write = slot
	b.playback = slot

	if b.depth < len(b.entries) {
		b.depth++
	}
	return e
}

// Current returns the entry last applied to the board.
func (b *Buffer) Current() (Entry, bool) {
	if b.playback < 0 || b.behind >= b.depth {
		return Entry{}, false
	}
	return b.entries[b.playback], true
}

// EnterRewind pins the forward limit at the present. It fails when nothing
// has been recorded.
func (b *Buffer) EnterRewind() bool {
	if b.depth == 0 {
		return false
	}
	if !b.rewinding {
		b.latest = b.playback
		b.behind = 0
		b.rewinding = true
	}
	return true
}

// StepBack unapplies the entry at the cursor and moves the cursor one slot
// back. It is a no-op once every retained entry has been unapplied.
func (b *Buffer) StepBack(g *grid.Grid) (Entry, bool) {
	if !b.rewinding || b.behind >= b.depth {
		return Entry{}, false
	}
	e := b.entries[b.playback]
	grid.Unapply(g, e.Diffs)
	b.playback = b.prev(b.playback)
	b.behind++
	return e, true
}

// StepForward moves the cursor one slot forward and applies the entry there.
// It is a no-op at the forward limit.
func (b *Buffer) StepForward(g *grid.Grid) (Entry, bool) {
	if !b.rewinding || b.behind == 0 {
		return Entry{}, false
	}
	b.playback = b.next(b.playback)
	e := b.entries[b.playback]
	grid.Apply(g, e.Diffs)
	b.behind--
	return e, true
}

// ExitRewind leaves the board as displayed. Entries after the cursor stop
// being history: the next Record overwrites them.
func (b *Buffer) ExitRewind() {
	if !b.rewinding {
		return
	}
	b.depth -= b.behind
	b.write = b.playback
	b.latest = b.playback
	b.behind = 0
	b.rewinding = false
}

// Entries returns the retained entries, oldest first, up to the cursor.
func (b *Buffer) Entries() []Entry {
	n := b.depth - b.behind
	out := make([]Entry, n)
	slot := b.playback
	for i := n - 1; i >= 0; i-- {
		out[i] = b.entries[slot]
		slot = b.prev(slot)
	}
	return out
}
