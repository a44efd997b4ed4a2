// Package grid holds the cell state of a Game of Life board and the diff
// types used to mutate it.
//
//   - [Grid]: fixed-size rows × cols board with an immutable [Topology]
//   - [Diff] / [DiffSet]: single-cell transitions, canonically row-major
//   - [Apply] / [Unapply]: exact inverse pair used by stepping, toggling and rewind
//
// # Invariants
//
// A [Diff] is only ever produced for a real transition, so the value it
// replaces is always the flip of its new state. That is what makes [Unapply]
// lossless. Positions outside the board are programming errors and panic.
package grid
