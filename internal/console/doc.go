// Package console runs a Game of Life session: it owns the board and its
// rewind history, routes input to edits or time travel, and hands every
// changed cell to a [Display].
//
//   - [Controller]: PAUSED / RUNNING / REWIND state machine
//   - [Display], [Input]: collaborators implemented by the front ends
//   - [EnterLoop]: cooperative single-threaded session loop
//
// # Key Mapping
//
// Front ends translate their keys into four [Action] values and four
// [Direction] values:
//
//	StartPause - run or pause; leaves rewind into RUNNING
//	Toggle     - flip the cell under the caret
//	Rewind     - enter rewind; leaves rewind into PAUSED
//	Exit       - end the session
//
// In rewind, Left steps back and Right steps forward; Up and Down are
// ignored.
package console
