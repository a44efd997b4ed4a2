// Package compute provides generation stepping backends for headless runs.
//
// The serial backend scans the whole board on one goroutine. The CPU
// backend splits large boards into row bands stepped in parallel and
// concatenates the bands, so both produce the same row-major DiffSet:
//
//	backend := compute.GetBackend()
//	ds := backend.Step(g, life.Conway)
//
// Boards with fewer than [ParallelRows] rows are always stepped serially.
package compute
