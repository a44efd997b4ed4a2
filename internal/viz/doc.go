// Package viz draws boards and series into a Braille canvas, packing 2x4
// cells into every terminal character. It is used for compact thumbnails of
// saved runs where the full one-cell-per-two-columns view does not fit.
package viz
