// Package analysis characterises the long run behaviour of a board.
//
//   - [DetectCycle]: exact period by stepping until a board repeats
//   - [DominantPeriod]: spectral estimate from a population series
//   - [Summarize]: basic statistics of a population series
//
// Exact detection is authoritative but needs the board; the spectral
// estimate works from a saved population history alone:
//
//	p, ok := analysis.DominantPeriod(history.Series())
//	if ok {
//	    // population oscillates with period ~p generations
//	}
package analysis
