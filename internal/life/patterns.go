package life

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
)

// Pattern is a named arrangement of live cells in Life plaintext rows.
type Pattern struct {
	Name        string
	Description string
	Rows        []string
}

// Height is the number of pattern rows.
func (p Pattern) Height() int { return len(p.Rows) }

// Width is the length of the longest row.
func (p Pattern) Width() int {
	w := 0
	for _, r := range p.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// Cells lists the live offsets relative to the pattern's top-left corner.
func (p Pattern) Cells() []grid.Position {
	cells := make([]grid.Position, 0)
	for r, row := range p.Rows {
		for c, ch := range row {
			if ch == 'O' || ch == '*' {
				cells = append(cells, grid.Position{Row: r, Col: c})
			}
		}
	}
	return cells
}

var patterns = map[string]Pattern{
	"glider": {
		Name: "glider", Description: "period 4 spaceship",
		Rows: []string{".O.", "..O", "OOO"},
	},
	"blinker": {
		Name: "blinker", Description: "period 2 oscillator",
		Rows: []string{"OOO"},
	},
	"toad": {
		Name: "toad", Description: "period 2 oscillator",
		Rows: []string{".OOO", "OOO."},
	},
	"beacon": {
		Name: "beacon", Description: "period 2 oscillator",
		Rows: []string{"OO..", "OO..", "..OO", "..OO"},
	},
	"r-pentomino": {
		Name: "r-pentomino", Description: "methuselah, stabilises after 1103 generations",
		Rows: []string{".OO", "OO.", ".O."},
	},
	"lwss": {
		Name: "lwss", Description: "lightweight spaceship",
		Rows: []string{".O..O", "O....", "O...O", "OOOO."},
	},
	"acorn": {
		Name: "acorn", Description: "methuselah",
		Rows: []string{".O.....", "...O...", "OO..OOO"},
	},
	"gosper-gun": {
		Name: "gosper-gun", Description: "glider gun, period 30",
		Rows: []string{
			"........................O...........",
			"......................O.O...........",
			"............OO......OO............OO",
			"...........O...O....OO............OO",
			"OO........O.....O...OO..............",
			"OO........O...O.OO....O.O...........",
			"..........O.....O.......O...........",
			"...........O...O....................",
			"............OO......................",
		},
	},
}

// GetPattern looks up a built-in pattern by name.
func GetPattern(name string) (Pattern, error) {
	p, ok := patterns[strings.ToLower(name)]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownPattern, name, ListPatterns())
	}
	return p, nil
}

// ListPatterns returns the built-in pattern names, sorted.
func ListPatterns() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Place sets the pattern's live cells with its top-left corner at origin.
func Place(g *grid.Grid, p Pattern, origin grid.Position) error {
	if p.Height() > g.Rows() || p.Width() > g.Cols() {
		return fmt.Errorf("%w: %s is %dx%d, board is %dx%d", ErrPatternTooLarge, p.Name, p.Height(), p.Width(), g.Rows(), g.Cols())
	}
	for _, c := range p.Cells() {
		pos := grid.Position{Row: origin.Row + c.Row, Col: origin.Col + c.Col}
		if !g.InBounds(pos) {
			if g.Topology() != grid.Toroidal {
				return fmt.Errorf("%w: %s at %v", ErrPatternTooLarge, p.Name, origin)
			}
			pos = g.Wrap(pos)
		}
		g.Set(pos, grid.Alive)
	}
	return nil
}

// PlaceCentered places p in the middle of the board.
func PlaceCentered(g *grid.Grid, p Pattern) error {
	origin := grid.Position{
		Row: (g.Rows() - p.Height()) / 2,
		Col: (g.Cols() - p.Width()) / 2,
	}
	return Place(g, p, origin)
}

// Prepopulate fills g randomly so that roughly density of the cells are
// alive. The same seed always produces the same board.
func Prepopulate(g *grid.Grid, seed int64, density float64) {
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	g.Each(func(p grid.Position, _ grid.Cell) {
		if rng.Float64() < density {
			g.Set(p, grid.Alive)
		} else {
			g.Set(p, grid.Empty)
		}
	})
}

// ReadPlaintext parses a Life plaintext (.cells) document. Lines starting
// with '!' are comments; the first "!Name:" comment names the pattern.
func ReadPlaintext(r io.Reader) (Pattern, error) {
	var p Pattern
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r \t")
		if strings.HasPrefix(line, "!") {
			if name, ok := strings.CutPrefix(line, "!Name:"); ok && p.Name == "" {
				p.Name = strings.TrimSpace(name)
			}
			continue
		}
		for _, ch := range line {
			if ch != '.' && ch != 'O' && ch != '*' {
				return Pattern{}, fmt.Errorf("%w: unexpected %q in line %d", ErrInvalidPlaintext, ch, len(p.Rows)+1)
			}
		}
		p.Rows = append(p.Rows, line)
	}
	if err := sc.Err(); err != nil {
		return Pattern{}, err
	}
	for len(p.Rows) > 0 && p.Rows[len(p.Rows)-1] == "" {
		p.Rows = p.Rows[:len(p.Rows)-1]
	}
	if len(p.Rows) == 0 {
		return Pattern{}, fmt.Errorf("%w: no cells", ErrInvalidPlaintext)
	}
	return p, nil
}

// WritePlaintext writes the whole board as a .cells document.
func WritePlaintext(w io.Writer, name string, g *grid.Grid) error {
	if name != "" {
		if _, err := fmt.Fprintf(w, "!Name: %s\n", name); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, g.String())
	return err
}
