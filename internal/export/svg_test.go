package export

import (
	"strings"
	"testing"

	"github.com/SzymonKubica/game-console-sub000/internal/grid"
)

func TestBoardToSVG(t *testing.T) {
	g, err := grid.New(4, 6, grid.Bounded)
	if err != nil {
		t.Fatal(err)
	}
	g.Set(grid.Position{Row: 1, Col: 2}, grid.Alive)
	g.Set(grid.Position{Row: 3, Col: 5}, grid.Alive)

	svg := BoardToSVG(g, 10)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	if !strings.Contains(svg, `width="60" height="40"`) {
		t.Errorf("wrong canvas size:\n%s", svg)
	}
	if n := strings.Count(svg, `<rect x=`); n != 2 {
		t.Errorf("cells drawn = %d, want 2", n)
	}
	if !strings.Contains(svg, `x="20.0" y="10.0"`) {
		t.Errorf("cell (1,2) missing:\n%s", svg)
	}
}

func TestBoardToSVGNil(t *testing.T) {
	if BoardToSVG(nil, 4) != "" {
		t.Error("nil board should render empty")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("single sample should render empty")
	}

	svg := SeriesToSVG([]float64{3, 3, 3, 3}, 90, 30, "#00ff00")
	if !strings.Contains(svg, `stroke="#00ff00"`) {
		t.Errorf("stroke missing:\n%s", svg)
	}
	if n := strings.Count(svg, " L"); n != 3 {
		t.Errorf("segments = %d, want 3", n)
	}
	if !strings.Contains(svg, "M0.0,15.0") {
		t.Errorf("flat series should sit mid-height:\n%s", svg)
	}
}
