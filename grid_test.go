package emfield

import "testing"

func TestNewGridDimensions(t *testing.T) {
	region := squareRegion()
	g := NewGrid(region, 0.5, 10)
	if g.H != 3 || g.W != 3 {
		t.Errorf("got H=%d W=%d, want H=3 W=3 for a 1deg square at 0.5deg cells", g.H, g.W)
	}
}

func TestNewGridRowsRunNorthToSouth(t *testing.T) {
	region := squareRegion()
	g := NewGrid(region, 0.5, 10)
	top := g.At(0, 0)
	bottom := g.At(g.H-1, 0)
	if top.Lat <= bottom.Lat {
		t.Errorf("row 0 should be the northernmost row: top.Lat=%v bottom.Lat=%v", top.Lat, bottom.Lat)
	}
}

func TestNewGridInsideMaskCenter(t *testing.T) {
	region := squareRegion()
	g := NewGrid(region, 0.1, 10)
	midRow, midCol := g.H/2, g.W/2
	if !g.IsInside(midRow, midCol) {
		t.Error("center cell of a square region should be inside the mask")
	}
}

func TestGridStepsMinimumOne(t *testing.T) {
	if gridSteps(1, 1, 0.1) != 1 {
		t.Error("a degenerate span should still yield at least one sample")
	}
}

func TestCellCount(t *testing.T) {
	g := &Grid{H: 4, W: 5}
	if g.CellCount() != 20 {
		t.Errorf("got %d, want 20", g.CellCount())
	}
}
