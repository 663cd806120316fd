package emfield

import "math"

// Contribution is one source's power density contribution to a cell,
// as tracked by a CellAccumulator's bounded Top-3 slots.
type Contribution struct {
	SourceIndex int
	PowerDensityWPerM2 float64
}

// CellAccumulator holds the running total power density and the 3
// largest per-source contributions for a single cell. It is the
// bounded insertion structure called for in §4.7/§7: O(k) per update
// rather than collecting all sources and sorting.
type CellAccumulator struct {
	Total float64
	top   [TopKSize]Contribution
	n     int // number of valid slots filled, 0..TopKSize
}

// Add folds one source's power density into the accumulator. Zero and
// non-finite contributions are excluded from both the running total
// and the Top-K tracking (§4.7 step 3b, §8 edge cases).
func (c *CellAccumulator) Add(sourceIndex int, powerDensityWPerM2 float64) {
	if powerDensityWPerM2 <= 0 || math.IsNaN(powerDensityWPerM2) || math.IsInf(powerDensityWPerM2, 0) {
		return
	}
	c.Total += powerDensityWPerM2
	c.insert(Contribution{SourceIndex: sourceIndex, PowerDensityWPerM2: powerDensityWPerM2})
}

// insert places contrib into the bounded Top-3 slots if it outranks
// the current occupants. Ties (equal power density) break in favor of
// the smaller source index, matching the mandatory, non-approximate
// tie-break rule in §5.
func (c *CellAccumulator) insert(contrib Contribution) {
	pos := c.n
	if pos > TopKSize-1 {
		pos = TopKSize - 1
	}
	if c.n < TopKSize {
		c.top[c.n] = contrib
		c.n++
	} else if !outranks(contrib, c.top[TopKSize-1]) {
		return
	} else {
		c.top[TopKSize-1] = contrib
	}
	for pos > 0 && outranks(c.top[pos], c.top[pos-1]) {
		c.top[pos], c.top[pos-1] = c.top[pos-1], c.top[pos]
		pos--
	}
}

// outranks reports whether a should sort ahead of b: larger power
// density wins, and on an exact tie the smaller source index wins.
func outranks(a, b Contribution) bool {
	if a.PowerDensityWPerM2 != b.PowerDensityWPerM2 {
		return a.PowerDensityWPerM2 > b.PowerDensityWPerM2
	}
	return a.SourceIndex < b.SourceIndex
}

// Top returns the accumulator's contributions in descending order,
// up to TopKSize entries.
func (c *CellAccumulator) Top() []Contribution {
	return append([]Contribution(nil), c.top[:c.n]...)
}

// Reset clears the accumulator for reuse across cells, sparing a
// fresh allocation per cell when tiling rows (§4.7 resource policy).
func (c *CellAccumulator) Reset() {
	c.Total = 0
	c.n = 0
	for i := range c.top {
		c.top[i] = Contribution{}
	}
}
