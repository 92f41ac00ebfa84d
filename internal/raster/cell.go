// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"cmp"
	"image"
	"math/bits"
	"slices"

	"github.com/gogpu/rast/internal/fixed"
	"github.com/gogpu/rast/internal/path"
)

// Cell is the coverage accumulated for one pixel.
//
// Area is the doubled area of the trapezoids left of the crossing edges,
// in 1/64 x 1/64 pixel units, so a full pixel is 2*64*64. Cover is the
// signed vertical extent of the crossings in 1/64 pixel units.
type Cell struct {
	X, Y  int
	Area  int
	Cover int
}

type cellKey struct {
	x, y int
}

// segment is an edge in 26.6 oriented top to bottom. Sign is the winding
// of the original edge.
type segment struct {
	x0, y0, x1, y1 fixed.FDot6
	sign           int
}

// Accumulator is the scan converter. Edges are walked row by row in 26.6
// and their area and cover are summed into one Cell per pixel. All
// contributions are integer additions, so the result does not depend on
// the order edges are added in, and an edge added once in each direction
// cancels exactly.
//
// An Accumulator is not safe for concurrent use.
type Accumulator struct {
	cells []Cell
	index map[cellKey]int
	segs  []segment

	clip    image.Rectangle
	clipped bool

	// Cell being accumulated by the current edge.
	cx, cy      int
	area, cover int
	sign        int
}

// NewAccumulator returns an empty, unclipped accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{index: make(map[cellKey]int)}
}

// SetClip restricts output to r. Rows outside r are dropped, cells left
// of r fold into column r.Min.X-1 so their cover still reaches r, and
// cells right of r are dropped. An empty r removes the restriction.
func (a *Accumulator) SetClip(r image.Rectangle) {
	a.clip = r
	a.clipped = !r.Empty()
}

// Clip returns the clip rectangle and whether one is set.
func (a *Accumulator) Clip() (image.Rectangle, bool) {
	return a.clip, a.clipped
}

// Reset discards all cells and edges, keeping the clip and storage.
func (a *Accumulator) Reset() {
	a.cells = a.cells[:0]
	a.segs = a.segs[:0]
	clear(a.index)
	a.area, a.cover = 0, 0
}

// Len returns the number of cells.
func (a *Accumulator) Len() int { return len(a.cells) }

// Cells returns a copy of the cells sorted by Y then X.
func (a *Accumulator) Cells() []Cell {
	out := slices.Clone(a.cells)
	slices.SortFunc(out, func(p, q Cell) int {
		if c := cmp.Compare(p.Y, q.Y); c != 0 {
			return c
		}
		return cmp.Compare(p.X, q.X)
	})
	return out
}

// Cell returns the cell at (x, y).
func (a *Accumulator) Cell(x, y int) (Cell, bool) {
	i, ok := a.index[cellKey{x, y}]
	if !ok {
		return Cell{}, false
	}
	return a.cells[i], true
}

// Rasterize feeds edges into a new accumulator.
func Rasterize(edges []path.Edge) *Accumulator {
	a := NewAccumulator()
	a.AddEdges(edges)
	return a
}

// AddEdges adds every edge in edges.
func (a *Accumulator) AddEdges(edges []path.Edge) {
	for _, e := range edges {
		a.AddEdge(e)
	}
}

// AddEdge converts e to 26.6 and accumulates it. Edges that are
// horizontal after rounding or have non-finite endpoints contribute
// nothing.
func (a *Accumulator) AddEdge(e path.Edge) {
	s, ok := a.addSegment(e)
	if !ok {
		return
	}
	if a.clipped && (s.y1 <= fdot6(a.clip.Min.Y) || s.y0 >= fdot6(a.clip.Max.Y) ||
		min(s.x0, s.x1) >= fdot6(a.clip.Max.X)) {
		return
	}
	a.line(s)
}

// addSegment records e in 26.6, oriented top to bottom, without
// accumulating cells. The samplers work from these segments.
func (a *Accumulator) addSegment(e path.Edge) (segment, bool) {
	if !e.P0.IsFinite() || !e.P1.IsFinite() {
		return segment{}, false
	}
	p0, p1 := e.P0.Fixed(), e.P1.Fixed()
	s := segment{
		x0: fixed.FDot6FromInt26_6(p0.X), y0: fixed.FDot6FromInt26_6(p0.Y),
		x1: fixed.FDot6FromInt26_6(p1.X), y1: fixed.FDot6FromInt26_6(p1.Y),
		sign: 1,
	}
	if s.y0 == s.y1 {
		return segment{}, false
	}
	if s.y0 > s.y1 {
		s.x0, s.y0, s.x1, s.y1 = s.x1, s.y1, s.x0, s.y0
		s.sign = -1
	}
	a.segs = append(a.segs, s)
	return s, true
}

func fdot6(n int) fixed.FDot6 { return fixed.FDot6FromInt(int32(n)) }

// findCell returns the storage index for (xi, yi), or -1 when the clip
// drops it.
func (a *Accumulator) findCell(xi, yi int) int {
	if a.clipped {
		if yi < a.clip.Min.Y || yi >= a.clip.Max.Y || xi >= a.clip.Max.X {
			return -1
		}
		if xi < a.clip.Min.X {
			xi = a.clip.Min.X - 1
		}
	}
	k := cellKey{xi, yi}
	if i, ok := a.index[k]; ok {
		return i
	}
	if a.index == nil {
		a.index = make(map[cellKey]int)
	}
	a.cells = append(a.cells, Cell{X: xi, Y: yi})
	a.index[k] = len(a.cells) - 1
	return len(a.cells) - 1
}

func (a *Accumulator) saveCell() {
	if a.area != 0 || a.cover != 0 {
		if i := a.findCell(a.cx, a.cy); i >= 0 {
			a.cells[i].Area += a.sign * a.area
			a.cells[i].Cover += a.sign * a.cover
		}
		a.area, a.cover = 0, 0
	}
}

func (a *Accumulator) setCell(xi, yi int) {
	if a.cx != xi || a.cy != yi {
		a.saveCell()
		a.cx, a.cy = xi, yi
	}
}

// line walks a top-to-bottom segment row by row. Rows are split where
// the edge crosses y = n*64 using an exact remainder recurrence, so the
// covers of a segment sum to its height.
func (a *Accumulator) line(s segment) {
	a.sign = s.sign
	a.area, a.cover = 0, 0
	a.cx, a.cy = int(s.x0.Floor()), int(s.y0.Floor())

	x0, x1 := int(s.x0), int(s.x1)
	y0i, y0f := int(s.y0.Floor()), int(s.y0.Frac())
	y1i, y1f := int(s.y1.Floor()), int(s.y1.Frac())
	dx, dy := x1-x0, int(s.y1-s.y0)

	switch {
	case y0i == y1i:
		a.scan(y0i, x0, y0f, x1, y1f)

	case dx == 0:
		xi := floor6(x0)
		x0fTimes2 := (x0 - xi*64) * 2

		dcover := 64 - y0f
		a.area += x0fTimes2 * dcover
		a.cover += dcover
		yi := y0i + 1
		a.setCell(xi, yi)

		if a.clipped && yi < a.clip.Min.Y {
			yi = min(a.clip.Min.Y, y1i)
			a.area, a.cover = 0, 0
			a.cx, a.cy = xi, yi
		}
		for yi != y1i {
			if a.clipped && yi >= a.clip.Max.Y {
				a.area, a.cover = 0, 0
				return
			}
			a.area += x0fTimes2 * 64
			a.cover += 64
			yi++
			a.setCell(xi, yi)
		}

		a.area += x0fTimes2 * y1f
		a.cover += y1f

	default:
		xDelta, xRem := floorDivMod((64-y0f)*dx, dy)

		x, yi := x0, y0i
		a.scan(yi, x, y0f, x+xDelta, 64)
		x, yi = x+xDelta, yi+1
		a.setCell(floor6(x), yi)

		if yi != y1i {
			fullDelta, fullRem := floorDivMod(64*dx, dy)
			xRem -= dy
			if a.clipped && yi < a.clip.Min.Y {
				// Resume at the first clip row with the x the row
				// recurrence would have reached there.
				n := min(a.clip.Min.Y, y1i) - y0i
				q, r := mulDivFloor(64*n-y0f, dx, dy)
				x, xRem, yi = x0+q, r-dy, y0i+n
				a.area, a.cover = 0, 0
				a.cx, a.cy = floor6(x), yi
			}
			for yi != y1i {
				if a.clipped && yi >= a.clip.Max.Y {
					a.area, a.cover = 0, 0
					return
				}
				xDelta = fullDelta
				xRem += fullRem
				if xRem >= 0 {
					xDelta++
					xRem -= dy
				}
				a.scan(yi, x, 0, x+xDelta, 64)
				x, yi = x+xDelta, yi+1
				a.setCell(floor6(x), yi)
			}
		}

		a.scan(yi, x, 0, x1, y1f)
	}
	a.saveCell()
}

// scan accumulates the part of a segment inside row yi, from (x0, y0f)
// to (x1, y1f) with y1f >= y0f, splitting it at cell boundaries.
func (a *Accumulator) scan(yi, x0, y0f, x1, y1f int) {
	x0i := floor6(x0)
	x0f := x0 - x0i*64
	x1i := floor6(x1)
	x1f := x1 - x1i*64

	if a.clipped && (yi < a.clip.Min.Y || yi >= a.clip.Max.Y) {
		a.area, a.cover = 0, 0
		a.cx, a.cy = x1i, yi
		return
	}

	if y0f == y1f {
		a.setCell(x1i, yi)
		return
	}
	dx, dy := x1-x0, y1f-y0f

	if x0i == x1i {
		a.area += (x0f + x1f) * dy
		a.cover += dy
		return
	}

	var p, q, edge0, edge1, xiDelta int
	if dx > 0 {
		p, q = (64-x0f)*dy, dx
		edge0, edge1, xiDelta = 0, 64, 1
	} else {
		p, q = x0f*dy, -dx
		edge0, edge1, xiDelta = 64, 0, -1
	}

	yDelta, yRem := floorDivMod(p, q)

	xi, y := x0i, y0f
	a.area += (x0f + edge1) * yDelta
	a.cover += yDelta
	xi, y = xi+xiDelta, y+yDelta
	a.setCell(xi, yi)

	if xi != x1i {
		fullDelta, fullRem := floorDivMod(64*dy, q)
		yRem -= q
		for xi != x1i {
			if a.clipped {
				if target, fold, ok := a.skipTarget(xi, x1i, xiDelta); ok {
					// After m whole cells y is y0f + floor((p + m*64*dy) / q).
					m := (target-x0i)*xiDelta - 1
					yDelta, yRem = floorDivMod(p+m*64*dy, q)
					yDelta += y0f - y
					yRem -= q
					if fold {
						a.area += 64 * yDelta
						a.cover += yDelta
					} else {
						a.area, a.cover = 0, 0
					}
					xi, y = target, y+yDelta
					a.cx = xi
					continue
				}
				if xiDelta > 0 && xi >= a.clip.Max.X {
					a.area, a.cover = 0, 0
					a.cx = x1i
					return
				}
			}
			yDelta = fullDelta
			yRem += fullRem
			if yRem >= 0 {
				yDelta++
				yRem -= q
			}
			a.area += 64 * yDelta
			a.cover += yDelta
			xi, y = xi+xiDelta, y+yDelta
			a.setCell(xi, yi)
		}
	}

	yDelta = y1f - y
	a.area += (edge0 + x1f) * yDelta
	a.cover += yDelta
}

// skipTarget reports how far a row walk at cell xi, heading for x1i in
// steps of xiDelta, can jump without visiting cells one by one. Cells
// left of the clip all fold into one cell, so the walk may sum them
// (fold); cells right of it are dropped.
func (a *Accumulator) skipTarget(xi, x1i, xiDelta int) (target int, fold, ok bool) {
	left := a.clip.Min.X - 1
	if xiDelta > 0 {
		if xi < left {
			return min(left, x1i), true, true
		}
		return 0, false, false
	}
	switch {
	case xi <= left && xi != x1i:
		return x1i, true, true
	case xi > a.clip.Max.X:
		return max(a.clip.Max.X, x1i), false, true
	}
	return 0, false, false
}

// mulDivFloor returns floor(a*b / c) and the remainder in [0, c) for
// c > 0. The product is formed in 128 bits; the quotient must fit an int.
func mulDivFloor(a, b, c int) (int, int) {
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absUint(a), absUint(b))
	q, r := bits.Div64(hi, lo, uint64(c))
	switch {
	case !neg:
		return int(q), int(r)
	case r == 0:
		return -int(q), 0
	}
	return -int(q) - 1, c - int(r)
}

func absUint(v int) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// floor6 returns floor(v / 64) for a 26.6 value held in an int.
func floor6(v int) int { return v >> 6 }

// floorDivMod divides rounding toward negative infinity; q must be positive.
func floorDivMod(p, q int) (int, int) {
	d, r := p/q, p%q
	if r < 0 {
		d--
		r += q
	}
	return d, r
}
