// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"cmp"
	"slices"
)

// crossing is where an active edge meets a sample line, in 26.6.
type crossing struct {
	x   int
	dir int
}

// xAt returns the 26.6 x where s crosses the 26.6 sample line y,
// rounded toward negative infinity.
func (s *segment) xAt(y int) int {
	dy := int(s.y1 - s.y0)
	d, _ := floorDivMod((y-int(s.y0))*int(s.x1-s.x0), dy)
	return int(s.x0) + d
}

// ActiveEdgeTable tracks the segments crossing a monotonically
// increasing sample line. A segment is active on [y0, y1).
type ActiveEdgeTable struct {
	pending []segment // sorted by y0, not yet active
	next    int
	active  []segment
	cross   []crossing
}

// reset loads segs, which are copied and sorted by their top.
func (t *ActiveEdgeTable) reset(segs []segment) {
	t.pending = append(t.pending[:0], segs...)
	slices.SortStableFunc(t.pending, func(p, q segment) int { return cmp.Compare(p.y0, q.y0) })
	t.next = 0
	t.active = t.active[:0]
}

// crossings returns the sorted crossings of the sample line y. Calls
// must use non-decreasing y.
func (t *ActiveEdgeTable) crossings(y int) []crossing {
	for t.next < len(t.pending) && int(t.pending[t.next].y0) <= y {
		t.active = append(t.active, t.pending[t.next])
		t.next++
	}
	live := t.active[:0]
	for _, s := range t.active {
		if int(s.y1) > y {
			live = append(live, s)
		}
	}
	t.active = live

	t.cross = t.cross[:0]
	for i := range t.active {
		s := &t.active[i]
		if int(s.y0) <= y {
			t.cross = append(t.cross, crossing{x: s.xAt(y), dir: s.sign})
		}
	}
	slices.SortFunc(t.cross, func(p, q crossing) int {
		if c := cmp.Compare(p.x, q.x); c != 0 {
			return c
		}
		return cmp.Compare(p.dir, q.dir)
	})
	return t.cross
}

// empty reports whether no segment can become active any more.
func (t *ActiveEdgeTable) empty() bool {
	return t.next >= len(t.pending) && len(t.active) == 0
}

// insideRuns calls fn for every interval [xa, xb) of the sorted
// crossings that is inside the outline under rule.
func insideRuns(cross []crossing, rule FillRule, fn func(xa, xb int)) {
	switch rule {
	case EvenOdd:
		for i := 0; i+1 < len(cross); i += 2 {
			if cross[i].x < cross[i+1].x {
				fn(cross[i].x, cross[i+1].x)
			}
		}
	default:
		winding, start := 0, 0
		for _, c := range cross {
			if winding == 0 {
				start = c.x
			}
			winding += c.dir
			if winding == 0 && start < c.x {
				fn(start, c.x)
			}
		}
	}
}
