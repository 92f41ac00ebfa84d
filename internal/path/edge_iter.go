// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package path

// EdgeIter walks a path and yields its line edges one at a time.
//
// Subpaths never connect to each other: each is closed back to its own
// start before the next MoveTo is processed, or at the end of the path.
// A missing leading MoveTo starts the first subpath at the origin.
//
// This follows the same pattern as tiny-skia's PathEdgeIter.
type EdgeIter struct {
	path      *Path
	verb      int
	point     int
	current   Point
	moveTo    Point
	needClose bool

	sub       subdivider
	pending   []Point
	tolerance float64
	fallbacks int
}

// NewEdgeIter creates an iterator over a validated path.
func NewEdgeIter(p *Path, tolerance float64) *EdgeIter {
	tol := normalizeTolerance(tolerance)
	return &EdgeIter{
		path:      p,
		tolerance: tol,
		sub:       subdivider{tolerance: tol},
	}
}

// Next returns the next edge. ok is false when the path is exhausted.
func (it *EdgeIter) Next() (Edge, bool) {
	for {
		if len(it.pending) > 0 {
			return it.emit(), true
		}
		if it.verb >= len(it.path.verbs) {
			break
		}

		v := it.path.verbs[it.verb]
		pts := it.path.points[it.point : it.point+v.PointCount()]

		switch v {
		case MoveTo:
			if e, ok := it.closeSubpath(); ok {
				return e, true
			}
			it.moveTo = pts[0]
			it.current = pts[0]

		case LineTo:
			it.needClose = true
			it.pending = append(it.pending[:0], pts[0])

		case QuadTo:
			it.needClose = true
			it.flattenWith(func(s *subdivider) { s.quad(it.current, pts[0], pts[1], 0) })

		case CubicTo:
			it.needClose = true
			it.flattenWith(func(s *subdivider) { s.cubic(it.current, pts[0], pts[1], pts[2], 0) })

		case Close:
			it.advance(v)
			if e, ok := it.closeSubpath(); ok {
				return e, true
			}
			continue
		}
		it.advance(v)
	}

	return it.closeSubpath()
}

func (it *EdgeIter) advance(v Verb) {
	it.verb++
	it.point += v.PointCount()
}

func (it *EdgeIter) flattenWith(fn func(*subdivider)) {
	it.sub.points = it.sub.points[:0]
	it.sub.fallbacks = 0
	fn(&it.sub)
	it.fallbacks += it.sub.fallbacks
	it.pending = append(it.pending[:0], it.sub.points...)
}

// emit pops the next pending point as an edge from the current point.
func (it *EdgeIter) emit() Edge {
	next := it.pending[0]
	it.pending = it.pending[1:]
	e := NewEdge(it.current, next)
	it.current = next
	return e
}

// closeSubpath returns the edge back to the subpath start when a
// subpath is open and its current point differs from the start.
func (it *EdgeIter) closeSubpath() (Edge, bool) {
	if !it.needClose {
		return Edge{}, false
	}
	it.needClose = false
	from := it.current
	it.current = it.moveTo
	if from == it.moveTo {
		return Edge{}, false
	}
	return NewEdge(from, it.moveTo), true
}
