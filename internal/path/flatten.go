// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package path

import "math"

// DefaultTolerance is the flatness used when a caller passes a
// non-positive or non-finite tolerance.
const DefaultTolerance = 0.25

// MinTolerance is the smallest tolerance honored; smaller values are raised to it.
const MinTolerance = 1e-3

// MaxDepth bounds curve subdivision. A curve that cannot become flat
// within this depth is emitted as a straight line.
const MaxDepth = 32

// Edge is a line segment produced by flattening. Winding is +1 for
// descending edges (y grows), -1 for ascending ones and 0 for horizontal.
type Edge struct {
	P0, P1  Point
	Winding int8
}

// NewEdge returns the edge from p0 to p1 with its winding set.
func NewEdge(p0, p1 Point) Edge {
	e := Edge{P0: p0, P1: p1}
	switch {
	case p1.Y > p0.Y:
		e.Winding = 1
	case p1.Y < p0.Y:
		e.Winding = -1
	}
	return e
}

// Flatten validates p and converts it into line edges. Curves are
// subdivided until every control point lies within tolerance of its
// chord. Every subpath is closed, explicitly or not. Non-positive or
// non-finite tolerances use DefaultTolerance.
func Flatten(p *Path, tolerance float64) ([]Edge, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	it := NewEdgeIter(p, tolerance)
	edges := make([]Edge, 0, len(p.points)+len(p.verbs))
	for {
		e, ok := it.Next()
		if !ok {
			break
		}
		edges = append(edges, e)
	}
	if it.fallbacks > 0 {
		slogger().Debug("path: curve subdivision hit depth limit",
			"fallbacks", it.fallbacks, "maxDepth", MaxDepth, "tolerance", it.tolerance)
	}
	return edges, nil
}

// Bounds returns the bounding box of edges. ok is false for an empty list.
func Bounds(edges []Edge) (minX, minY, maxX, maxY float64, ok bool) {
	if len(edges) == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, e := range edges {
		minX = math.Min(minX, math.Min(e.P0.X, e.P1.X))
		maxX = math.Max(maxX, math.Max(e.P0.X, e.P1.X))
		minY = math.Min(minY, math.Min(e.P0.Y, e.P1.Y))
		maxY = math.Max(maxY, math.Max(e.P0.Y, e.P1.Y))
	}
	return minX, minY, maxX, maxY, true
}

// subdivider flattens curves into a point list, counting depth fallbacks.
type subdivider struct {
	tolerance float64
	points    []Point
	fallbacks int
}

// flat reports whether a curve whose control points deviate dist from
// the chord is emitted as a line at depth. Each split quarters the
// deviation, so curves that cannot reach the tolerance before MaxDepth
// (including non-finite ones) fall back immediately.
func (s *subdivider) flat(dist float64, depth int) bool {
	if dist <= s.tolerance {
		return true
	}
	if !(dist < math.MaxFloat64) || depth+levelsNeeded(dist/s.tolerance) > MaxDepth {
		s.fallbacks++
		return true
	}
	return false
}

// levelsNeeded estimates the subdivision levels that bring a deviation
// ratio under 1.
func levelsNeeded(ratio float64) int {
	return int(math.Ceil(math.Log2(ratio) / 2))
}

// quad flattens a quadratic Bezier, appending every point after p0.
func (s *subdivider) quad(p0, p1, p2 Point, depth int) {
	if s.flat(distanceToLine(p1, p0, p2), depth) {
		s.points = append(s.points, p2)
		return
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)

	s.quad(p0, q0, q2, depth+1)
	s.quad(q2, q1, p2, depth+1)
}

// cubic flattens a cubic Bezier, appending every point after p0.
func (s *subdivider) cubic(p0, p1, p2, p3 Point, depth int) {
	d1 := distanceToLine(p1, p0, p3)
	d2 := distanceToLine(p2, p0, p3)
	if s.flat(math.Max(d1, d2), depth) {
		s.points = append(s.points, p3)
		return
	}

	// de Casteljau split at t = 0.5.
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	m := r0.Lerp(r1, 0.5)

	s.cubic(p0, q0, r0, m, depth+1)
	s.cubic(m, r1, q2, p3, depth+1)
}

// distanceToLine calculates the perpendicular distance from point p to line segment (a, b).
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	abLen := ab.Length()

	if abLen < 1e-10 {
		// Line segment is a point
		return p.Distance(a)
	}

	ap := p.Sub(a)
	t := ap.Dot(ab) / (abLen * abLen)

	if t < 0 {
		return p.Distance(a)
	}
	if t > 1 {
		return p.Distance(b)
	}

	closest := a.Add(ab.Mul(t))
	return p.Distance(closest)
}

func normalizeTolerance(tol float64) float64 {
	switch {
	case !(tol > 0) || math.IsInf(tol, 0):
		return DefaultTolerance
	case tol < MinTolerance:
		return MinTolerance
	}
	return tol
}
