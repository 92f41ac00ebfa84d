// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rast

import "math"

// Rect is an axis-aligned rectangle in user space. Min is the top-left
// corner and Max the bottom-right one.
type Rect struct {
	Min, Max Point
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// emptyRect is the identity for include.
func emptyRect() Rect {
	inf := math.Inf(1)
	return Rect{Min: Pt(inf, inf), Max: Pt(-inf, -inf)}
}

func (r *Rect) include(pt Point) {
	r.Min.X, r.Min.Y = min(r.Min.X, pt.X), min(r.Min.Y, pt.Y)
	r.Max.X, r.Max.Y = max(r.Max.X, pt.X), max(r.Max.Y, pt.Y)
}

func (r Rect) orZero() Rect {
	if r.Min.X > r.Max.X {
		return Rect{}
	}
	return r
}

// Bounds returns the box around every stored point, control points
// included. An empty path returns the zero Rect.
func (p *Path) Bounds() Rect {
	r := emptyRect()
	for _, pt := range p.Points() {
		r.include(pt)
	}
	return r.orZero()
}

// TightBounds returns the box around the outline itself: curve control
// points only count through the curve extrema they produce. A malformed
// path falls back to Bounds.
func (p *Path) TightBounds() Rect {
	if p.Validate() != nil {
		return p.Bounds()
	}
	r := emptyRect()
	pts := p.Points()
	var cur Point
	i := 0
	for _, v := range p.Verbs() {
		switch v {
		case MoveToVerb, LineToVerb:
			cur = pts[i]
			r.include(cur)
		case QuadToVerb:
			c, end := pts[i], pts[i+1]
			r.include(end)
			for _, t := range quadExtrema(cur, c, end) {
				r.include(quadAt(cur, c, end, t))
			}
			cur = end
		case CubicToVerb:
			c1, c2, end := pts[i], pts[i+1], pts[i+2]
			r.include(end)
			for _, t := range cubicExtrema(cur, c1, c2, end) {
				r.include(cubicAt(cur, c1, c2, end, t))
			}
			cur = end
		}
		i += v.PointCount()
	}
	return r.orZero()
}

// quadExtrema returns the parameters in (0, 1) where the quadratic has
// a horizontal or vertical tangent.
func quadExtrema(p0, p1, p2 Point) []float64 {
	var ts []float64
	for _, d := range [][3]float64{{p0.X, p1.X, p2.X}, {p0.Y, p1.Y, p2.Y}} {
		den := d[0] - 2*d[1] + d[2]
		if den == 0 {
			continue
		}
		if t := (d[0] - d[1]) / den; t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	return ts
}

// cubicExtrema returns the parameters in (0, 1) where the cubic has a
// horizontal or vertical tangent.
func cubicExtrema(p0, p1, p2, p3 Point) []float64 {
	var ts []float64
	for _, d := range [][4]float64{{p0.X, p1.X, p2.X, p3.X}, {p0.Y, p1.Y, p2.Y, p3.Y}} {
		// The derivative over 3 is a*t^2 + b*t + c.
		da, db, dc := d[1]-d[0], d[2]-d[1], d[3]-d[2]
		a, b, c := da-2*db+dc, 2*(db-da), da
		for _, t := range solveQuadratic(a, b, c) {
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	return ts
}

// solveQuadratic returns the real roots of a*t^2 + b*t + c.
func solveQuadratic(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func quadAt(p0, p1, p2 Point, t float64) Point {
	mt := 1 - t
	return p0.Mul(mt * mt).Add(p1.Mul(2 * mt * t)).Add(p2.Mul(t * t))
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	return p0.Mul(mt * mt * mt).Add(p1.Mul(3 * mt * mt * t)).
		Add(p2.Mul(3 * mt * t * t)).Add(p3.Mul(t * t * t))
}
