// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package path holds the path model (verbs plus a point stream) and the
// flattener that turns it into line edges for the scan converter.
package path

import (
	"errors"
	"fmt"
	"math"

	xfixed "golang.org/x/image/math/fixed"
)

// ErrMalformedPath is wrapped by every *MalformedPathError.
var ErrMalformedPath = errors.New("path: malformed path")

// Verb is a path command.
type Verb uint8

const (
	// MoveTo starts a new subpath. Consumes 1 point.
	MoveTo Verb = iota
	// LineTo draws a straight segment. Consumes 1 point.
	LineTo
	// QuadTo draws a quadratic Bezier. Consumes 2 points.
	QuadTo
	// CubicTo draws a cubic Bezier. Consumes 3 points.
	CubicTo
	// Close closes the current subpath. Consumes no points.
	Close
)

// PointCount returns the number of points v consumes.
func (v Verb) PointCount() int {
	switch v {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	default:
		return 0
	}
}

// String returns the verb name.
func (v Verb) String() string {
	switch v {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case QuadTo:
		return "QuadTo"
	case CubicTo:
		return "CubicTo"
	case Close:
		return "Close"
	default:
		return fmt.Sprintf("Verb(%d)", uint8(v))
	}
}

// MalformedPathError reports a verb stream whose point stream does not
// line up.
type MalformedPathError struct {
	// Index is the verb index where the mismatch was found. It equals
	// the verb count when points are left over.
	Index int
	Verb  Verb
	Need  int
	Have  int
}

func (e *MalformedPathError) Error() string {
	if e.Verb > Close {
		return fmt.Sprintf("path: malformed path: verb %d is unknown (%d)", e.Index, uint8(e.Verb))
	}
	if e.Need == 0 {
		return fmt.Sprintf("path: malformed path: %d points left after verb %d", e.Have, e.Index-1)
	}
	return fmt.Sprintf("path: malformed path: verb %d (%s) needs %d points, %d remain",
		e.Index, e.Verb, e.Need, e.Have)
}

func (e *MalformedPathError) Unwrap() error { return ErrMalformedPath }

// Point is a point in user space.
type Point struct {
	X, Y float64
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// IsFinite reports whether both coordinates are finite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Fixed rounds p to the nearest 26.6 point.
func (p Point) Fixed() xfixed.Point26_6 {
	return xfixed.Point26_6{X: to26_6(p.X), Y: to26_6(p.Y)}
}

func to26_6(f float64) xfixed.Int26_6 {
	r := math.Round(f * 64)
	switch {
	case math.IsNaN(r):
		return 0
	case r > math.MaxInt32:
		return math.MaxInt32
	case r < -math.MaxInt32:
		return -math.MaxInt32
	}
	return xfixed.Int26_6(r)
}

// Path is an append-only sequence of verbs with their points.
//
// The builder keeps the verb and point streams consistent: drawing verbs
// issued without an open subpath get a MoveTo injected at the current
// point, and consecutive MoveTos collapse into the latest one.
type Path struct {
	verbs   []Verb
	points  []Point
	start   Point
	current Point
}

// New returns an empty path.
func New() *Path {
	return &Path{}
}

// FromRaw wraps verb and point streams produced elsewhere. The streams
// are copied and not checked; call Validate before relying on them.
func FromRaw(verbs []Verb, points []Point) *Path {
	p := &Path{
		verbs:  append([]Verb(nil), verbs...),
		points: append([]Point(nil), points...),
	}
	if p.Validate() == nil {
		p.start, p.current = trackCursor(p.verbs, p.points)
	}
	return p
}

func trackCursor(verbs []Verb, points []Point) (start, current Point) {
	i := 0
	for _, v := range verbs {
		n := v.PointCount()
		switch v {
		case MoveTo:
			start = points[i]
			current = start
		case Close:
			current = start
		default:
			current = points[i+n-1]
		}
		i += n
	}
	return start, current
}

// Validate checks that every verb has the points it consumes and that
// no points are left over.
func (p *Path) Validate() error {
	i := 0
	for idx, v := range p.verbs {
		if v > Close {
			return &MalformedPathError{Index: idx, Verb: v, Have: len(p.points) - i}
		}
		n := v.PointCount()
		if i+n > len(p.points) {
			return &MalformedPathError{Index: idx, Verb: v, Need: n, Have: len(p.points) - i}
		}
		i += n
	}
	if i != len(p.points) {
		return &MalformedPathError{Index: len(p.verbs), Have: len(p.points) - i}
	}
	return nil
}

// Verbs returns the verb stream. The slice must not be modified.
func (p *Path) Verbs() []Verb { return p.verbs }

// Points returns the point stream. The slice must not be modified.
func (p *Path) Points() []Point { return p.points }

// Len returns the number of verbs.
func (p *Path) Len() int { return len(p.verbs) }

// IsEmpty reports whether the path has no verbs.
func (p *Path) IsEmpty() bool { return len(p.verbs) == 0 }

// Current returns the current point.
func (p *Path) Current() Point { return p.current }

// Reset clears the path, keeping allocated storage.
func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.start = Point{}
	p.current = Point{}
}

func (p *Path) lastVerb() (Verb, bool) {
	if len(p.verbs) == 0 {
		return 0, false
	}
	return p.verbs[len(p.verbs)-1], true
}

// MoveTo starts a new subpath at pt.
func (p *Path) MoveTo(pt Point) {
	if v, ok := p.lastVerb(); ok && v == MoveTo {
		p.points[len(p.points)-1] = pt
	} else {
		p.verbs = append(p.verbs, MoveTo)
		p.points = append(p.points, pt)
	}
	p.start = pt
	p.current = pt
}

// injectMoveTo opens a subpath at the current point when none is open.
func (p *Path) injectMoveTo() {
	if v, ok := p.lastVerb(); !ok || v == Close {
		p.verbs = append(p.verbs, MoveTo)
		p.points = append(p.points, p.current)
		p.start = p.current
	}
}

// LineTo adds a line to pt.
func (p *Path) LineTo(pt Point) {
	p.injectMoveTo()
	p.verbs = append(p.verbs, LineTo)
	p.points = append(p.points, pt)
	p.current = pt
}

// QuadTo adds a quadratic Bezier with control point c ending at pt.
func (p *Path) QuadTo(c, pt Point) {
	p.injectMoveTo()
	p.verbs = append(p.verbs, QuadTo)
	p.points = append(p.points, c, pt)
	p.current = pt
}

// CubicTo adds a cubic Bezier with control points c1, c2 ending at pt.
func (p *Path) CubicTo(c1, c2, pt Point) {
	p.injectMoveTo()
	p.verbs = append(p.verbs, CubicTo)
	p.points = append(p.points, c1, c2, pt)
	p.current = pt
}

// Close closes the current subpath. It is a no-op when no subpath is open.
func (p *Path) Close() {
	if v, ok := p.lastVerb(); !ok || v == Close {
		return
	}
	p.verbs = append(p.verbs, Close)
	p.current = p.start
}

// Transform returns a copy of p with every point mapped through fn.
// fn must be affine for curves to keep their meaning.
func (p *Path) Transform(fn func(Point) Point) *Path {
	out := &Path{
		verbs:   append([]Verb(nil), p.verbs...),
		points:  make([]Point, len(p.points)),
		start:   fn(p.start),
		current: fn(p.current),
	}
	for i, pt := range p.points {
		out.points[i] = fn(pt)
	}
	return out
}

// Append adds the commands of q to p with every point mapped through fn.
// A well-formed q is replayed through the builder, so its commands obey
// the same implicit MoveTo and collapsing rules as direct calls. A
// malformed q is appended as is and leaves p malformed.
func (p *Path) Append(q *Path, fn func(Point) Point) {
	verbs, points := q.verbs, q.points
	if q.Validate() != nil {
		p.verbs = append(p.verbs, verbs...)
		for _, pt := range points {
			p.points = append(p.points, fn(pt))
		}
		return
	}
	i := 0
	for _, v := range verbs {
		switch v {
		case MoveTo:
			p.MoveTo(fn(points[i]))
		case LineTo:
			p.LineTo(fn(points[i]))
		case QuadTo:
			p.QuadTo(fn(points[i]), fn(points[i+1]))
		case CubicTo:
			p.CubicTo(fn(points[i]), fn(points[i+1]), fn(points[i+2]))
		case Close:
			p.Close()
		}
		i += v.PointCount()
	}
}
