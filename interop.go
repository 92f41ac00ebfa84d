// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rast

import (
	"iter"

	"honnef.co/go/curve"
	"seehuhn.de/go/geom/matrix"
	gpath "seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// FromShape converts a curve.Shape into a Path. Shapes that produce
// arcs or other primitives are approximated by the shape itself within
// tolerance before conversion.
func FromShape(s curve.Shape, tolerance float64) *Path {
	return FromPathElements(s.PathElements(tolerance))
}

// FromPathElements converts a sequence of curve path elements into a
// Path.
func FromPathElements(seq iter.Seq[curve.PathElement]) *Path {
	p := NewPath()
	for el := range seq {
		switch el.Kind {
		case curve.MoveToKind:
			p.MoveTo(el.P0.X, el.P0.Y)
		case curve.LineToKind:
			p.LineTo(el.P0.X, el.P0.Y)
		case curve.QuadToKind:
			p.QuadraticCurveTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y)
		case curve.CubicToKind:
			p.CubicCurveTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
		case curve.ClosePathKind:
			p.ClosePath()
		}
	}
	return p
}

// FromGeomPath converts a seehuhn geometry path into a Path. A nil path
// converts to an empty one. When Cmds and Coords do not line up the
// result is a *MalformedPathError.
func FromGeomPath(d *gpath.Data) (*Path, error) {
	p := NewPath()
	if d == nil {
		return p, nil
	}
	i := 0
	c := d.Coords
	for idx, cmd := range d.Cmds {
		verb, ok := geomVerbs[cmd]
		if !ok {
			return nil, &MalformedPathError{Index: idx, Verb: unknownVerb, Have: len(c) - i}
		}
		n := verb.PointCount()
		if i+n > len(c) {
			return nil, &MalformedPathError{Index: idx, Verb: verb, Need: n, Have: len(c) - i}
		}
		switch verb {
		case MoveToVerb:
			p.MoveTo(c[i].X, c[i].Y)
		case LineToVerb:
			p.LineTo(c[i].X, c[i].Y)
		case QuadToVerb:
			p.QuadraticCurveTo(c[i].X, c[i].Y, c[i+1].X, c[i+1].Y)
		case CubicToVerb:
			p.CubicCurveTo(c[i].X, c[i].Y, c[i+1].X, c[i+1].Y, c[i+2].X, c[i+2].Y)
		case CloseVerb:
			p.ClosePath()
		}
		i += n
	}
	if i != len(c) {
		return nil, &MalformedPathError{Index: len(d.Cmds), Have: len(c) - i}
	}
	return p, nil
}

// unknownVerb marks a command with no Verb counterpart.
const unknownVerb Verb = 0xff

var geomVerbs = map[gpath.Command]Verb{
	gpath.CmdMoveTo: MoveToVerb,
	gpath.CmdLineTo: LineToVerb,
	gpath.CmdQuadTo: QuadToVerb,
	gpath.CmdCubeTo: CubicToVerb,
	gpath.CmdClose:  CloseVerb,
}

// PolygonFromVecs builds a closed polygon through pts.
func PolygonFromVecs(pts []vec.Vec2) *Path {
	p := NewPath()
	for i, v := range pts {
		if i == 0 {
			p.MoveTo(v.X, v.Y)
		} else {
			p.LineTo(v.X, v.Y)
		}
	}
	if len(pts) > 0 {
		p.ClosePath()
	}
	return p
}

// MatrixFromGeom converts a PDF-order matrix [a b c d e f], which maps
// (x, y) to (a*x + c*y + e, b*x + d*y + f), into a Matrix.
func MatrixFromGeom(m matrix.Matrix) Matrix {
	return Matrix{
		A: m[0], B: m[2], C: m[4],
		D: m[1], E: m[3], F: m[5],
	}
}

// GeomMatrix is the inverse of MatrixFromGeom.
func (m Matrix) GeomMatrix() matrix.Matrix {
	return matrix.Matrix{m.A, m.D, m.B, m.E, m.C, m.F}
}
