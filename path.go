package rast

import (
	"math"

	"github.com/gogpu/rast/internal/path"
)

// Point is a point in user space.
type Point = path.Point

// Pt creates a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Verb is a path command.
type Verb = path.Verb

// Path verbs.
const (
	MoveToVerb  = path.MoveTo
	LineToVerb  = path.LineTo
	QuadToVerb  = path.QuadTo
	CubicToVerb = path.CubicTo
	CloseVerb   = path.Close
)

// Path is an append-only vector path. Every builder method returns the
// path for chaining:
//
//	p := rast.NewPath().MoveTo(0, 0).LineTo(10, 0).LineTo(5, 8).ClosePath()
//
// A drawing command issued with no open subpath starts one at the current
// point (the origin for a new path), and consecutive MoveTo calls
// collapse into the last one.
type Path struct {
	p *path.Path
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{p: path.New()}
}

// PathFromRaw wraps verb and point streams built elsewhere. The streams
// are not checked until the path is filled; Validate reports mismatches
// early.
func PathFromRaw(verbs []Verb, points []Point) *Path {
	return &Path{p: path.FromRaw(verbs, points)}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) *Path {
	p.p.MoveTo(Pt(x, y))
	return p
}

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float64) *Path {
	p.p.LineTo(Pt(x, y))
	return p
}

// QuadraticCurveTo adds a quadratic Bezier curve with control point
// (cx, cy) ending at (x, y).
func (p *Path) QuadraticCurveTo(cx, cy, x, y float64) *Path {
	p.p.QuadTo(Pt(cx, cy), Pt(x, y))
	return p
}

// CubicCurveTo adds a cubic Bezier curve with control points (c1x, c1y)
// and (c2x, c2y) ending at (x, y).
func (p *Path) CubicCurveTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	p.p.CubicTo(Pt(c1x, c1y), Pt(c2x, c2y), Pt(x, y))
	return p
}

// ClosePath closes the current subpath.
func (p *Path) ClosePath() *Path {
	p.p.Close()
	return p
}

// Rect adds a closed rectangle.
func (p *Path) Rect(x, y, w, h float64) *Path {
	return p.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).ClosePath()
}

// Circle adds a circle approximated by four cubic Bezier curves.
func (p *Path) Circle(cx, cy, r float64) *Path {
	return p.Ellipse(cx, cy, r, r)
}

// Ellipse adds an axis-aligned ellipse.
func (p *Path) Ellipse(cx, cy, rx, ry float64) *Path {
	// Magic constant for circle approximation with cubic Beziers
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	ox, oy := rx*k, ry*k

	return p.MoveTo(cx+rx, cy).
		CubicCurveTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry).
		CubicCurveTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy).
		CubicCurveTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry).
		CubicCurveTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy).
		ClosePath()
}

// Polygon adds a closed polygon through pts. Fewer than two points add
// nothing.
func (p *Path) Polygon(pts ...Point) *Path {
	if len(pts) < 2 {
		return p
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	return p.ClosePath()
}

// RegularPolygon adds a regular n-gon of circumradius r centered on
// (cx, cy), with the first vertex at angle rotation (radians).
func (p *Path) RegularPolygon(n int, cx, cy, r, rotation float64) *Path {
	if n < 3 {
		return p
	}
	pts := make([]Point, n)
	for i := range pts {
		a := rotation + 2*math.Pi*float64(i)/float64(n)
		pts[i] = Pt(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	return p.Polygon(pts...)
}

// RoundRect adds a closed rectangle whose corners are rounded with
// radius r. The radius is limited to half the shorter side; r <= 0 adds
// a plain rectangle.
func (p *Path) RoundRect(x, y, w, h, r float64) *Path {
	return p.RoundRectCorners(x, y, w, h, CornerRadii{r, r, r, r})
}

// CornerRadii holds one radius per rectangle corner.
type CornerRadii struct {
	TopLeft, TopRight, BottomRight, BottomLeft float64
}

// RoundRectCorners adds a closed rectangle with a separate radius per
// corner. Each radius is limited to half the shorter side and negative
// radii count as zero. Non-positive width or height adds nothing.
func (p *Path) RoundRectCorners(x, y, w, h float64, r CornerRadii) *Path {
	if w <= 0 || h <= 0 {
		return p
	}
	limit := func(v float64) float64 { return max(0, min(v, w/2, h/2)) }
	tl, tr := limit(r.TopLeft), limit(r.TopRight)
	br, bl := limit(r.BottomRight), limit(r.BottomLeft)

	p.MoveTo(x+tl, y)
	p.LineTo(x+w-tr, y)
	p.ArcTo(x+w, y, x+w, y+tr, tr)
	p.LineTo(x+w, y+h-br)
	p.ArcTo(x+w, y+h, x+w-br, y+h, br)
	p.LineTo(x+bl, y+h)
	p.ArcTo(x, y+h, x, y+h-bl, bl)
	p.LineTo(x, y+tl)
	p.ArcTo(x, y, x+tl, y, tl)
	return p.ClosePath()
}

// Arc adds a circular arc around (cx, cy) from angle1 to angle2
// (radians), turning toward increasing angles. The arc is joined to the
// current subpath with a line, or starts a new one on an empty path.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64) *Path {
	sweep := angle2 - angle1
	if sweep < 0 {
		sweep = math.Mod(sweep, 2*math.Pi) + 2*math.Pi
	}
	return p.ArcToOval(cx, cy, r, r, 0, angle1, sweep, false)
}

// ArcTo adds an arc of radius r tangent to the line from the current
// point to (x1, y1) and to the line from (x1, y1) to (x2, y2), preceded
// by a line to the first tangent point. When the points are collinear or
// coincide, or r <= 0, it adds a line to (x1, y1).
func (p *Path) ArcTo(x1, y1, x2, y2, r float64) *Path {
	start := p.CurrentPoint()
	p1 := Pt(x1, y1)
	before := unit(p1.Sub(start))
	after := unit(Pt(x2, y2).Sub(p1))
	cos := before.Dot(after)
	sin := before.X*after.Y - before.Y*after.X
	if r <= 0 || !before.IsFinite() || !after.IsFinite() || math.Abs(sin) <= 1e-6 {
		return p.LineTo(x1, y1)
	}

	dist := math.Abs(r * (1 - cos) / sin)
	t0 := p1.Sub(before.Mul(dist))
	if p.IsEmpty() || t0 != start {
		p.LineTo(t0.X, t0.Y)
	}

	// The center sits r from the first tangent point, on the side the
	// path turns to.
	side := math.Copysign(1, sin)
	c := t0.Add(Pt(-before.Y, before.X).Mul(r * side))
	a0 := math.Atan2(t0.Y-c.Y, t0.X-c.X)
	p.ellipseArc(c.X, c.Y, r, r, 0, a0, side*math.Atan2(math.Abs(sin), cos))
	return p
}

// ArcToOval adds an arc of the ellipse centered on (cx, cy) with radii
// rx and ry, rotated by rotation, from startAngle through sweepAngle
// (radians, positive toward increasing angles). Sweeps are limited to
// one full turn. The arc starts a new subpath when forceMoveTo is set or
// the path is empty; otherwise a line joins it to the current point.
func (p *Path) ArcToOval(cx, cy, rx, ry, rotation, startAngle, sweepAngle float64, forceMoveTo bool) *Path {
	rx, ry = math.Abs(rx), math.Abs(ry)
	sweep := max(-2*math.Pi, min(sweepAngle, 2*math.Pi))

	x0, y0, _, _ := ellipsePoint(cx, cy, rx, ry, rotation, startAngle)
	if forceMoveTo || p.IsEmpty() {
		p.MoveTo(x0, y0)
	} else {
		p.LineTo(x0, y0)
	}
	if rx == 0 || ry == 0 {
		x1, y1, _, _ := ellipsePoint(cx, cy, rx, ry, rotation, startAngle+sweep)
		return p.LineTo(x1, y1)
	}
	p.ellipseArc(cx, cy, rx, ry, rotation, startAngle, sweep)
	return p
}

// ellipsePoint returns the point of the ellipse at angle eta and the
// derivative there.
func ellipsePoint(cx, cy, rx, ry, rotation, eta float64) (x, y, dx, dy float64) {
	sinR, cosR := math.Sincos(rotation)
	s, c := math.Sincos(eta)
	ex, ey := rx*c, ry*s
	tx, ty := -rx*s, ry*c
	return cx + ex*cosR - ey*sinR, cy + ex*sinR + ey*cosR,
		tx*cosR - ty*sinR, tx*sinR + ty*cosR
}

// ellipseArc adds cubic segments of at most a quarter turn tracing the
// ellipse from angle start through sweep. The current point must be the
// start of the arc.
func (p *Path) ellipseArc(cx, cy, rx, ry, rotation, start, sweep float64) {
	if sweep == 0 || math.IsNaN(sweep) {
		return
	}
	n := max(1, int(math.Ceil(math.Abs(sweep)/(math.Pi/2)-1e-9)))
	d := sweep / float64(n)
	t := math.Tan(d / 2)
	alpha := math.Sin(d) * (math.Sqrt(4+3*t*t) - 1) / 3

	x1, y1, dx1, dy1 := ellipsePoint(cx, cy, rx, ry, rotation, start)
	for i := 1; i <= n; i++ {
		x2, y2, dx2, dy2 := ellipsePoint(cx, cy, rx, ry, rotation, start+float64(i)*d)
		p.CubicCurveTo(x1+alpha*dx1, y1+alpha*dy1, x2-alpha*dx2, y2-alpha*dy2, x2, y2)
		x1, y1, dx1, dy1 = x2, y2, dx2, dy2
	}
}

func unit(v Point) Point {
	return v.Mul(1 / v.Length())
}

// AddPath appends the commands of q with m applied to every point. A
// malformed q leaves the path malformed, which Validate and the fill
// functions report.
func (p *Path) AddPath(q *Path, m Matrix) *Path {
	if q == nil {
		return p
	}
	p.p.Append(q.p, m.TransformPoint)
	return p
}

// Transform returns a copy of the path with m applied to every point.
func (p *Path) Transform(m Matrix) *Path {
	return &Path{p: p.p.Transform(m.TransformPoint)}
}

// Clone returns an independent copy of the path.
func (p *Path) Clone() *Path {
	return &Path{p: p.p.Transform(func(pt Point) Point { return pt })}
}

// Reset clears the path.
func (p *Path) Reset() *Path {
	p.p.Reset()
	return p
}

// Validate reports a *MalformedPathError when the verb and point
// streams do not line up.
func (p *Path) Validate() error {
	return p.p.Validate()
}

// Verbs returns the verb stream. The slice must not be modified.
func (p *Path) Verbs() []Verb { return p.p.Verbs() }

// Points returns the point stream. The slice must not be modified.
func (p *Path) Points() []Point { return p.p.Points() }

// IsEmpty reports whether the path has no commands.
func (p *Path) IsEmpty() bool { return p.p.IsEmpty() }

// CurrentPoint returns the current point.
func (p *Path) CurrentPoint() Point { return p.p.Current() }
