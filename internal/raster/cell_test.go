// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"image/draw"
	"math"
	"testing"

	"golang.org/x/image/vector"

	"github.com/gogpu/rast/internal/path"
)

func TestAreaToAlpha(t *testing.T) {
	tests := []struct {
		area int
		want uint8
	}{
		{0, 0},
		{8192, 255},
		{-8192, 255},
		{4096, 128},
		{2048, 64},
		{16384, 255},
		{16, 0},
		{17, 1},
	}
	for _, tt := range tests {
		if got := areaToAlpha(tt.area); got != tt.want {
			t.Errorf("areaToAlpha(%d) = %d, want %d", tt.area, got, tt.want)
		}
	}
}

func TestFloorDivMod(t *testing.T) {
	tests := []struct{ p, q, d, r int }{
		{7, 2, 3, 1},
		{-7, 2, -4, 1},
		{-8, 2, -4, 0},
		{0, 5, 0, 0},
		{-1, 64, -1, 63},
	}
	for _, tt := range tests {
		d, r := floorDivMod(tt.p, tt.q)
		if d != tt.d || r != tt.r {
			t.Errorf("floorDivMod(%d, %d) = %d, %d; want %d, %d", tt.p, tt.q, d, r, tt.d, tt.r)
		}
	}
}

func TestAccumulatorPixelSquare(t *testing.T) {
	a := Rasterize(rect(3, 2, 4, 3))
	cells := a.Cells()

	cover := 0
	for _, c := range cells {
		if c.Y != 2 {
			t.Errorf("cell %+v outside row 2", c)
		}
		cover += c.Cover
	}
	if cover != 0 {
		t.Errorf("net cover = %d, want 0", cover)
	}

	left, ok := a.Cell(3, 2)
	if !ok {
		t.Fatal("no cell at (3,2)")
	}
	if got := left.Cover*128 - left.Area; got != 8192 && got != -8192 {
		t.Errorf("left cell value = %d, want magnitude 8192", got)
	}
	if _, ok := a.Cell(5, 2); ok {
		t.Error("unexpected cell at (5,2)")
	}
}

func TestAccumulatorCoverSumsToHeight(t *testing.T) {
	a := NewAccumulator()
	a.AddEdge(path.NewEdge(path.Point{X: 1.2, Y: 0.3}, path.Point{X: 7.9, Y: 5.7}))

	sum := 0
	for _, c := range a.Cells() {
		sum += c.Cover
	}
	// 0.3 and 5.7 round to 19 and 365 in 26.6.
	if sum != 365-19 {
		t.Errorf("cover sum = %d, want %d", sum, 365-19)
	}
}

func TestAccumulatorReset(t *testing.T) {
	a := Rasterize(rect(0, 0, 4, 4))
	if a.Len() == 0 {
		t.Fatal("no cells")
	}
	a.Reset()
	if a.Len() != 0 || len(a.segs) != 0 {
		t.Errorf("after Reset: %d cells, %d segments", a.Len(), len(a.segs))
	}
	if _, ok := a.Cell(0, 0); ok {
		t.Error("cell survived Reset")
	}
}

func TestAccumulatorClipFold(t *testing.T) {
	a := NewAccumulator()
	a.SetClip(image.Rect(4, 0, 6, 2))
	a.AddEdges(rect(0, 0, 10, 4))

	for _, c := range a.Cells() {
		if c.Y >= 2 {
			t.Errorf("cell %+v below clip", c)
		}
		if c.X < 3 || c.X >= 6 {
			t.Errorf("cell %+v outside folded columns", c)
		}
	}
	if _, ok := a.Clip(); !ok {
		t.Error("clip not reported")
	}

	want := []Span{
		{Y: 0, X: 4, Len: 2, Coverage: 255},
		{Y: 1, X: 4, Len: 2, Coverage: 255},
	}
	got := ResolveNonZero(a)
	if len(got) != len(want) {
		t.Fatalf("spans = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	a.SetClip(image.Rectangle{})
	if _, ok := a.Clip(); ok {
		t.Error("empty clip still reported")
	}
}

func TestResolveMatchesFill(t *testing.T) {
	edges := polygon(path.Point{X: 0.5, Y: 0.5}, path.Point{X: 9.5, Y: 2}, path.Point{X: 4, Y: 8.5})
	for _, rule := range []FillRule{NonZero, EvenOdd} {
		a := NewAccumulator()
		a.AddEdges(edges)
		got := Resolve(a, rule)
		want := NewRasterizer().Fill(edges, rule, AntiAlias)
		if len(got) != len(want) {
			t.Fatalf("%v: %d spans, Fill gave %d", rule, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%v: span %d = %+v, want %+v", rule, i, got[i], want[i])
			}
		}
	}

	a := Rasterize(edges)
	bin := ResolveBinary(a, NonZero)
	for _, s := range bin {
		if s.Coverage != 255 {
			t.Fatalf("binary span %+v not opaque", s)
		}
	}
}

// TestOracle compares non-zero coverage with golang.org/x/image/vector,
// which integrates the same signed area in floating point.
// clipPolygon clips a closed polygon to the half-plane where inside
// holds, with cross returning the boundary crossing of a segment
// (Sutherland-Hodgman).
func clipPolygon(pts []path.Point, inside func(path.Point) bool, cross func(a, b path.Point) path.Point) []path.Point {
	var out []path.Point
	for i, cur := range pts {
		prev := pts[(i+len(pts)-1)%len(pts)]
		switch {
		case inside(cur):
			if !inside(prev) {
				out = append(out, cross(prev, cur))
			}
			out = append(out, cur)
		case inside(prev):
			out = append(out, cross(prev, cur))
		}
	}
	return out
}

func shoelace(pts []path.Point) float64 {
	var sum float64
	for i, a := range pts {
		b := pts[(i+1)%len(pts)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// exactCoverage returns the area of the simple polygon pts inside the
// unit pixel square at (x, y).
func exactCoverage(pts []path.Point, x, y int) float64 {
	atX := func(v float64) func(a, b path.Point) path.Point {
		return func(a, b path.Point) path.Point {
			return path.Point{X: v, Y: a.Y + (b.Y-a.Y)*(v-a.X)/(b.X-a.X)}
		}
	}
	atY := func(v float64) func(a, b path.Point) path.Point {
		return func(a, b path.Point) path.Point {
			return path.Point{X: a.X + (b.X-a.X)*(v-a.Y)/(b.Y-a.Y), Y: v}
		}
	}
	x0, y0 := float64(x), float64(y)
	x1, y1 := x0+1, y0+1
	pts = clipPolygon(pts, func(p path.Point) bool { return p.X >= x0 }, atX(x0))
	pts = clipPolygon(pts, func(p path.Point) bool { return p.X <= x1 }, atX(x1))
	pts = clipPolygon(pts, func(p path.Point) bool { return p.Y >= y0 }, atY(y0))
	pts = clipPolygon(pts, func(p path.Point) bool { return p.Y <= y1 }, atY(y1))
	if len(pts) < 3 {
		return 0
	}
	return shoelace(pts)
}

var oracleShapes = []struct {
	name string
	pts  []path.Point
}{
	{"triangle", []path.Point{{X: 2.25, Y: 3.5}, {X: 29.5, Y: 9.75}, {X: 11, Y: 28.125}}},
	{"diamond", []path.Point{{X: 16, Y: 1}, {X: 31, Y: 16}, {X: 16, Y: 31}, {X: 1, Y: 16}}},
	{"star", []path.Point{
		{X: 16, Y: 1}, {X: 20, Y: 12}, {X: 31, Y: 12}, {X: 22, Y: 19}, {X: 26, Y: 30},
		{X: 16, Y: 23}, {X: 6, Y: 30}, {X: 10, Y: 19}, {X: 1, Y: 12}, {X: 12, Y: 12},
	}},
}

// Every vertex sits on the 1/64 grid. What is left is the floor of edge
// crossings to 1/64 pixel and the 8-bit alpha rounding.
func TestCoverageMatchesExactArea(t *testing.T) {
	const size = 32
	const tolerance = 5
	for _, tt := range oracleShapes {
		t.Run(tt.name, func(t *testing.T) {
			got := grid(t, NewRasterizer().Fill(polygon(tt.pts...), NonZero, AntiAlias), size, size)
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					want := exactCoverage(tt.pts, x, y) * 255
					if d := float64(got[y*size+x]) - want; math.Abs(d) > tolerance {
						t.Errorf("pixel (%d,%d) = %d, exact area gives %.2f", x, y, got[y*size+x], want)
					}
				}
			}
		})
	}
}

// x/image/vector is a loose reference only: its own error reaches about
// 10/255 on these shapes, so pixels may differ by up to 16.
func TestCoverageNearVector(t *testing.T) {
	const size = 32
	const tolerance = 16
	for _, tt := range oracleShapes {
		t.Run(tt.name, func(t *testing.T) {
			r := vector.NewRasterizer(size, size)
			r.MoveTo(float32(tt.pts[0].X), float32(tt.pts[0].Y))
			for _, p := range tt.pts[1:] {
				r.LineTo(float32(p.X), float32(p.Y))
			}
			r.ClosePath()
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			r.DrawOp = draw.Src
			r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})

			got := grid(t, NewRasterizer().Fill(polygon(tt.pts...), NonZero, AntiAlias), size, size)
			for y := 0; y < size; y++ {
				for x := 0; x < size; x++ {
					want := dst.AlphaAt(x, y).A
					if d := int(got[y*size+x]) - int(want); d < -tolerance || d > tolerance {
						t.Errorf("pixel (%d,%d) = %d, vector gives %d", x, y, got[y*size+x], want)
					}
				}
			}
		})
	}
}

func TestExactCoverage(t *testing.T) {
	square := []path.Point{{X: 1, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 3}, {X: 1, Y: 3}}
	half := []path.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	tests := []struct {
		name string
		pts  []path.Point
		x, y int
		want float64
	}{
		{"inside", square, 2, 2, 1},
		{"outside", square, 5, 5, 0},
		{"corner", []path.Point{{X: 0.5, Y: 0.5}, {X: 2, Y: 0.5}, {X: 2, Y: 2}, {X: 0.5, Y: 2}}, 0, 0, 0.25},
		{"diagonal", half, 0, 0, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exactCoverage(tt.pts, tt.x, tt.y); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("exactCoverage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMulDivFloor(t *testing.T) {
	tests := []struct{ a, b, c, q, r int }{
		{7, 3, 2, 10, 1},
		{-7, 3, 2, -11, 1},
		{5, -3, 4, -4, 1},
		{-8, -2, 4, 4, 0},
		{-8, 2, 4, -4, 0},
		{1 << 40, 1 << 40, 1 << 20, 1 << 60, 0},
		{1 << 33, -(1 << 31), 1 << 32, -(1 << 32), 0},
		{(1 << 32) + 3, (1 << 32) - 1, 1 << 32, (1 << 32) + 1, (1 << 32) - 3},
	}
	for _, tt := range tests {
		q, r := mulDivFloor(tt.a, tt.b, tt.c)
		if q != tt.q || r != tt.r {
			t.Errorf("mulDivFloor(%d, %d, %d) = %d, %d; want %d, %d", tt.a, tt.b, tt.c, q, r, tt.q, tt.r)
		}
	}
}

// spanAt returns the coverage of (x, y) in spans.
func spanAt(spans []Span, x, y int) uint8 {
	for _, s := range spans {
		if s.Y == y && x >= s.X && x < s.End() {
			return s.Coverage
		}
	}
	return 0
}

// The clipped walk jumps over dropped rows and over cells that fold or
// drop, and must land on the same cells as a full walk.
func TestAccumulatorClipMatchesFullWalk(t *testing.T) {
	clip := image.Rect(5, 4, 27, 20)
	shapes := []struct {
		name string
		pts  []path.Point
	}{
		{"wide triangle", []path.Point{{X: -40.3, Y: 1.7}, {X: 70.2, Y: 9.1}, {X: 15.5, Y: 60.8}}},
		{"reversed triangle", []path.Point{{X: 90, Y: -20}, {X: -30, Y: 12.4}, {X: 50.6, Y: 45}}},
		{"thin sliver", []path.Point{{X: -100, Y: 10.2}, {X: 100, Y: 11.9}, {X: 100, Y: 13}, {X: -100, Y: 12.3}}},
		{"steep sliver", []path.Point{{X: 10.1, Y: -200}, {X: 12.7, Y: 200}, {X: 14.3, Y: 200}}},
		{"crossing star", []path.Point{
			{X: 16, Y: -30}, {X: 22, Y: 12}, {X: 61, Y: 12}, {X: 25, Y: 19}, {X: 36, Y: 50},
			{X: 16, Y: 23}, {X: -6, Y: 50}, {X: 8, Y: 19}, {X: -31, Y: 12}, {X: 11, Y: 12},
		}},
	}
	for _, tt := range shapes {
		t.Run(tt.name, func(t *testing.T) {
			edges := polygon(tt.pts...)
			full := ResolveNonZero(Rasterize(edges))

			a := NewAccumulator()
			a.SetClip(clip)
			a.AddEdges(edges)
			got := ResolveNonZero(a)

			for _, s := range got {
				if s.Y < clip.Min.Y || s.Y >= clip.Max.Y || s.X < clip.Min.X || s.End() > clip.Max.X {
					t.Errorf("span %+v outside clip %v", s, clip)
				}
			}
			for y := clip.Min.Y; y < clip.Max.Y; y++ {
				for x := clip.Min.X; x < clip.Max.X; x++ {
					if g, w := spanAt(got, x, y), spanAt(full, x, y); g != w {
						t.Errorf("pixel (%d,%d) = %d clipped, %d unclipped", x, y, g, w)
					}
				}
			}
		})
	}
}

// Edges reaching the saturated 26.6 range walk only the cells inside the
// clip.
func TestClipHugeCoordinates(t *testing.T) {
	const big = 1e12
	edges := polygon(
		path.Point{X: 2, Y: 2.5}, path.Point{X: big, Y: 3},
		path.Point{X: big, Y: big}, path.Point{X: 2, Y: big},
	)
	clip := image.Rect(0, 0, 16, 16)

	for _, rule := range []FillRule{NonZero, EvenOdd} {
		for _, mode := range []Mode{AntiAlias, Binary} {
			t.Run(rule.String()+"/"+mode.String(), func(t *testing.T) {
				spans := NewRasterizer(WithClip(clip)).Fill(edges, rule, mode)
				for y := 3; y < 16; y++ {
					for x := 0; x < 16; x++ {
						want := uint8(0)
						if x >= 2 {
							want = 255
						}
						if got := spanAt(spans, x, y); got != want {
							t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
						}
					}
				}
				for _, s := range spans {
					if s.Y < 2 {
						t.Errorf("span %+v above the shape", s)
					}
				}
			})
		}
	}

	a := NewAccumulator()
	a.SetClip(clip)
	a.AddEdges(edges)
	if got := spanAt(ResolveNonZero(a), 9, 2); got < 126 || got > 129 {
		t.Errorf("half-covered row coverage = %d, want about 128", got)
	}
	if a.Len() > 2*clip.Dx()*clip.Dy() {
		t.Errorf("%d cells stored for a %v clip", a.Len(), clip)
	}
}
