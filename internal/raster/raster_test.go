// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math"
	"slices"
	"testing"

	"github.com/gogpu/rast/internal/path"
)

// polygon returns the closed edge list through pts.
func polygon(pts ...path.Point) []path.Edge {
	edges := make([]path.Edge, 0, len(pts))
	for i := range pts {
		edges = append(edges, path.NewEdge(pts[i], pts[(i+1)%len(pts)]))
	}
	return edges
}

func rect(x0, y0, x1, y1 float64) []path.Edge {
	return polygon(path.Point{X: x0, Y: y0}, path.Point{X: x1, Y: y0},
		path.Point{X: x1, Y: y1}, path.Point{X: x0, Y: y1})
}

// grid expands spans into a w x h coverage image.
func grid(t *testing.T, spans []Span, w, h int) []uint8 {
	t.Helper()
	out := make([]uint8, w*h)
	for _, s := range spans {
		for x := s.X; x < s.End(); x++ {
			if x < 0 || x >= w || s.Y < 0 || s.Y >= h {
				t.Fatalf("span %+v outside %dx%d", s, w, h)
			}
			out[s.Y*w+x] = s.Coverage
		}
	}
	return out
}

func checkSorted(t *testing.T, spans []Span) {
	t.Helper()
	for i := 1; i < len(spans); i++ {
		p, q := spans[i-1], spans[i]
		if p.Y > q.Y || (p.Y == q.Y && p.End() > q.X) {
			t.Fatalf("spans %d and %d out of order or overlapping: %+v %+v", i-1, i, p, q)
		}
	}
}

func TestFillRect(t *testing.T) {
	for _, rule := range []FillRule{NonZero, EvenOdd} {
		for _, mode := range []Mode{AntiAlias, Binary} {
			t.Run(rule.String()+"/"+mode.String(), func(t *testing.T) {
				spans := NewRasterizer().Fill(rect(0, 0, 10, 10), rule, mode)
				checkSorted(t, spans)

				want := make([]Span, 10)
				for y := range want {
					want[y] = Span{Y: y, X: 0, Len: 10, Coverage: 255}
				}
				if !slices.Equal(spans, want) {
					t.Errorf("spans = %+v", spans)
				}
			})
		}
	}
}

func TestFillRectOrientationIndependent(t *testing.T) {
	cw := NewRasterizer().Fill(rect(2.5, 1.25, 7.75, 6), NonZero, AntiAlias)
	ccw := NewRasterizer().Fill(polygon(
		path.Point{X: 2.5, Y: 1.25}, path.Point{X: 2.5, Y: 6},
		path.Point{X: 7.75, Y: 6}, path.Point{X: 7.75, Y: 1.25},
	), NonZero, AntiAlias)
	if !slices.Equal(cw, ccw) {
		t.Errorf("orientation changed coverage:\n%+v\n%+v", cw, ccw)
	}
}

func TestFillFractionalRect(t *testing.T) {
	// Half-pixel borders on every side.
	g := grid(t, NewRasterizer().Fill(rect(0.5, 0.5, 3.5, 2.5), NonZero, AntiAlias), 5, 4)

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 64},  // quarter pixel
		{1, 0, 128}, // half
		{3, 0, 64},
		{0, 1, 128},
		{1, 1, 255},
		{2, 1, 255},
		{3, 2, 64},
		{4, 1, 0},
		{1, 3, 0},
	}
	for _, tt := range tests {
		if got := g[tt.y*5+tt.x]; got != tt.want {
			t.Errorf("pixel (%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestAreaConservation(t *testing.T) {
	tests := []struct {
		name string
		pts  []path.Point
	}{
		{"triangle", []path.Point{{X: 1.3, Y: 2.7}, {X: 20.1, Y: 5.2}, {X: 8.6, Y: 17.9}}},
		{"thin sliver", []path.Point{{X: 0.2, Y: 0.1}, {X: 30.7, Y: 3.3}, {X: 30.9, Y: 3.9}}},
		{"steep quad", []path.Point{{X: 4, Y: 0.5}, {X: 5.5, Y: 29}, {X: 9.25, Y: 28}, {X: 6, Y: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := 0.0
			for i, p := range tt.pts {
				q := tt.pts[(i+1)%len(tt.pts)]
				want += p.X*q.Y - q.X*p.Y
			}
			want = math.Abs(want) / 2

			for _, rule := range []FillRule{NonZero, EvenOdd} {
				got := 0.0
				for _, s := range NewRasterizer().Fill(polygon(tt.pts...), rule, AntiAlias) {
					got += float64(s.Len) * float64(s.Coverage) / 255
				}
				if math.Abs(got-want) > 1 {
					t.Errorf("%v: covered area %.3f, want %.3f", rule, got, want)
				}
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	edges := polygon(
		path.Point{X: 3.1, Y: 0.4}, path.Point{X: 17.9, Y: 9.6},
		path.Point{X: 0.6, Y: 11.2}, path.Point{X: 12.3, Y: 1.1},
		path.Point{X: 9.9, Y: 15.5},
	)
	reversed := slices.Clone(edges)
	slices.Reverse(reversed)

	for _, rule := range []FillRule{NonZero, EvenOdd} {
		r := NewRasterizer()
		first := r.Fill(edges, rule, AntiAlias)
		second := r.Fill(edges, rule, AntiAlias)
		other := NewRasterizer().Fill(reversed, rule, AntiAlias)
		if !slices.Equal(first, second) {
			t.Errorf("%v: repeated fill differs", rule)
		}
		if !slices.Equal(first, other) {
			t.Errorf("%v: edge order changed the result", rule)
		}
	}

	a, b := Rasterize(edges), Rasterize(reversed)
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Error("cells depend on edge order")
	}
}

func TestNestedRects(t *testing.T) {
	// Both rectangles wind the same way.
	edges := append(rect(0, 0, 20, 20), rect(5, 5, 15, 15)...)

	for _, mode := range []Mode{AntiAlias, Binary} {
		t.Run(mode.String(), func(t *testing.T) {
			nz := grid(t, NewRasterizer().Fill(edges, NonZero, mode), 20, 20)
			eo := grid(t, NewRasterizer().Fill(edges, EvenOdd, mode), 20, 20)

			if nz[10*20+10] != 255 {
				t.Errorf("nonzero overlap = %d, want 255", nz[10*20+10])
			}
			if eo[10*20+10] != 0 {
				t.Errorf("evenodd overlap = %d, want 0", eo[10*20+10])
			}
			if eo[2*20+2] != 255 || nz[2*20+2] != 255 {
				t.Errorf("ring coverage = %d/%d, want 255", nz[2*20+2], eo[2*20+2])
			}
		})
	}
}

func TestSharedDiagonalNoCrack(t *testing.T) {
	// Two triangles share the diagonal (0,0)-(10,10) in one pass.
	edges := append(
		polygon(path.Point{X: 0, Y: 0}, path.Point{X: 10, Y: 0}, path.Point{X: 10, Y: 10}),
		polygon(path.Point{X: 0, Y: 0}, path.Point{X: 10, Y: 10}, path.Point{X: 0, Y: 10})...,
	)
	g := grid(t, NewRasterizer().Fill(edges, NonZero, AntiAlias), 10, 10)
	for i, c := range g {
		if c != 255 {
			t.Fatalf("pixel (%d,%d) = %d, want 255", i%10, i/10, c)
		}
	}

	// The diagonal cancels exactly: no cell carries any area or cover
	// inside the square.
	acc := Rasterize(edges)
	for _, c := range acc.Cells() {
		if c.X > 0 && c.X < 10 && (c.Area != 0 || c.Cover != 0) {
			t.Fatalf("cell %+v left behind by shared edge", c)
		}
	}
}

func TestSpansMergeOnlyEqualCoverage(t *testing.T) {
	spans := NewRasterizer().Fill(rect(0.5, 0, 4.5, 1), NonZero, AntiAlias)
	want := []Span{
		{Y: 0, X: 0, Len: 1, Coverage: 128},
		{Y: 0, X: 1, Len: 3, Coverage: 255},
		{Y: 0, X: 4, Len: 1, Coverage: 128},
	}
	if !slices.Equal(spans, want) {
		t.Errorf("spans = %+v, want %+v", spans, want)
	}
}

func TestClip(t *testing.T) {
	edges := rect(-5, -5, 30, 30)
	clip := image.Rect(2, 3, 8, 6)

	for _, rule := range []FillRule{NonZero, EvenOdd} {
		for _, mode := range []Mode{AntiAlias, Binary} {
			t.Run(rule.String()+"/"+mode.String(), func(t *testing.T) {
				spans := NewRasterizer(WithClip(clip)).Fill(edges, rule, mode)
				want := []Span{
					{Y: 3, X: 2, Len: 6, Coverage: 255},
					{Y: 4, X: 2, Len: 6, Coverage: 255},
					{Y: 5, X: 2, Len: 6, Coverage: 255},
				}
				if !slices.Equal(spans, want) {
					t.Errorf("spans = %+v", spans)
				}
			})
		}
	}
}

func TestEmptyAndDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		edges []path.Edge
	}{
		{"no edges", nil},
		{"horizontal only", []path.Edge{path.NewEdge(path.Point{X: 0, Y: 1}, path.Point{X: 9, Y: 1})}},
		{"zero area", polygon(path.Point{X: 0, Y: 0}, path.Point{X: 5, Y: 5}, path.Point{X: 10, Y: 10})},
		{"nan", []path.Edge{path.NewEdge(path.Point{X: math.NaN(), Y: 0}, path.Point{X: 1, Y: 4})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, rule := range []FillRule{NonZero, EvenOdd} {
				if spans := NewRasterizer().Fill(tt.edges, rule, AntiAlias); len(spans) != 0 {
					t.Errorf("%v: spans = %+v", rule, spans)
				}
			}
		})
	}
}

func TestNegativeCoordinates(t *testing.T) {
	spans := NewRasterizer().Fill(rect(-3, -2, -1, 0), NonZero, AntiAlias)
	want := []Span{
		{Y: -2, X: -3, Len: 2, Coverage: 255},
		{Y: -1, X: -3, Len: 2, Coverage: 255},
	}
	if !slices.Equal(spans, want) {
		t.Errorf("spans = %+v", spans)
	}
}

func TestBinaryCenterSampling(t *testing.T) {
	// Covers x in [0.4, 2.6): centers 0.5, 1.5, 2.5 are inside.
	spans := NewRasterizer().Fill(rect(0.4, 0.4, 2.6, 1.4), NonZero, Binary)
	want := []Span{{Y: 0, X: 0, Len: 3, Coverage: 255}}
	if !slices.Equal(spans, want) {
		t.Errorf("spans = %+v, want %+v", spans, want)
	}
}

func TestNormalizeSubSamples(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, DefaultSubSamples}, {-3, DefaultSubSamples}, {1, 1}, {3, 2}, {16, 16}, {20, 16}, {64, MaxSubSamples},
	}
	for _, tt := range tests {
		if got := NormalizeSubSamples(tt.in); got != tt.want {
			t.Errorf("NormalizeSubSamples(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEvenOddSubSamplesAgree(t *testing.T) {
	edges := polygon(path.Point{X: 1, Y: 1}, path.Point{X: 14.5, Y: 3}, path.Point{X: 6, Y: 13.25})
	coarse := grid(t, NewRasterizer(WithSubSamples(4)).Fill(edges, EvenOdd, AntiAlias), 16, 16)
	fine := grid(t, NewRasterizer(WithSubSamples(32)).Fill(edges, EvenOdd, AntiAlias), 16, 16)
	for i := range coarse {
		if d := int(coarse[i]) - int(fine[i]); d < -48 || d > 48 {
			t.Errorf("pixel %d: coarse %d fine %d", i, coarse[i], fine[i])
		}
	}
}

func TestFillRuleString(t *testing.T) {
	if NonZero.String() != "nonzero" || EvenOdd.String() != "evenodd" || FillRule(7).String() != "FillRule(7)" {
		t.Error("unexpected FillRule names")
	}
	if AntiAlias.String() != "antialias" || Binary.String() != "binary" {
		t.Error("unexpected Mode names")
	}
}
