// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package clip combines resolved span sets for clip paths.
//
// All functions take and return span sets in the resolved form produced
// by the raster package: sorted by Y then X, with no overlapping spans on
// a row. Coverage values combine by 8-bit multiplication, a*b/255
// truncated, so an opaque clip leaves coverage unchanged.
package clip

import (
	"image"
	"sort"

	"github.com/gogpu/rast/internal/raster"
)

// mulCoverage multiplies two 8-bit coverages, truncating.
func mulCoverage(a, b uint8) uint8 {
	return uint8(uint16(a) * uint16(b) / 255)
}

// Intersect returns the intersection of two span sets. The sets are
// walked in lockstep by row and then by overlapping x ranges. Rows
// present in only one operand produce nothing, and so do overlaps whose
// combined coverage is zero.
func Intersect(a, b []raster.Span) []raster.Span {
	var out []raster.Span
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		sa, sb := a[i], b[j]
		switch {
		case sa.Y < sb.Y:
			i++
			continue
		case sa.Y > sb.Y:
			j++
			continue
		}

		x0, x1 := max(sa.X, sb.X), min(sa.End(), sb.End())
		if x0 < x1 {
			if c := mulCoverage(sa.Coverage, sb.Coverage); c != 0 {
				out = append(out, raster.Span{Y: sa.Y, X: x0, Len: x1 - x0, Coverage: c})
			}
		}

		// Advance whichever span ends first; both when they end together.
		switch ea, eb := sa.End(), sb.End(); {
		case ea < eb:
			i++
		case eb < ea:
			j++
		default:
			i++
			j++
		}
	}
	return out
}

// Bounds returns the smallest rectangle containing every span.
func Bounds(spans []raster.Span) image.Rectangle {
	var r image.Rectangle
	for _, s := range spans {
		if s.Len <= 0 {
			continue
		}
		sr := image.Rect(s.X, s.Y, s.End(), s.Y+1)
		if r.Empty() {
			r = sr
		} else {
			r = r.Union(sr)
		}
	}
	return r
}

// Rect clips a span set to r. Spans are cut at the rectangle's sides and
// rows outside it are dropped.
func Rect(spans []raster.Span, r image.Rectangle) []raster.Span {
	if r.Empty() {
		return nil
	}
	var out []raster.Span
	for _, s := range spans {
		if s.Y < r.Min.Y || s.Y >= r.Max.Y {
			continue
		}
		x0, x1 := max(s.X, r.Min.X), min(s.End(), r.Max.X)
		if x0 < x1 {
			out = append(out, raster.Span{Y: s.Y, X: x0, Len: x1 - x0, Coverage: s.Coverage})
		}
	}
	return out
}

// Fill returns one opaque span per row of r.
func Fill(r image.Rectangle) []raster.Span {
	if r.Empty() {
		return nil
	}
	out := make([]raster.Span, 0, r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		out = append(out, raster.Span{Y: y, X: r.Min.X, Len: r.Dx(), Coverage: 255})
	}
	return out
}

// Coverage returns the coverage of (x, y) in spans, 0 when no span
// contains it.
func Coverage(spans []raster.Span, x, y int) uint8 {
	i := sort.Search(len(spans), func(i int) bool {
		s := spans[i]
		return s.Y > y || (s.Y == y && s.End() > x)
	})
	if i < len(spans) && spans[i].Y == y && spans[i].X <= x {
		return spans[i].Coverage
	}
	return 0
}
