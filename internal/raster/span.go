// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// Span is a horizontal run of pixels sharing one coverage value.
// A resolved span set is sorted by Y then X with no overlaps.
type Span struct {
	Y, X, Len int
	Coverage  uint8
}

// End returns the first X past the span.
func (s Span) End() int { return s.X + s.Len }

// spanBuilder appends spans in row-major order, merging a run into the
// previous span when it continues it with the same coverage.
type spanBuilder struct {
	spans []Span

	// Optional horizontal limit applied to every run.
	minX, maxX int
	limited    bool
}

func (b *spanBuilder) limit(minX, maxX int) {
	b.minX, b.maxX, b.limited = minX, maxX, true
}

func (b *spanBuilder) add(y, x, n int, coverage uint8) {
	if coverage == 0 || n <= 0 {
		return
	}
	if b.limited {
		end := min(x+n, b.maxX)
		x = max(x, b.minX)
		n = end - x
		if n <= 0 {
			return
		}
	}
	if k := len(b.spans) - 1; k >= 0 {
		last := &b.spans[k]
		if last.Y == y && last.Coverage == coverage && last.End() == x {
			last.Len += n
			return
		}
	}
	b.spans = append(b.spans, Span{Y: y, X: x, Len: n, Coverage: coverage})
}

// areaToAlpha maps a doubled cell area, where 2*64*64 is a full pixel,
// to an alpha in [0, 255]. The magnitude is used, so both orientations
// of an outline yield the same coverage.
func areaToAlpha(area int) uint8 {
	if area < 0 {
		area = -area
	}
	const full = 2 * 64 * 64
	a := (area*255 + full/2) / full
	if a > 255 {
		return 255
	}
	return uint8(a)
}
