// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

// ResolveNonZero turns the accumulated cells into anti-aliased spans
// under the non-zero rule.
//
// Each row is walked left to right carrying the running cover. A cell's
// coverage is cover*128 - area, the doubled area right of its edges, and
// the pixels between two cells take the running cover alone. Runs of
// equal alpha merge into one span.
func ResolveNonZero(a *Accumulator) []Span {
	var b spanBuilder
	clip, clipped := a.Clip()
	if clipped {
		b.limit(clip.Min.X, clip.Max.X)
	}

	cells := a.Cells()
	for i := 0; i < len(cells); {
		y := cells[i].Y
		x, cover := cells[i].X, 0
		for ; i < len(cells) && cells[i].Y == y; i++ {
			c := cells[i]
			if cover != 0 && c.X > x {
				b.add(y, x, c.X-x, areaToAlpha(cover*64*2))
			}
			cover += c.Cover
			b.add(y, c.X, 1, areaToAlpha(cover*64*2-c.Area))
			x = c.X + 1
		}
		// Cells right of the clip were dropped, so a leftover cover runs
		// to the clip edge.
		if cover != 0 && clipped && x < clip.Max.X {
			b.add(y, x, clip.Max.X-x, areaToAlpha(cover*64*2))
		}
	}
	return b.spans
}

// ResolveEvenOdd resolves the accumulated edges under the even-odd rule
// with subSamples sub-scanlines per row (see NormalizeSubSamples).
func ResolveEvenOdd(a *Accumulator, subSamples int) []Span {
	var s sampler
	return s.resolve(a, EvenOdd, AntiAlias, subSamples)
}

// ResolveBinary resolves the accumulated edges without anti-aliasing:
// every covered pixel gets full coverage.
func ResolveBinary(a *Accumulator, rule FillRule) []Span {
	var s sampler
	return s.resolve(a, rule, Binary, 1)
}

// Resolve resolves the accumulator under rule with anti-aliasing, using
// DefaultSubSamples for the even-odd rule.
func Resolve(a *Accumulator, rule FillRule) []Span {
	if rule == EvenOdd {
		return ResolveEvenOdd(a, DefaultSubSamples)
	}
	return ResolveNonZero(a)
}

func (s *sampler) resolve(a *Accumulator, rule FillRule, mode Mode, subSamples int) []Span {
	var b spanBuilder
	clip, clipped := a.Clip()
	bounds := pixelBounds(a.segs, clip, clipped)
	if mode == Binary {
		s.centers(a.segs, rule, bounds, &b)
	} else {
		s.supersample(a.segs, rule, NormalizeSubSamples(subSamples), bounds, &b)
	}
	return b.spans
}
