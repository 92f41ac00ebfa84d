// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math/bits"
)

// Sub-scanline limits for the parity sampler. The count must divide the
// 64 sub-pixel rows of a pixel with an integer sample offset.
const (
	DefaultSubSamples = 16
	MaxSubSamples     = 32
)

// NormalizeSubSamples clamps n to a power of two in [1, MaxSubSamples].
// Non-positive n selects DefaultSubSamples.
func NormalizeSubSamples(n int) int {
	switch {
	case n <= 0:
		return DefaultSubSamples
	case n >= MaxSubSamples:
		return MaxSubSamples
	}
	return 1 << (bits.Len(uint(n)) - 1)
}

// sampler resolves segments by sampling crossings on horizontal lines.
// It backs the even-odd rule, where summed cell covers cannot express
// parity, and the binary mode of both rules.
type sampler struct {
	aet ActiveEdgeTable
	acc []int
}

// pixelBounds returns the pixel rectangle touched by segs, limited to
// clip when clipped is set.
func pixelBounds(segs []segment, clip image.Rectangle, clipped bool) image.Rectangle {
	if len(segs) == 0 {
		return image.Rectangle{}
	}
	minX, maxX := int(min(segs[0].x0, segs[0].x1)), int(max(segs[0].x0, segs[0].x1))
	minY, maxY := int(segs[0].y0), int(segs[0].y1)
	for _, s := range segs[1:] {
		minX = min(minX, int(s.x0), int(s.x1))
		maxX = max(maxX, int(s.x0), int(s.x1))
		minY = min(minY, int(s.y0))
		maxY = max(maxY, int(s.y1))
	}
	r := image.Rect(floor6(minX), floor6(minY), floor6(maxX)+1, ceil6(maxY))
	if clipped {
		r = r.Intersect(clip)
	}
	return r
}

func ceil6(v int) int { return (v + 63) >> 6 }

// supersample computes anti-aliased coverage with n sub-scanlines per
// pixel row. Along each sub-scanline the inside runs are integrated
// exactly in 26.6, so the horizontal resolution is 1/64 pixel.
func (s *sampler) supersample(segs []segment, rule FillRule, n int, bounds image.Rectangle, b *spanBuilder) {
	if bounds.Empty() {
		return
	}
	s.aet.reset(segs)

	width := bounds.Dx()
	if cap(s.acc) < width {
		s.acc = make([]int, width)
	}
	s.acc = s.acc[:width]
	clear(s.acc)

	step := 64 / n
	full := 64 * n
	lo, hi := bounds.Min.X*64, bounds.Max.X*64

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if s.aet.empty() {
			break
		}
		first, last := width, -1
		for k := 0; k < n; k++ {
			ys := y*64 + k*step + step/2
			insideRuns(s.aet.crossings(ys), rule, func(xa, xb int) {
				xa, xb = max(xa, lo), min(xb, hi)
				if xa >= xb {
					return
				}
				pa, pb := floor6(xa), floor6(xb)
				first = min(first, pa-bounds.Min.X)
				if pa == pb {
					s.acc[pa-bounds.Min.X] += xb - xa
					last = max(last, pa-bounds.Min.X)
					return
				}
				s.acc[pa-bounds.Min.X] += (pa+1)*64 - xa
				for p := pa + 1; p < pb; p++ {
					s.acc[p-bounds.Min.X] += 64
				}
				last = max(last, pb-1-bounds.Min.X)
				if pb < bounds.Max.X && xb > pb*64 {
					s.acc[pb-bounds.Min.X] += xb - pb*64
					last = max(last, pb-bounds.Min.X)
				}
			})
		}
		for i := first; i <= last; i++ {
			if v := s.acc[i]; v != 0 {
				a := (v*255 + full/2) / full
				b.add(y, bounds.Min.X+i, 1, uint8(min(a, 255)))
				s.acc[i] = 0
			}
		}
	}
}

// centers computes binary coverage: a pixel is inside when its center
// (x+0.5, y+0.5) is inside under rule.
func (s *sampler) centers(segs []segment, rule FillRule, bounds image.Rectangle, b *spanBuilder) {
	if bounds.Empty() {
		return
	}
	s.aet.reset(segs)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if s.aet.empty() {
			break
		}
		insideRuns(s.aet.crossings(y*64+32), rule, func(xa, xb int) {
			// Pixel p is covered when xa <= p*64+32 < xb.
			pa, pb := ceil6(xa-32), ceil6(xb-32)
			pa, pb = max(pa, bounds.Min.X), min(pb, bounds.Max.X)
			b.add(y, pa, pb-pa, 255)
		})
	}
}
