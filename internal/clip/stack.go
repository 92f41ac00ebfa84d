// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clip

import (
	"image"

	"github.com/gogpu/rast/internal/raster"
)

// Stack manages nested clip regions with push/pop operations. The
// current region is a rectangle, optionally narrowed by a span set
// produced from clip paths.
type Stack struct {
	entries []entry
	bounds  image.Rectangle
	spans   []raster.Span
	masked  bool
}

// entry is the state saved by a push.
type entry struct {
	bounds image.Rectangle
	spans  []raster.Span
	masked bool
}

// NewStack creates a clip stack limited to bounds, typically the
// destination size.
func NewStack(bounds image.Rectangle) *Stack {
	return &Stack{
		entries: make([]entry, 0, 8),
		bounds:  bounds,
	}
}

func (cs *Stack) save() {
	cs.entries = append(cs.entries, entry{bounds: cs.bounds, spans: cs.spans, masked: cs.masked})
}

// PushRect narrows the clip to its intersection with r.
func (cs *Stack) PushRect(r image.Rectangle) {
	cs.save()
	cs.bounds = cs.bounds.Intersect(r)
	if cs.masked {
		cs.spans = Rect(cs.spans, cs.bounds)
	}
}

// PushSpans narrows the clip to its intersection with a resolved span
// set.
func (cs *Stack) PushSpans(spans []raster.Span) {
	cs.save()
	if cs.masked {
		cs.spans = Intersect(cs.spans, spans)
	} else {
		cs.spans = Rect(spans, cs.bounds)
		cs.masked = true
	}
}

// Pop restores the region saved by the most recent push. Popping an
// empty stack is a no-op.
func (cs *Stack) Pop() {
	if len(cs.entries) == 0 {
		return
	}
	last := len(cs.entries) - 1
	e := cs.entries[last]
	cs.bounds, cs.spans, cs.masked = e.bounds, e.spans, e.masked
	cs.entries = cs.entries[:last]
}

// Apply clips spans to the current region.
func (cs *Stack) Apply(spans []raster.Span) []raster.Span {
	spans = Rect(spans, cs.bounds)
	if cs.masked {
		spans = Intersect(spans, cs.spans)
	}
	return spans
}

// Bounds returns the current clip rectangle. With a span clip active the
// visible pixels are a subset of it.
func (cs *Stack) Bounds() image.Rectangle {
	return cs.bounds
}

// Coverage returns the clip coverage (0-255) of pixel (x, y).
func (cs *Stack) Coverage(x, y int) uint8 {
	if !image.Pt(x, y).In(cs.bounds) {
		return 0
	}
	if !cs.masked {
		return 255
	}
	return Coverage(cs.spans, x, y)
}

// Depth returns the number of pushed regions.
func (cs *Stack) Depth() int {
	return len(cs.entries)
}

// Reset clears all entries and sets a new outer bound.
func (cs *Stack) Reset(bounds image.Rectangle) {
	cs.entries = cs.entries[:0]
	cs.bounds = bounds
	cs.spans = nil
	cs.masked = false
}
