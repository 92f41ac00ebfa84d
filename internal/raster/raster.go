// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster converts flattened edges into coverage spans.
//
// The pipeline has two stages. An Accumulator walks every edge in 26.6
// fixed point and sums signed area and cover into one cell per pixel.
// A resolver then turns the cells into spans under a fill rule: the
// non-zero rule reads coverage straight from the cells, while the
// even-odd rule and the binary mode sample edge crossings.
package raster

import (
	"fmt"
	"image"

	"github.com/gogpu/rast/internal/path"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule uint8

const (
	// NonZero fills where the winding number is not zero.
	NonZero FillRule = iota
	// EvenOdd fills where the winding number is odd.
	EvenOdd
)

// String returns the rule name.
func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return fmt.Sprintf("FillRule(%d)", uint8(r))
	}
}

// Mode selects anti-aliased or binary coverage.
type Mode uint8

const (
	// AntiAlias produces fractional coverage at edges.
	AntiAlias Mode = iota
	// Binary produces full coverage for pixels whose center is inside.
	Binary
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case AntiAlias:
		return "antialias"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Option configures a Rasterizer.
type Option func(*options)

type options struct {
	clip       image.Rectangle
	subSamples int
}

// WithClip limits output to r.
func WithClip(r image.Rectangle) Option {
	return func(o *options) { o.clip = r }
}

// WithSubSamples sets the even-odd sub-scanline count.
func WithSubSamples(n int) Option {
	return func(o *options) { o.subSamples = NormalizeSubSamples(n) }
}

// Rasterizer runs the full edges-to-spans pipeline, reusing its buffers
// between calls. It is not safe for concurrent use.
type Rasterizer struct {
	opts options
	acc  *Accumulator
	smp  sampler
}

// NewRasterizer creates a rasterizer.
func NewRasterizer(opts ...Option) *Rasterizer {
	o := options{subSamples: DefaultSubSamples}
	for _, opt := range opts {
		opt(&o)
	}
	acc := NewAccumulator()
	acc.SetClip(o.clip)
	return &Rasterizer{opts: o, acc: acc}
}

// SetClip changes the clip rectangle. An empty r removes it.
func (r *Rasterizer) SetClip(clip image.Rectangle) {
	r.opts.clip = clip
	r.acc.SetClip(clip)
}

// Fill rasterizes edges under rule and mode and returns the spans,
// sorted by Y then X.
func (r *Rasterizer) Fill(edges []path.Edge, rule FillRule, mode Mode) []Span {
	r.acc.Reset()

	var spans []Span
	switch {
	case mode == Binary:
		for _, e := range edges {
			r.acc.addSegment(e)
		}
		spans = r.smp.resolve(r.acc, rule, Binary, 1)
	case rule == EvenOdd:
		for _, e := range edges {
			r.acc.addSegment(e)
		}
		spans = r.smp.resolve(r.acc, EvenOdd, AntiAlias, r.opts.subSamples)
	default:
		r.acc.AddEdges(edges)
		spans = ResolveNonZero(r.acc)
	}

	slogger().Debug("raster: fill resolved",
		"rule", rule, "mode", mode, "edges", len(edges),
		"cells", r.acc.Len(), "spans", len(spans))
	return spans
}
