// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rast

import (
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/rast/internal/blend"
	"github.com/gogpu/rast/internal/clip"
	"github.com/gogpu/rast/internal/path"
	"github.com/gogpu/rast/internal/raster"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule = raster.FillRule

const (
	// NonZero fills where the winding number is not zero.
	NonZero = raster.NonZero
	// EvenOdd fills where the winding number is odd.
	EvenOdd = raster.EvenOdd
)

// ParseFillRule parses "nonzero" or "evenodd". Case is ignored and a
// hyphen is accepted inside either name.
func ParseFillRule(s string) (FillRule, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "") {
	case "nonzero":
		return NonZero, nil
	case "evenodd":
		return EvenOdd, nil
	}
	return NonZero, fmt.Errorf("rast: unknown fill rule %q", s)
}

// Op is a compositing operator.
type Op = blend.Op

const (
	// OpSrcOver composites the color over the destination.
	OpSrcOver = blend.OpSrcOver
	// OpSrc replaces covered pixels with the color scaled by coverage.
	OpSrc = blend.OpSrc
	// OpDstIn keeps the destination where the color is opaque.
	OpDstIn = blend.OpDstIn
	// OpDstOut keeps the destination where the color is transparent.
	OpDstOut = blend.OpDstOut
)

// ParseOp parses "src", "src-over", "dst-in" or "dst-out".
func ParseOp(s string) (Op, error) {
	op, err := blend.ParseOp(s)
	if err != nil {
		return op, fmt.Errorf("rast: %w", err)
	}
	return op, nil
}

// Span is a horizontal run of pixels on row Y starting at X with one
// coverage value (0-255).
type Span = raster.Span

// Spans is a resolved span set, sorted by Y then X with no overlaps.
type Spans []Span

// Bounds returns the smallest rectangle containing every span.
func (s Spans) Bounds() image.Rectangle {
	return clip.Bounds(s)
}

// Intersect returns the pixels covered by both sets, multiplying
// coverage.
func (s Spans) Intersect(other Spans) Spans {
	return clip.Intersect(s, other)
}

// ClipRect returns the spans cut to r.
func (s Spans) ClipRect(r image.Rectangle) Spans {
	return clip.Rect(s, r)
}

// Coverage returns the coverage of pixel (x, y).
func (s Spans) Coverage(x, y int) uint8 {
	return clip.Coverage(s, x, y)
}

// Area returns the covered area in pixels, weighting each pixel by its
// coverage.
func (s Spans) Area() float64 {
	sum := 0
	for _, sp := range s {
		sum += sp.Len * int(sp.Coverage)
	}
	return float64(sum) / 255
}

// FillPath flattens p within tolerance (device pixels; non-positive
// selects path.DefaultTolerance) and resolves it under rule into
// anti-aliased spans. A malformed path returns an error wrapping
// ErrMalformedPath.
//
// FillPath does not clip, so its cost grows with the pixel extent of p.
// Coordinates are saturated to about ±2^25 pixels; for geometry that may
// reach that far, fill through a Context, which only walks the rows and
// cells inside its buffer.
func FillPath(p *Path, rule FillRule, tolerance float64) (Spans, error) {
	return fill(raster.NewRasterizer(), p, rule, tolerance, raster.AntiAlias)
}

// FillPathBinary is FillPath without anti-aliasing: a pixel is covered
// when its center is inside, and every span is opaque.
func FillPathBinary(p *Path, rule FillRule, tolerance float64) (Spans, error) {
	return fill(raster.NewRasterizer(), p, rule, tolerance, raster.Binary)
}

func fill(r *raster.Rasterizer, p *Path, rule FillRule, tolerance float64, mode raster.Mode) (Spans, error) {
	if p == nil || p.IsEmpty() {
		return nil, nil
	}
	edges, err := path.Flatten(p.p, tolerance)
	if err != nil {
		return nil, fmt.Errorf("rast: fill: %w", err)
	}
	return r.Fill(edges, rule, mode), nil
}

// Paint composites color onto buf with op over every span. Each span is
// clipped to the buffer; spans outside it are skipped. Only covered
// pixels are touched.
func Paint(spans Spans, buf *PixelBuffer, color RGBA8, op Op) {
	if buf == nil || len(spans) == 0 {
		return
	}
	r, g, b, a := color.Premultiply()

	painted := 0
	for _, s := range spans {
		if s.Y < 0 || s.Y >= buf.Height {
			continue
		}
		row := buf.row(s.Y, max(s.X, 0), min(s.End(), buf.Width))
		if row == nil {
			continue
		}
		blend.FillSpan(row, r, g, b, a, s.Coverage, op)
		painted += len(row) / 4
	}

	Logger().Debug("rast: paint",
		"op", op, "spans", len(spans), "pixels", painted)
}
