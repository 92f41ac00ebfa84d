package rast

import "github.com/gogpu/rast/internal/raster"

// ContextOption configures a Context during creation.
// Use functional options to customize Context behavior.
//
// Example:
//
//	// Defaults: non-zero rule, opaque black, source-over, anti-aliased
//	dc := rast.NewContext(buf)
//
//	// Even-odd rule, binary coverage
//	dc := rast.NewContext(buf, rast.WithFillRule(rast.EvenOdd), rast.WithAntiAlias(false))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	fillRule   FillRule
	tolerance  float64
	op         Op
	color      RGBA8
	opacity    float64
	antiAlias  bool
	subSamples int
	transform  Matrix
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		fillRule:   NonZero,
		op:         OpSrcOver,
		color:      Black,
		opacity:    1,
		antiAlias:  true,
		subSamples: raster.DefaultSubSamples,
		transform:  Identity(),
	}
}

// WithFillRule sets the initial fill rule.
func WithFillRule(rule FillRule) ContextOption {
	return func(o *contextOptions) {
		o.fillRule = rule
	}
}

// WithTolerance sets the curve flattening tolerance in device pixels.
// Non-positive values select the default.
func WithTolerance(tol float64) ContextOption {
	return func(o *contextOptions) {
		o.tolerance = tol
	}
}

// WithOp sets the initial compositing operator.
func WithOp(op Op) ContextOption {
	return func(o *contextOptions) {
		o.op = op
	}
}

// WithColor sets the initial paint color.
func WithColor(c RGBA8) ContextOption {
	return func(o *contextOptions) {
		o.color = c
	}
}

// WithOpacity sets the initial opacity multiplier applied to the paint
// color alpha. See Context.SetOpacity.
func WithOpacity(opacity float64) ContextOption {
	return func(o *contextOptions) {
		o.opacity = clampOpacity(opacity)
	}
}

// WithAntiAlias enables or disables anti-aliasing. Without it every
// covered pixel is painted at full coverage.
func WithAntiAlias(on bool) ContextOption {
	return func(o *contextOptions) {
		o.antiAlias = on
	}
}

// WithSubSamples sets the number of sub-scanlines per pixel row used for
// anti-aliased even-odd fills. The value is rounded down to a power of
// two in [1, 32].
func WithSubSamples(n int) ContextOption {
	return func(o *contextOptions) {
		o.subSamples = raster.NormalizeSubSamples(n)
	}
}

// WithTransform sets the initial transformation matrix.
func WithTransform(m Matrix) ContextOption {
	return func(o *contextOptions) {
		o.transform = m
	}
}
