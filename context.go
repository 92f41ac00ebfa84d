package rast

import (
	"image"

	"github.com/gogpu/rast/internal/clip"
	"github.com/gogpu/rast/internal/raster"
)

// Context paints paths onto a PixelBuffer. It only holds configuration
// (fill rule, transform, color, opacity, operator, tolerance, clip) and runs the
// flatten, rasterize, resolve and paint stages once per call.
//
// A Context is not safe for concurrent use.
type Context struct {
	buf *PixelBuffer

	fillRule  FillRule
	matrix    Matrix
	color     RGBA8
	opacity   float64
	op        Op
	tolerance float64
	antiAlias bool

	clipStack *clip.Stack
	stack     []contextState
	rast      *raster.Rasterizer
}

// contextState is the configuration saved by Push.
type contextState struct {
	fillRule  FillRule
	matrix    Matrix
	color     RGBA8
	opacity   float64
	op        Op
	tolerance float64
	antiAlias bool
	clipDepth int
}

// NewContext creates a context drawing into buf.
func NewContext(buf *PixelBuffer, opts ...ContextOption) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Context{
		buf:       buf,
		fillRule:  o.fillRule,
		matrix:    o.transform,
		color:     o.color,
		opacity:   o.opacity,
		op:        o.op,
		tolerance: o.tolerance,
		antiAlias: o.antiAlias,
		clipStack: clip.NewStack(buf.Bounds()),
		rast:      raster.NewRasterizer(raster.WithClip(buf.Bounds()), raster.WithSubSamples(o.subSamples)),
	}
}

// Buffer returns the destination buffer.
func (c *Context) Buffer() *PixelBuffer {
	return c.buf
}

// SetFillRule sets the fill rule for later fills and clips.
func (c *Context) SetFillRule(rule FillRule) {
	c.fillRule = rule
}

// FillRule returns the current fill rule.
func (c *Context) FillRule() FillRule {
	return c.fillRule
}

// SetColor sets the paint color.
func (c *Context) SetColor(col RGBA8) {
	c.color = col
}

// Color returns the paint color.
func (c *Context) Color() RGBA8 {
	return c.color
}

// SetOpacity sets a multiplier in [0, 1] for the alpha of the paint
// color. Out-of-range values are clamped and NaN selects 1.
func (c *Context) SetOpacity(opacity float64) {
	c.opacity = clampOpacity(opacity)
}

// Opacity returns the opacity multiplier.
func (c *Context) Opacity() float64 {
	return c.opacity
}

// paintColor is the color with the opacity folded into its alpha.
func (c *Context) paintColor() RGBA8 {
	col := c.color
	if c.opacity < 1 {
		col.A = uint8(float64(col.A) * c.opacity)
	}
	return col
}

func clampOpacity(o float64) float64 {
	if o != o {
		return 1
	}
	return max(0, min(o, 1))
}

// SetOp sets the compositing operator.
func (c *Context) SetOp(op Op) {
	c.op = op
}

// Op returns the compositing operator.
func (c *Context) Op() Op {
	return c.op
}

// SetTolerance sets the flattening tolerance in device pixels.
func (c *Context) SetTolerance(tol float64) {
	c.tolerance = tol
}

// SetAntiAlias enables or disables anti-aliasing.
func (c *Context) SetAntiAlias(on bool) {
	c.antiAlias = on
}

// Identity resets the transformation matrix to identity.
func (c *Context) Identity() {
	c.matrix = Identity()
}

// Translate applies a translation to the current transform.
func (c *Context) Translate(x, y float64) {
	c.matrix = c.matrix.Multiply(Translate(x, y))
}

// Scale applies a scale to the current transform.
func (c *Context) Scale(x, y float64) {
	c.matrix = c.matrix.Multiply(Scale(x, y))
}

// Rotate applies a rotation (radians) to the current transform.
func (c *Context) Rotate(angle float64) {
	c.matrix = c.matrix.Multiply(Rotate(angle))
}

// Transform multiplies the current transform by m.
func (c *Context) Transform(m Matrix) {
	c.matrix = c.matrix.Multiply(m)
}

// SetTransform replaces the current transform.
func (c *Context) SetTransform(m Matrix) {
	c.matrix = m
}

// GetTransform returns the current transform.
func (c *Context) GetTransform() Matrix {
	return c.matrix
}

// Clear fills the whole buffer with col, ignoring the clip.
func (c *Context) Clear(col RGBA8) {
	c.buf.Clear(col)
}

// spans transforms p and resolves it under the current configuration.
func (c *Context) spans(p *Path) (Spans, error) {
	if !c.matrix.IsIdentity() {
		p = p.Transform(c.matrix)
	}
	mode := raster.AntiAlias
	if !c.antiAlias {
		mode = raster.Binary
	}
	return fill(c.rast, p, c.fillRule, c.tolerance, mode)
}

// Fill paints p with the current color and operator, inside the current
// clip.
func (c *Context) Fill(p *Path) error {
	spans, err := c.spans(p)
	if err != nil {
		return err
	}
	Paint(c.clipStack.Apply(spans), c.buf, c.paintColor(), c.op)
	return nil
}

// Clip intersects the clip region with p under the current fill rule
// and transform.
func (c *Context) Clip(p *Path) error {
	spans, err := c.spans(p)
	if err != nil {
		return err
	}
	c.clipStack.PushSpans(spans)
	return nil
}

// ClipRect intersects the clip region with a device-space rectangle.
func (c *Context) ClipRect(x, y, w, h int) {
	c.clipStack.PushRect(image.Rect(x, y, x+w, y+h))
}

// ResetClip removes every clip region, including those saved by Push.
func (c *Context) ResetClip() {
	c.clipStack.Reset(c.buf.Bounds())
}

// ClipCoverage returns the clip coverage (0-255) of pixel (x, y).
func (c *Context) ClipCoverage(x, y int) uint8 {
	return c.clipStack.Coverage(x, y)
}

// Push saves the current configuration and clip.
func (c *Context) Push() {
	c.stack = append(c.stack, contextState{
		fillRule:  c.fillRule,
		matrix:    c.matrix,
		color:     c.color,
		opacity:   c.opacity,
		op:        c.op,
		tolerance: c.tolerance,
		antiAlias: c.antiAlias,
		clipDepth: c.clipStack.Depth(),
	})
}

// Pop restores the last saved configuration and clip. It is a no-op
// without a matching Push.
func (c *Context) Pop() {
	if len(c.stack) == 0 {
		return
	}
	s := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]

	c.fillRule = s.fillRule
	c.matrix = s.matrix
	c.color = s.color
	c.opacity = s.opacity
	c.op = s.op
	c.tolerance = s.tolerance
	c.antiAlias = s.antiAlias

	// Pop clip stack entries until we reach the saved depth
	for c.clipStack.Depth() > s.clipDepth {
		c.clipStack.Pop()
	}
}
