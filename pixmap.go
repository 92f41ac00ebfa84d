package rast

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/rast/internal/blend"
)

// PixelBuffer is a premultiplied RGBA8 pixel buffer, 4 bytes per pixel.
// Row y starts at Pix[y*Stride]. Painting never writes outside
// [0, Width) x [0, Height).
type PixelBuffer struct {
	Width, Height int
	Stride        int
	Pix           []byte
}

// NewPixelBuffer creates a transparent buffer with the given dimensions.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Stride: width * 4,
		Pix:    make([]byte, width*height*4),
	}, nil
}

// FromImage copies img into a new buffer.
func FromImage(img image.Image) (*PixelBuffer, error) {
	b := img.Bounds()
	buf, err := NewPixelBuffer(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			i := y*buf.Stride + x*4
			buf.Pix[i+0], buf.Pix[i+1], buf.Pix[i+2], buf.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return buf, nil
}

// Bounds returns the buffer rectangle.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// row returns the bytes of pixels [x0, x1) on row y, cut to what Stride
// and Pix actually hold. It returns nil when nothing of the range is
// addressable, so a hand-built buffer with a short Pix is never indexed
// past its end.
func (p *PixelBuffer) row(y, x0, x1 int) []byte {
	x1 = min(x1, p.Stride/4)
	if y < 0 || x0 < 0 || x0 >= x1 {
		return nil
	}
	off := y * p.Stride
	if off+x1*4 > len(p.Pix) {
		return nil
	}
	return p.Pix[off+x0*4 : off+x1*4]
}

// Clear fills the whole buffer with c.
func (p *PixelBuffer) Clear(c RGBA8) {
	r, g, b, a := c.Premultiply()
	for y := 0; y < p.Height; y++ {
		row := p.row(y, 0, p.Width)
		for i := 0; i < len(row); i += 4 {
			row[i+0], row[i+1], row[i+2], row[i+3] = r, g, b, a
		}
	}
}

// PremultipliedAt returns the stored premultiplied pixel at (x, y), or
// transparent black outside the buffer.
func (p *PixelBuffer) PremultipliedAt(x, y int) color.RGBA {
	px := p.row(y, x, x+1)
	if x >= p.Width || y >= p.Height || px == nil {
		return color.RGBA{}
	}
	return color.RGBA{R: px[0], G: px[1], B: px[2], A: px[3]}
}

// At returns the straight-alpha color at (x, y), or Transparent outside
// the buffer.
func (p *PixelBuffer) At(x, y int) RGBA8 {
	c := p.PremultipliedAt(x, y)
	r, g, b, a := blend.Unpremultiply(c.R, c.G, c.B, c.A)
	return RGBA8{R: r, G: g, B: b, A: a}
}

// ToImage returns the buffer as an *image.RGBA, which shares the
// premultiplied layout. The pixels are copied.
func (p *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(p.Bounds())
	for y := 0; y < p.Height; y++ {
		copy(img.Pix[y*img.Stride:(y+1)*img.Stride], p.row(y, 0, p.Width))
	}
	return img
}

// EncodePNG writes the buffer to w as PNG.
func (p *PixelBuffer) EncodePNG(w io.Writer) error {
	return png.Encode(w, p.ToImage())
}

// SavePNG saves the buffer to a PNG file.
func (p *PixelBuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := p.EncodePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("rast: encode %s: %w", path, err)
	}
	return f.Close()
}
