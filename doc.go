// Package rast is a CPU rasterizer for 2D vector paths.
//
// # Overview
//
// rast turns paths made of lines and quadratic or cubic Bézier curves
// into anti-aliased coverage and composites a solid color into an RGBA
// pixel buffer. It has no GPU dependency and produces the same pixels on
// every platform.
//
// # Quick Start
//
//	import "github.com/gogpu/rast"
//
//	buf, _ := rast.NewPixelBuffer(256, 256)
//	dc := rast.NewContext(buf, rast.WithColor(rast.Red))
//
//	p := rast.NewPath().Circle(128, 128, 96)
//	if err := dc.Fill(p); err != nil {
//		log.Fatal(err)
//	}
//	buf.SavePNG("circle.png")
//
// Lower-level entry points are available when the Context is not wanted:
//
//	spans, err := rast.FillPath(p, rast.EvenOdd, 0)
//	rast.Paint(spans, buf, rast.Blue, rast.OpSrcOver)
//
// # Pipeline
//
// Every fill runs the same stages:
//   - Flatten: curves become line edges within a tolerance (internal/path)
//   - Scan convert: edges accumulate signed area and cover per cell (internal/raster)
//   - Resolve: the fill rule turns cells into coverage spans (internal/raster)
//   - Clip: span sets intersect with multiplied coverage (internal/clip)
//   - Paint: spans composite a premultiplied color (internal/blend)
//
// Coordinates are converted to 26.6 fixed point before scan conversion,
// so the output is a pure function of the input path.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Pixel (x, y) covers the square [x, x+1) × [y, y+1)
//
// # Interoperability
//
// FromShape and FromPathElements accept shapes from honnef.co/go/curve.
// FromGeomPath, PolygonFromVecs and MatrixFromGeom accept geometry from
// seehuhn.de/go/geom.
package rast

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
