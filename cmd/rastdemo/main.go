// Command rastdemo renders sample scenes with the rast rasterizer.
package main

import (
	"context"
	"flag"
	"image"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	xdraw "golang.org/x/image/draw"
	"honnef.co/go/curve"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/rast"
)

func main() {
	var (
		width   = flag.Int("width", 400, "image width")
		height  = flag.Int("height", 300, "image height")
		output  = flag.String("output", "demo.png", "output file")
		scale   = flag.Int("scale", 1, "nearest-neighbour magnification of the output")
		rule    = flag.String("rule", "nonzero", "fill rule: nonzero or evenodd")
		op      = flag.String("op", "src-over", "compositing operator: src-over, src, dst-in, dst-out")
		aa      = flag.Bool("aa", true, "anti-aliasing")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		rast.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	fillRule, err := rast.ParseFillRule(*rule)
	if err != nil {
		log.Fatal(err)
	}
	compOp, err := rast.ParseOp(*op)
	if err != nil {
		log.Fatal(err)
	}

	buf, err := rast.NewPixelBuffer(*width, *height)
	if err != nil {
		log.Fatal(err)
	}
	dc := rast.NewContext(buf,
		rast.WithFillRule(fillRule),
		rast.WithAntiAlias(*aa),
	)
	dc.Clear(rast.RGB(24, 32, 48))

	steps := []func(*rast.Context, rast.Op) error{
		drawShapesDemo,
		drawTransformDemo,
		drawPathDemo,
		drawClipDemo,
		drawBatchDemo,
	}
	for _, step := range steps {
		if err := step(dc, compOp); err != nil {
			log.Fatalf("render: %v", err)
		}
	}

	if err := save(buf, *output, *scale); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, x%d)\n", *output, *width, *height, *scale)
}

func save(buf *rast.PixelBuffer, path string, scale int) error {
	if scale <= 1 {
		return buf.SavePNG(path)
	}
	src := buf.ToImage()
	dst := image.NewRGBA(image.Rect(0, 0, buf.Width*scale, buf.Height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func drawShapesDemo(dc *rast.Context, op rast.Op) error {
	dc.Push()
	defer dc.Pop()
	dc.SetOp(op)

	circles := []struct {
		x, y float64
		c    rast.RGBA8
	}{
		{70, 70, rast.RGBA8{R: 255, G: 80, B: 80, A: 200}},
		{100, 70, rast.RGBA8{R: 80, G: 255, B: 80, A: 200}},
		{85, 95, rast.RGBA8{R: 80, G: 80, B: 255, A: 200}},
	}
	for _, c := range circles {
		dc.SetColor(c.c)
		if err := dc.Fill(rast.NewPath().Circle(c.x, c.y, 30)); err != nil {
			return err
		}
	}

	dc.SetColor(rast.RGB(255, 200, 0))
	return dc.Fill(rast.PolygonFromVecs([]vec.Vec2{
		{X: 160, Y: 40}, {X: 230, Y: 40}, {X: 230, Y: 90}, {X: 160, Y: 90},
	}))
}

func drawTransformDemo(dc *rast.Context, _ rast.Op) error {
	// Eight squares hang off one rotating root node.
	tree := rast.NewTransformTree()
	root, err := tree.Add(rast.NoParent, rast.MatrixFromGeom(matrix.Matrix{1, 0, 0, 1, 320, 70}))
	if err != nil {
		return err
	}

	square := rast.NewPath().Rect(-12, -12, 24, 24)
	for i := range 8 {
		angle := float64(i) * math.Pi / 4
		node, err := tree.Add(root, rast.Rotate(angle).Multiply(rast.Translate(40, 0)))
		if err != nil {
			return err
		}
		world, err := tree.World(node)
		if err != nil {
			return err
		}

		dc.Push()
		dc.SetTransform(world)
		dc.SetColor(rast.RGBA8{R: uint8(80 + i*20), G: uint8(200 - i*15), B: 220, A: 230})
		err = dc.Fill(square)
		dc.Pop()
		if err != nil {
			return err
		}
	}
	return nil
}

func drawPathDemo(dc *rast.Context, _ rast.Op) error {
	dc.Push()
	defer dc.Pop()
	dc.Translate(60, 200)

	// A wave band built from curve path elements.
	pt := func(x, y float64) curve.Point { return curve.Point{X: x, Y: y} }
	wave := rast.FromPathElements(func(yield func(curve.PathElement) bool) {
		els := []curve.PathElement{
			{Kind: curve.MoveToKind, P0: pt(0, 0)},
			{Kind: curve.CubicToKind, P0: pt(40, -40), P1: pt(80, 40), P2: pt(120, 0)},
			{Kind: curve.QuadToKind, P0: pt(140, -20), P1: pt(160, 0)},
			{Kind: curve.LineToKind, P0: pt(160, 16)},
			{Kind: curve.CubicToKind, P0: pt(80, 56), P1: pt(40, -24), P2: pt(0, 16)},
			{Kind: curve.ClosePathKind},
		}
		for _, el := range els {
			if !yield(el) {
				return
			}
		}
	})
	dc.SetColor(rast.RGB(255, 128, 0))
	if err := dc.Fill(wave); err != nil {
		return err
	}

	// A self-intersecting star shows the fill rule.
	star := rast.NewPath()
	for i := range 5 {
		a := float64(i)*4*math.Pi/5 - math.Pi/2
		x, y := 230+50*math.Cos(a), 10+50*math.Sin(a)
		if i == 0 {
			star.MoveTo(x, y)
		} else {
			star.LineTo(x, y)
		}
	}
	star.ClosePath()
	dc.SetColor(rast.RGB(255, 255, 0))
	return dc.Fill(star)
}

func drawClipDemo(dc *rast.Context, _ rast.Op) error {
	dc.Push()
	defer dc.Pop()

	if err := dc.Clip(rast.NewPath().Circle(340, 220, 40)); err != nil {
		return err
	}
	for i := range 8 {
		dc.SetColor(rast.RGBA8{R: uint8(i * 32), G: 160, B: uint8(255 - i*32), A: 255})
		if err := dc.Fill(rast.NewPath().Rect(300+float64(i)*10, 180, 10, 80)); err != nil {
			return err
		}
	}
	return nil
}

func drawBatchDemo(dc *rast.Context, _ rast.Op) error {
	b := rast.NewBatch(0)
	defer b.Close()

	paths := make([]*rast.Path, 6)
	for i := range paths {
		paths[i] = rast.NewPath().RegularPolygon(3+i, 30+float64(i)*60, 270, 20, 0)
	}
	sets, err := b.FillPaths(context.Background(), paths, dc.FillRule(), 0)
	if err != nil {
		return err
	}
	for _, spans := range sets {
		rast.Paint(spans, dc.Buffer(), rast.RGBA8{R: 230, G: 230, B: 230, A: 180}, rast.OpSrcOver)
	}
	return nil
}
