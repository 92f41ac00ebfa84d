package rast

import (
	"context"
	"errors"
	"testing"
)

func TestBatchFillPathsMatchesFillPath(t *testing.T) {
	b := NewBatch(3)
	defer b.Close()

	paths := make([]*Path, 12)
	for i := range paths {
		paths[i] = NewPath().RegularPolygon(3+i, 16, 16, 4+float64(i), float64(i)*0.1)
	}

	got, err := b.FillPaths(context.Background(), paths, EvenOdd, 0)
	if err != nil {
		t.Fatalf("FillPaths() = %v", err)
	}
	if len(got) != len(paths) {
		t.Fatalf("len(FillPaths()) = %d, want %d", len(got), len(paths))
	}
	for i, p := range paths {
		want := mustFill(t, p, EvenOdd)
		if len(got[i]) != len(want) {
			t.Fatalf("path %d: %d spans, want %d", i, len(got[i]), len(want))
		}
		for j := range want {
			if got[i][j] != want[j] {
				t.Fatalf("path %d span %d = %v, want %v", i, j, got[i][j], want[j])
			}
		}
	}
}

func TestBatchFillPathsError(t *testing.T) {
	b := NewBatch(2)
	defer b.Close()

	paths := []*Path{
		NewPath().Rect(0, 0, 2, 2),
		PathFromRaw([]Verb{CubicToVerb}, []Point{Pt(1, 1)}),
		nil,
	}
	_, err := b.FillPaths(context.Background(), paths, NonZero, 0)
	if !errors.Is(err, ErrMalformedPath) {
		t.Errorf("FillPaths() = %v, want ErrMalformedPath", err)
	}
}

func TestBatchFillPathsCanceled(t *testing.T) {
	b := NewBatch(1)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	paths := make([]*Path, 64)
	for i := range paths {
		paths[i] = NewPath().Rect(0, 0, 1, 1)
	}
	if _, err := b.FillPaths(ctx, paths, NonZero, 0); !errors.Is(err, context.Canceled) {
		t.Errorf("FillPaths() = %v, want context.Canceled", err)
	}
}
