// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clip

import (
	"image"
	"slices"
	"testing"

	"github.com/gogpu/rast/internal/raster"
)

func TestStackPushRect(t *testing.T) {
	cs := NewStack(image.Rect(0, 0, 100, 100))
	cs.PushRect(image.Rect(10, 10, 50, 50))
	cs.PushRect(image.Rect(30, 0, 200, 40))

	if got, want := cs.Bounds(), image.Rect(30, 10, 50, 40); got != want {
		t.Errorf("Bounds = %v, want %v", got, want)
	}
	if cs.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", cs.Depth())
	}
	if cs.Coverage(35, 20) != 255 || cs.Coverage(20, 20) != 0 {
		t.Error("unexpected rectangle coverage")
	}

	cs.Pop()
	if got, want := cs.Bounds(), image.Rect(10, 10, 50, 50); got != want {
		t.Errorf("after Pop Bounds = %v, want %v", got, want)
	}
}

func TestStackPushSpans(t *testing.T) {
	cs := NewStack(image.Rect(0, 0, 10, 10))
	cs.PushSpans([]raster.Span{span(1, 0, 20, 255), span(2, 2, 4, 128)})

	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 1, 255},
		{9, 1, 255},
		{10, 1, 0},
		{3, 2, 128},
		{1, 2, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := cs.Coverage(tt.x, tt.y); got != tt.want {
			t.Errorf("Coverage(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}

	cs.PushSpans([]raster.Span{span(2, 0, 10, 128)})
	if got := cs.Coverage(3, 2); got != 64 {
		t.Errorf("nested coverage = %d, want 64", got)
	}
	if got := cs.Coverage(0, 1); got != 0 {
		t.Errorf("row dropped by nested clip = %d, want 0", got)
	}

	got := cs.Apply([]raster.Span{span(2, 0, 10, 255), span(5, 0, 10, 255)})
	want := []raster.Span{span(2, 2, 4, 64)}
	if !slices.Equal(got, want) {
		t.Errorf("Apply = %+v, want %+v", got, want)
	}

	cs.Pop()
	cs.Pop()
	if cs.Depth() != 0 || cs.Coverage(0, 0) != 255 {
		t.Error("Pop did not restore the unclipped state")
	}
	cs.Pop() // no-op on empty stack
}

func TestStackReset(t *testing.T) {
	cs := NewStack(image.Rect(0, 0, 10, 10))
	cs.PushRect(image.Rect(0, 0, 2, 2))
	cs.PushSpans([]raster.Span{span(0, 0, 1, 255)})
	cs.Reset(image.Rect(0, 0, 4, 4))

	if cs.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", cs.Depth())
	}
	if cs.Coverage(3, 3) != 255 {
		t.Error("Reset kept the old clip")
	}
	got := cs.Apply([]raster.Span{span(1, 0, 10, 200)})
	if want := []raster.Span{span(1, 0, 4, 200)}; !slices.Equal(got, want) {
		t.Errorf("Apply = %+v, want %+v", got, want)
	}
}
