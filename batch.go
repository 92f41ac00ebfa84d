// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rast

import (
	"context"
	"fmt"

	"github.com/gogpu/rast/internal/parallel"
	"github.com/gogpu/rast/internal/raster"
)

// Batch resolves many paths concurrently. Each worker owns its own
// rasterizer, and the result for every path equals what FillPath returns
// for it.
type Batch struct {
	pool  *parallel.WorkerPool
	rasts chan *raster.Rasterizer
}

// NewBatch creates a batch resolver with the given number of workers
// (GOMAXPROCS when non-positive). Close releases its goroutines.
func NewBatch(workers int) *Batch {
	pool := parallel.NewWorkerPool(workers)
	rasts := make(chan *raster.Rasterizer, pool.Workers())
	for range pool.Workers() {
		rasts <- raster.NewRasterizer()
	}
	return &Batch{pool: pool, rasts: rasts}
}

// FillPaths resolves every path under rule and returns the spans in
// input order. The first malformed path, by index, fails the whole call.
func (b *Batch) FillPaths(ctx context.Context, paths []*Path, rule FillRule, tolerance float64) ([]Spans, error) {
	out := make([]Spans, len(paths))
	err := b.pool.Map(ctx, len(paths), func(i int) error {
		r := <-b.rasts
		defer func() { b.rasts <- r }()

		spans, err := fill(r, paths[i], rule, tolerance, raster.AntiAlias)
		if err != nil {
			return fmt.Errorf("path %d: %w", i, err)
		}
		out[i] = spans
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Close stops the workers.
func (b *Batch) Close() {
	b.pool.Close()
}
