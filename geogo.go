package geogo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/geogo/metadata"
	"github.com/hupe1980/geogo/rstar"
)

// PointWithData represents a point with its payload and optional metadata.
type PointWithData[T any] struct {
	// Point is the coordinate vector; its length must match the store
	// dimension.
	Point []float64

	// Data is the payload returned from searches.
	Data T

	// Metadata is an optional document for declarative filtering.
	Metadata metadata.Document
}

// BatchInsertResult contains the ids and per-item errors of a BatchInsert.
type BatchInsertResult struct {
	IDs    []uint32
	Errors []error
}

// Stats is a snapshot of the store shape.
type Stats struct {
	Count     int
	Height    int
	Dimension int
}

type record[T any] struct {
	point []float64
	data  T
	doc   metadata.Document
}

// Geogo is a spatial store with support for metadata filtering. Writes are
// serialized by an internal mutex; reads may run concurrently with each
// other but not with writes.
type Geogo[T any] struct {
	writeMu   sync.Mutex
	dimension int
	tree      *rstar.Tree[uint32]
	records   []record[T]
	midx      *metadata.InvertedIndex
	logger    *Logger
	metrics   MetricsCollector
}

// New creates a new store for points with the given dimensionality.
func New[T any](dimension int, optFns ...Option) (*Geogo[T], error) {
	opts := options{
		internalCapacity: rstar.DefaultOptions.InternalCapacity,
		leafCapacity:     rstar.DefaultOptions.LeafCapacity,
		logger:           NoopLogger(),
		metrics:          NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	tree, err := rstar.New[uint32](dimension, func(o *rstar.Options) {
		o.InternalCapacity = opts.internalCapacity
		o.LeafCapacity = opts.leafCapacity
	})
	if err != nil {
		return nil, fmt.Errorf("geogo: %w", err)
	}

	return &Geogo[T]{
		dimension: dimension,
		tree:      tree,
		midx:      metadata.NewInvertedIndex(),
		logger:    opts.logger,
		metrics:   opts.metrics,
	}, nil
}

// Dimension returns the dimensionality of the indexed points.
func (g *Geogo[T]) Dimension() int { return g.dimension }

// Len returns the number of stored items.
func (g *Geogo[T]) Len() int {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()
	return len(g.records)
}

// Stats returns a snapshot of the store shape.
func (g *Geogo[T]) Stats() Stats {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()
	return Stats{
		Count:     g.tree.Len(),
		Height:    g.tree.Height(),
		Dimension: g.dimension,
	}
}

// Insert adds a point with its payload and metadata, returning the assigned
// id.
func (g *Geogo[T]) Insert(ctx context.Context, item PointWithData[T]) (uint32, error) {
	start := time.Now()
	id, err := g.insert(ctx, item)
	g.metrics.RecordInsert(time.Since(start), err)
	g.logger.LogInsert(ctx, id, len(item.Point), err)
	return id, err
}

func (g *Geogo[T]) insert(ctx context.Context, item PointWithData[T]) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if item.Point == nil {
		return 0, ErrNilPoint
	}

	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	id := uint32(len(g.records))
	if err := g.tree.Insert(item.Point, id); err != nil {
		return 0, err
	}

	point := make([]float64, len(item.Point))
	copy(point, item.Point)
	g.records = append(g.records, record[T]{point: point, data: item.Data, doc: item.Metadata})
	g.midx.Add(id, item.Metadata)
	return id, nil
}

// BatchInsert inserts multiple items in one call, returning ids and
// per-item errors.
func (g *Geogo[T]) BatchInsert(ctx context.Context, items []PointWithData[T]) BatchInsertResult {
	start := time.Now()
	result := BatchInsertResult{
		IDs:    make([]uint32, len(items)),
		Errors: make([]error, len(items)),
	}

	failed := 0
	for i, item := range items {
		id, err := g.insert(ctx, item)
		result.IDs[i] = id
		result.Errors[i] = err
		if err != nil {
			failed++
		}
	}

	g.metrics.RecordBatchInsert(len(items), failed, time.Since(start))
	g.logger.LogBatchInsert(ctx, len(items), failed)
	return result
}

// Get returns the stored item for the given id.
func (g *Geogo[T]) Get(id uint32) (PointWithData[T], error) {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	if int(id) >= len(g.records) {
		return PointWithData[T]{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	rec := g.records[id]

	point := make([]float64, len(rec.point))
	copy(point, rec.point)
	return PointWithData[T]{Point: point, Data: rec.data, Metadata: rec.doc}, nil
}
