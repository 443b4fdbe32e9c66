package geogo

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/geogo/metadata"
)

// SearchResult represents a single search hit, nearest first.
type SearchResult[T any] struct {
	// ID is the id assigned by Insert.
	ID uint32

	// Distance is the scaled squared Euclidean distance between the query
	// point and the hit.
	Distance float64

	// Data is the stored payload.
	Data T

	// Metadata is the stored metadata document, if any.
	Metadata metadata.Document
}

// SearchRequest is an immutable fluent builder for a k-nearest-neighbor
// query. Each method returns a copy with the updated configuration.
type SearchRequest[T any] struct {
	g          *Geogo[T]
	point      []float64
	k          int
	scale      []float64
	filterSet  *metadata.FilterSet
	filterFunc func(T) bool
}

// Search starts a query for the nearest neighbors of point.
//
// Example:
//
//	results, err := db.Search(p).
//	    KNN(5).
//	    Filter(metadata.Eq("country", "DE")).
//	    Execute(ctx)
func (g *Geogo[T]) Search(point []float64) SearchRequest[T] {
	return SearchRequest[T]{g: g, point: point, k: 1}
}

// KNN sets the number of nearest neighbors to return. Default: 1.
func (r SearchRequest[T]) KNN(k int) SearchRequest[T] {
	r.k = k
	return r
}

// Scale sets per-axis distance scale factors. The slice must have one
// positive finite component per dimension. Default: unit scale.
func (r SearchRequest[T]) Scale(scale []float64) SearchRequest[T] {
	r.scale = scale
	return r
}

// Filter restricts results to items whose metadata matches all given
// filters. Equality and membership filters are served from the inverted
// index; other operators evaluate against the documents.
func (r SearchRequest[T]) Filter(filters ...metadata.Filter) SearchRequest[T] {
	r.filterSet = metadata.And(filters...)
	return r
}

// FilterFunc restricts results to items whose payload satisfies fn. It
// composes conjunctively with Filter.
func (r SearchRequest[T]) FilterFunc(fn func(T) bool) SearchRequest[T] {
	r.filterFunc = fn
	return r
}

// Execute runs the query and returns up to k results ordered by ascending
// distance.
func (r SearchRequest[T]) Execute(ctx context.Context) ([]SearchResult[T], error) {
	start := time.Now()
	results, err := r.execute(ctx)
	r.g.metrics.RecordSearch(r.k, time.Since(start), err)
	r.g.logger.LogSearch(ctx, r.k, len(results), err)
	return results, err
}

func (r SearchRequest[T]) execute(ctx context.Context) ([]SearchResult[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.point == nil {
		return nil, ErrNilPoint
	}

	filter := r.compileFilter()

	hits, err := r.g.tree.Search(r.point, r.k, filter, r.scale)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult[T], len(hits))
	for i, hit := range hits {
		rec := r.g.records[hit.Value]
		results[i] = SearchResult[T]{
			ID:       hit.Value,
			Distance: hit.Distance,
			Data:     rec.data,
			Metadata: rec.doc,
		}
	}
	return results, nil
}

// compileFilter folds the declarative filter set and the payload predicate
// into a single id-predicate for the tree traversal. Returns nil when the
// query is unfiltered.
func (r SearchRequest[T]) compileFilter() func(uint32) bool {
	if r.filterSet == nil && r.filterFunc == nil {
		return nil
	}

	var compiled func(uint32) bool
	if r.filterSet != nil {
		compiled, _ = r.g.midx.Compile(r.filterSet)
	}

	return func(id uint32) bool {
		rec := r.g.records[id]
		if r.filterSet != nil {
			if compiled != nil {
				if !compiled(id) {
					return false
				}
			} else if !r.filterSet.Matches(rec.doc) {
				return false
			}
		}
		if r.filterFunc != nil && !r.filterFunc(rec.data) {
			return false
		}
		return true
	}
}

// BatchSearch executes multiple search requests concurrently and returns
// the per-request result slices in order. All requests must target this
// store. No writes may run while a batch search is in flight.
func (g *Geogo[T]) BatchSearch(ctx context.Context, requests []SearchRequest[T]) ([][]SearchResult[T], error) {
	results := make([][]SearchResult[T], len(requests))

	eg, ctx := errgroup.WithContext(ctx)
	for i, req := range requests {
		eg.Go(func() error {
			res, err := req.Execute(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
