// Package geogo provides an embedded spatial store for Go, built on an
// in-memory R*-tree.
//
// Geogo indexes points in a fixed D-dimensional coordinate space, each
// carrying a typed payload and an optional metadata document, and answers
// k-nearest-neighbor queries with declarative metadata filtering and
// per-axis distance scaling:
//
//   - R*-tree core: split-only overflow handling with the classic
//     overlap/margin/area split heuristic (package rstar)
//   - Type-safe payloads via generics: geogo.New[string](2)
//   - Metadata filtering with a Roaring Bitmap-based inverted index
//   - Fluent search API: Search(p).KNN(5).Filter(...).Execute(ctx)
//   - Structured logging (log/slog) and pluggable metrics collection
//
// # Quick Start
//
// Create a store for 2-dimensional points with string payloads:
//
//	ctx := context.Background()
//	db, err := geogo.New[string](2)
//	if err != nil {
//	    panic(err)
//	}
//
// Insert points with metadata:
//
//	id, err := db.Insert(ctx, geogo.PointWithData[string]{
//	    Point: []float64{13.40, 52.52},
//	    Data:  "Berlin",
//	    Metadata: metadata.Document{
//	        "country": "DE",
//	        "capital": true,
//	    },
//	})
//
// Search with the fluent API:
//
//	results, err := db.Search([]float64{8.68, 50.11}).
//	    KNN(3).
//	    Filter(metadata.Eq("country", "DE")).
//	    Execute(ctx)
//
// # Concurrency
//
// The underlying tree contains no internal synchronization. A mutex inside
// the store serializes writes, and reads are safe to run concurrently with
// each other, but not with writes. BatchSearch fans read-only queries out
// across goroutines under that contract.
package geogo
