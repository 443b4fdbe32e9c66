package geogo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geogo/metadata"
	"github.com/hupe1980/geogo/rstar"
)

type city struct {
	name string
	pop  int
}

func newCityStore(t *testing.T) *Geogo[city] {
	t.Helper()
	db, err := New[city](2, WithInternalCapacity(4))
	require.NoError(t, err)

	cities := []PointWithData[city]{
		{Point: []float64{13.40, 52.52}, Data: city{"Berlin", 3_600_000}, Metadata: metadata.Document{"country": "DE", "capital": true}},
		{Point: []float64{8.68, 50.11}, Data: city{"Frankfurt", 750_000}, Metadata: metadata.Document{"country": "DE", "capital": false}},
		{Point: []float64{2.35, 48.85}, Data: city{"Paris", 2_100_000}, Metadata: metadata.Document{"country": "FR", "capital": true}},
		{Point: []float64{4.90, 52.37}, Data: city{"Amsterdam", 900_000}, Metadata: metadata.Document{"country": "NL", "capital": true}},
		{Point: []float64{11.58, 48.14}, Data: city{"Munich", 1_500_000}, Metadata: metadata.Document{"country": "DE", "capital": false}},
		{Point: []float64{16.37, 48.21}, Data: city{"Vienna", 1_900_000}, Metadata: metadata.Document{"country": "AT", "capital": true}},
	}
	for _, c := range cities {
		_, err := db.Insert(context.Background(), c)
		require.NoError(t, err)
	}
	return db
}

func TestNew(t *testing.T) {
	t.Run("InvalidDimension", func(t *testing.T) {
		_, err := New[string](0)
		var derr *rstar.ErrInvalidDimension
		require.ErrorAs(t, err, &derr)
	})

	t.Run("InvalidCapacity", func(t *testing.T) {
		_, err := New[string](2, WithInternalCapacity(1))
		var cerr *rstar.ErrInvalidCapacity
		require.ErrorAs(t, err, &cerr)
	})
}

func TestInsertAndGet(t *testing.T) {
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		db, err := New[string](2)
		require.NoError(t, err)

		id, err := db.Insert(ctx, PointWithData[string]{
			Point:    []float64{1, 2},
			Data:     "first",
			Metadata: metadata.Document{"kind": "test"},
		})
		require.NoError(t, err)
		assert.Equal(t, uint32(0), id)
		assert.Equal(t, 1, db.Len())

		item, err := db.Get(id)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, item.Point)
		assert.Equal(t, "first", item.Data)
		assert.Equal(t, metadata.Document{"kind": "test"}, item.Metadata)
	})

	t.Run("GetUnknown", func(t *testing.T) {
		db, err := New[string](2)
		require.NoError(t, err)

		_, err = db.Get(7)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("NilPoint", func(t *testing.T) {
		db, err := New[string](2)
		require.NoError(t, err)

		_, err = db.Insert(ctx, PointWithData[string]{Data: "nothing"})
		assert.ErrorIs(t, err, ErrNilPoint)
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		db, err := New[string](2)
		require.NoError(t, err)

		_, err = db.Insert(ctx, PointWithData[string]{Point: []float64{1}, Data: "short"})
		var derr *rstar.ErrDimensionMismatch
		assert.ErrorAs(t, err, &derr)
	})

	t.Run("InsertCopiesPoint", func(t *testing.T) {
		db, err := New[string](2)
		require.NoError(t, err)

		p := []float64{1, 1}
		id, err := db.Insert(ctx, PointWithData[string]{Point: p, Data: "a"})
		require.NoError(t, err)

		p[0] = 99
		item, err := db.Get(id)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 1}, item.Point)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		db, err := New[string](2)
		require.NoError(t, err)

		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err = db.Insert(canceled, PointWithData[string]{Point: []float64{1, 1}, Data: "x"})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBatchInsert(t *testing.T) {
	db, err := New[string](2)
	require.NoError(t, err)

	result := db.BatchInsert(context.Background(), []PointWithData[string]{
		{Point: []float64{0, 0}, Data: "ok"},
		{Point: []float64{1}, Data: "bad dimension"},
		{Point: []float64{2, 2}, Data: "ok too"},
	})

	require.Len(t, result.IDs, 3)
	require.Len(t, result.Errors, 3)
	assert.NoError(t, result.Errors[0])
	assert.Error(t, result.Errors[1])
	assert.NoError(t, result.Errors[2])
	assert.Equal(t, 2, db.Len())
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	db := newCityStore(t)

	t.Run("NearestNeighbors", func(t *testing.T) {
		// Nearest to Nuremberg: Munich, then Frankfurt.
		results, err := db.Search([]float64{11.08, 49.45}).KNN(2).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Munich", results[0].Data.name)
		assert.Equal(t, "Frankfurt", results[1].Data.name)
		assert.Less(t, results[0].Distance, results[1].Distance)
	})

	t.Run("DefaultK", func(t *testing.T) {
		results, err := db.Search([]float64{13, 52}).Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Berlin", results[0].Data.name)
	})

	t.Run("IndexedFilter", func(t *testing.T) {
		results, err := db.Search([]float64{11.08, 49.45}).
			KNN(3).
			Filter(metadata.Eq("country", "DE")).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, r := range results {
			assert.Equal(t, "DE", r.Metadata["country"])
		}
	})

	t.Run("FallbackFilter", func(t *testing.T) {
		// Ne cannot compile through the inverted index, so the whole set
		// evaluates against the documents.
		results, err := db.Search([]float64{11.08, 49.45}).
			KNN(10).
			Filter(metadata.Eq("capital", true), metadata.Ne("country", "FR")).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, r := range results {
			assert.NotEqual(t, "Paris", r.Data.name)
			assert.Equal(t, true, r.Metadata["capital"])
		}
	})

	t.Run("FilterFunc", func(t *testing.T) {
		results, err := db.Search([]float64{11.08, 49.45}).
			KNN(10).
			FilterFunc(func(c city) bool { return c.pop > 2_000_000 }).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.ElementsMatch(t,
			[]string{"Berlin", "Paris"},
			[]string{results[0].Data.name, results[1].Data.name},
		)
	})

	t.Run("CombinedFilters", func(t *testing.T) {
		results, err := db.Search([]float64{11.08, 49.45}).
			KNN(10).
			Filter(metadata.Eq("capital", true)).
			FilterFunc(func(c city) bool { return c.pop < 2_000_000 }).
			Execute(ctx)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.ElementsMatch(t,
			[]string{"Amsterdam", "Vienna"},
			[]string{results[0].Data.name, results[1].Data.name},
		)
	})

	t.Run("Scale", func(t *testing.T) {
		// Down-weighting longitude makes latitude dominate: Frankfurt
		// sits almost exactly on the query parallel.
		unscaled, err := db.Search([]float64{16, 50}).KNN(1).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Vienna", unscaled[0].Data.name)

		scaled, err := db.Search([]float64{16, 50}).KNN(1).Scale([]float64{0.01, 1}).Execute(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Frankfurt", scaled[0].Data.name)
	})

	t.Run("KZero", func(t *testing.T) {
		results, err := db.Search([]float64{0, 0}).KNN(0).Execute(ctx)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("NilPoint", func(t *testing.T) {
		_, err := db.Search(nil).KNN(1).Execute(ctx)
		assert.ErrorIs(t, err, ErrNilPoint)
	})
}

func TestBatchSearch(t *testing.T) {
	ctx := context.Background()
	db := newCityStore(t)

	requests := []SearchRequest[city]{
		db.Search([]float64{13, 52}).KNN(1),
		db.Search([]float64{2.5, 48.9}).KNN(1),
		db.Search([]float64{11.08, 49.45}).KNN(2),
	}

	results, err := db.BatchSearch(ctx, requests)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Berlin", results[0][0].Data.name)
	assert.Equal(t, "Paris", results[1][0].Data.name)
	assert.Len(t, results[2], 2)
}

func TestStatsAndMetrics(t *testing.T) {
	ctx := context.Background()
	collector := &BasicMetricsCollector{}

	db, err := New[string](2, WithMetrics(collector), WithLogger(NoopLogger()))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := db.Insert(ctx, PointWithData[string]{Point: []float64{float64(i), 0}, Data: "p"})
		require.NoError(t, err)
	}
	_, err = db.Search([]float64{0, 0}).KNN(3).Execute(ctx)
	require.NoError(t, err)

	stats := db.Stats()
	assert.Equal(t, 5, stats.Count)
	assert.Equal(t, 2, stats.Dimension)
	assert.GreaterOrEqual(t, stats.Height, 1)

	ms := collector.GetStats()
	assert.Equal(t, int64(5), ms.InsertCount)
	assert.Equal(t, int64(0), ms.InsertErrors)
	assert.Equal(t, int64(1), ms.SearchCount)
}
