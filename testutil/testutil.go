package testutil

import (
	"math/rand"
	"sort"
)

// GroundTruthResult represents one brute-force reference hit.
type GroundTruthResult struct {
	Index    int
	Distance float64
}

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	return r.rand.Float64()
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// UniformPoints generates num random points with coordinates in
// [minVal, maxVal).
func (r *RNG) UniformPoints(num, dims int, minVal, maxVal float64) [][]float64 {
	span := maxVal - minVal
	points := make([][]float64, num)
	for i := range points {
		p := make([]float64, dims)
		for j := range p {
			p[j] = minVal + r.rand.Float64()*span
		}
		points[i] = p
	}
	return points
}

// GridPoints generates the integer grid [0,side) x [0,side) as 2D points in
// row-major order.
func GridPoints(side int) [][]float64 {
	points := make([][]float64, 0, side*side)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			points = append(points, []float64{float64(x), float64(y)})
		}
	}
	return points
}

// BruteForceKNN returns the index and distance of the k points nearest to
// query under the scaled squared Euclidean distance, ascending, restricted to points
// whose index passes filter. A nil scale means unit scale; a nil filter
// admits everything. The sort is stable so tied distances keep input order.
func BruteForceKNN(points [][]float64, query []float64, k int, scale []float64, filter func(i int) bool) []GroundTruthResult {
	results := make([]GroundTruthResult, 0, len(points))
	for i, p := range points {
		if filter != nil && !filter(i) {
			continue
		}
		distSq := 0.0
		for j := range query {
			diff := query[j] - p[j]
			if scale != nil {
				diff *= scale[j]
			}
			distSq += diff * diff
		}
		results = append(results, GroundTruthResult{Index: i, Distance: distSq})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Distance < results[b].Distance
	})

	if k < len(results) {
		results = results[:k]
	}
	return results
}
