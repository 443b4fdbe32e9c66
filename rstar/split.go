package rstar

import (
	"math"
	"sort"
)

// splitEntry pairs a region with a payload while an overflowing node is
// repartitioned. The payload is a stored value for leaves and a child
// pointer for internal nodes; the split heuristic never inspects it.
type splitEntry[P any] struct {
	region  MBR
	payload P
}

// splitTracker tracks the best split seen so far, minimized
// lexicographically over (overlap, margin, area).
type splitTracker struct {
	axis     int
	location int

	overlap float64
	margin  float64
	area    float64
}

func newSplitTracker() splitTracker {
	return splitTracker{
		overlap: math.Inf(1),
		margin:  math.Inf(1),
		area:    math.Inf(1),
	}
}

func (t *splitTracker) update(axis, location int, overlap, margin, area float64) {
	t.axis = axis
	t.location = location
	t.overlap = overlap
	t.margin = margin
	t.area = area
}

// findBestSplit chooses the split axis and position for an overflowing set
// of entries. For each axis the entries are sorted ascending by region min;
// every position k with at least minFill entries on each side is scored by
// the overlap volume of the two halves, with margin sum and area sum as
// tie-breakers.
func findBestSplit[P any](entries []splitEntry[P], dims, minFill int) splitTracker {
	best := newSplitTracker()
	total := len(entries)

	for axis := 0; axis < dims; axis++ {
		sortEntriesByAxis(entries, axis)

		for k := minFill; k <= total-minFill; k++ {
			lower := NewMBR(dims)
			upper := NewMBR(dims)
			for j := 0; j < k; j++ {
				lower.Expand(entries[j].region)
			}
			for j := k; j < total; j++ {
				upper.Expand(entries[j].region)
			}

			overlap := overlapVolume(lower, upper)
			if overlap > best.overlap {
				continue
			}

			margin := marginSum(lower, upper)
			area := areaSum(lower, upper)

			if overlap < best.overlap {
				best.update(axis, k, overlap, margin, area)
				continue
			}
			if margin < best.margin {
				best.update(axis, k, overlap, margin, area)
				continue
			}
			if margin == best.margin && area < best.area {
				best.update(axis, k, overlap, margin, area)
			}
		}
	}

	if math.IsInf(best.overlap, 1) {
		panic("rstar: no feasible split position")
	}
	return best
}

// sortEntriesByAxis orders entries ascending by the min coordinate on the
// given axis. Stable so that repeated sorts of the same slice agree on
// tied coordinates.
func sortEntriesByAxis[P any](entries []splitEntry[P], axis int) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].region.Min[axis] < entries[j].region.Min[axis]
	})
}

// partitionEntries splits the axis-sorted entries at the chosen position and
// returns the covering region of each side. The returned slices alias the
// input.
func partitionEntries[P any](entries []splitEntry[P], location, dims int) (lower, upper []splitEntry[P], lowerRegion, upperRegion MBR) {
	lowerRegion = NewMBR(dims)
	upperRegion = NewMBR(dims)

	lower = entries[:location]
	upper = entries[location:]
	for j := range lower {
		lowerRegion.Expand(lower[j].region)
	}
	for j := range upper {
		upperRegion.Expand(upper[j].region)
	}
	return lower, upper, lowerRegion, upperRegion
}
