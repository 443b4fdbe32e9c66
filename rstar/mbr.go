package rstar

import "math"

// MBR is an axis-aligned minimum bounding region in D dimensions,
// defined by componentwise Min and Max coordinates.
//
// The zero region returned by NewMBR is empty: Min is +Inf and Max is -Inf
// on every axis, so the first Expand sets both bounds.
type MBR struct {
	Min []float64
	Max []float64
}

// NewMBR returns an empty region with the given dimensionality.
func NewMBR(dims int) MBR {
	m := MBR{
		Min: make([]float64, dims),
		Max: make([]float64, dims),
	}
	for i := 0; i < dims; i++ {
		m.Min[i] = math.Inf(1)
		m.Max[i] = math.Inf(-1)
	}
	return m
}

// NewPointMBR returns the degenerate region of a single point (Min == Max).
func NewPointMBR(point []float64) MBR {
	m := MBR{
		Min: make([]float64, len(point)),
		Max: make([]float64, len(point)),
	}
	copy(m.Min, point)
	copy(m.Max, point)
	return m
}

// Clone returns a deep copy of the region.
func (m MBR) Clone() MBR {
	c := MBR{
		Min: make([]float64, len(m.Min)),
		Max: make([]float64, len(m.Max)),
	}
	copy(c.Min, m.Min)
	copy(c.Max, m.Max)
	return c
}

// Area returns the product of the side lengths. Only meaningful for
// non-empty regions.
func (m MBR) Area() float64 {
	result := 1.0
	for i := range m.Min {
		result *= m.Max[i] - m.Min[i]
	}
	return result
}

// Contains reports whether the point lies inside the region. Both bounds
// are inclusive.
func (m MBR) Contains(point []float64) bool {
	for i := range m.Min {
		if point[i] < m.Min[i] || point[i] > m.Max[i] {
			return false
		}
	}
	return true
}

// Overlaps reports whether the two regions intersect (separating axis test).
func (m MBR) Overlaps(other MBR) bool {
	for i := range m.Min {
		if m.Max[i] < other.Min[i] || m.Min[i] > other.Max[i] {
			return false
		}
	}
	return true
}

// ExpandPoint grows the region to cover the point.
func (m *MBR) ExpandPoint(point []float64) {
	for i := range m.Min {
		if point[i] < m.Min[i] {
			m.Min[i] = point[i]
		}
		if point[i] > m.Max[i] {
			m.Max[i] = point[i]
		}
	}
}

// Expand grows the region to cover the other region (componentwise union).
func (m *MBR) Expand(other MBR) {
	for i := range m.Min {
		if other.Min[i] < m.Min[i] {
			m.Min[i] = other.Min[i]
		}
		if other.Max[i] > m.Max[i] {
			m.Max[i] = other.Max[i]
		}
	}
}

// overlapVolume returns the volume of the intersection of a and b, or 0 if
// they are disjoint on any axis.
func overlapVolume(a, b MBR) float64 {
	volume := 1.0
	for i := range a.Min {
		overlap := math.Min(a.Max[i], b.Max[i]) - math.Max(a.Min[i], b.Min[i])
		if overlap <= 0 {
			return 0
		}
		volume *= overlap
	}
	return volume
}

// marginSum returns the total perimeter of the two regions.
func marginSum(a, b MBR) float64 {
	sum := 0.0
	for i := range a.Min {
		sum += (a.Max[i] - a.Min[i]) + (b.Max[i] - b.Min[i])
	}
	return 2 * sum
}

// areaSum returns the sum of the two region areas.
func areaSum(a, b MBR) float64 {
	return a.Area() + b.Area()
}

// pointDistSq returns the scaled squared Euclidean distance between two
// points. A nil scale means unit scale.
func pointDistSq(a, b, scale []float64) float64 {
	distSq := 0.0
	for i := range a {
		diff := a[i] - b[i]
		if scale != nil {
			diff *= scale[i]
		}
		distSq += diff * diff
	}
	return distSq
}

// boxDistSq returns the scaled squared distance from a point to the nearest
// face of the region, 0 if the point lies inside along every axis.
func boxDistSq(point []float64, box MBR, scale []float64) float64 {
	distSq := 0.0
	for i := range point {
		var gap float64
		switch {
		case point[i] < box.Min[i]:
			gap = box.Min[i] - point[i]
		case point[i] > box.Max[i]:
			gap = point[i] - box.Max[i]
		default:
			continue
		}
		if scale != nil {
			gap *= scale[i]
		}
		distSq += gap * gap
	}
	return distSq
}
