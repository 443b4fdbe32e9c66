package rstar

import "math"

type nodeKind uint8

const (
	kindLeaf nodeKind = iota
	kindInternal
)

// node is a tagged variant: a leaf holds stored values, an internal node
// holds child pointers. Exactly one of values/children is populated,
// depending on kind. The cached region always equals the union of the
// first size subregions.
type node[S any] struct {
	kind   nodeKind
	size   int
	region MBR

	subregions []MBR
	values     []S        // kindLeaf only
	children   []*node[S] // kindInternal only
}

// splitResult bubbles a completed split up the insertion recursion: the
// overflowing node has been rewritten in place as one half and sibling is
// the freshly allocated other half.
type splitResult[S any] struct {
	newRegion MBR
	sibling   *node[S]
}

func (t *Tree[S]) newLeaf() *node[S] {
	return &node[S]{
		kind:       kindLeaf,
		region:     NewMBR(t.dims),
		subregions: make([]MBR, t.leafCap),
		values:     make([]S, t.leafCap),
	}
}

func (t *Tree[S]) newInternal() *node[S] {
	return &node[S]{
		kind:       kindInternal,
		region:     NewMBR(t.dims),
		subregions: make([]MBR, t.internalCap),
		children:   make([]*node[S], t.internalCap),
	}
}

func (t *Tree[S]) capacity(n *node[S]) int {
	if n.kind == kindLeaf {
		return t.leafCap
	}
	return t.internalCap
}

func (t *Tree[S]) isFull(n *node[S]) bool {
	return n.size == t.capacity(n)
}

// nodeInsert dispatches on the node kind. A non-nil result means the node
// split and the caller must install the sibling.
func (t *Tree[S]) nodeInsert(n *node[S], key []float64, value S) *splitResult[S] {
	if n.kind == kindLeaf {
		return t.leafInsert(n, key, value)
	}
	return t.internalInsert(n, key, value)
}

// leafInsert appends the entry when there is room, otherwise runs the R*
// split over the existing entries plus the incoming one.
func (t *Tree[S]) leafInsert(n *node[S], key []float64, value S) *splitResult[S] {
	if !t.isFull(n) {
		n.subregions[n.size] = NewPointMBR(key)
		n.values[n.size] = value
		n.region.ExpandPoint(key)
		n.size++
		return nil
	}

	entries := make([]splitEntry[S], t.leafCap+1)
	for i := 0; i < t.leafCap; i++ {
		if len(n.subregions[i].Min) == 0 {
			panic("rstar: corrupt leaf: missing subregion")
		}
		entries[i] = splitEntry[S]{region: n.subregions[i], payload: n.values[i]}
	}
	entries[t.leafCap] = splitEntry[S]{region: NewPointMBR(key), payload: value}

	best := findBestSplit(entries, t.dims, t.minFill)
	sortEntriesByAxis(entries, best.axis)
	lower, upper, lowerRegion, upperRegion := partitionEntries(entries, best.location, t.dims)

	sibling := t.newLeaf()
	sibling.size = len(upper)
	sibling.region = upperRegion
	for j, e := range upper {
		sibling.subregions[j] = e.region
		sibling.values[j] = e.payload
	}

	n.size = len(lower)
	n.region = lowerRegion
	for j, e := range lower {
		n.subregions[j] = e.region
		n.values[j] = e.payload
	}
	for j := len(lower); j < t.leafCap; j++ {
		n.subregions[j] = MBR{}
		var zero S
		n.values[j] = zero
	}

	return &splitResult[S]{newRegion: upperRegion.Clone(), sibling: sibling}
}

// chooseSubtree picks the child whose region needs the least area
// enlargement to cover keyMBR. Ties fall to the smaller original area,
// then to insertion order.
func (t *Tree[S]) chooseSubtree(n *node[S], keyMBR MBR) int {
	bestIndex := 0
	bestEnlargement := math.Inf(1)
	bestArea := math.Inf(1)

	for i := 0; i < n.size; i++ {
		current := n.subregions[i].Clone()
		originalArea := current.Area()
		current.Expand(keyMBR)
		enlargement := current.Area() - originalArea

		if enlargement < bestEnlargement ||
			(enlargement == bestEnlargement && originalArea < bestArea) {
			bestIndex = i
			bestEnlargement = enlargement
			bestArea = originalArea
		}
	}
	return bestIndex
}

// internalInsert recurses into the best child and installs any split that
// bubbles up, splitting itself when full.
func (t *Tree[S]) internalInsert(n *node[S], key []float64, value S) *splitResult[S] {
	best := t.chooseSubtree(n, NewPointMBR(key))

	split := t.nodeInsert(n.children[best], key, value)
	if split == nil {
		n.subregions[best].ExpandPoint(key)
		n.region.ExpandPoint(key)
		return nil
	}

	// The child was rewritten as the lower half of its split, so its
	// cached subregion is stale and must be refreshed before anything
	// else reads it.
	n.subregions[best] = n.children[best].region.Clone()

	if !t.isFull(n) {
		n.subregions[n.size] = split.newRegion
		n.children[n.size] = split.sibling
		n.size++
		t.recomputeRegion(n)
		return nil
	}

	entries := make([]splitEntry[*node[S]], t.internalCap+1)
	for i := 0; i < t.internalCap; i++ {
		if n.children[i] == nil {
			panic("rstar: corrupt internal node: missing child")
		}
		entries[i] = splitEntry[*node[S]]{region: n.subregions[i], payload: n.children[i]}
	}
	entries[t.internalCap] = splitEntry[*node[S]]{region: split.newRegion, payload: split.sibling}

	bestSplit := findBestSplit(entries, t.dims, t.minFill)
	sortEntriesByAxis(entries, bestSplit.axis)
	lower, upper, lowerRegion, upperRegion := partitionEntries(entries, bestSplit.location, t.dims)

	sibling := t.newInternal()
	sibling.size = len(upper)
	sibling.region = upperRegion
	for j, e := range upper {
		sibling.subregions[j] = e.region
		sibling.children[j] = e.payload
	}

	n.size = len(lower)
	n.region = lowerRegion
	for j, e := range lower {
		n.subregions[j] = e.region
		n.children[j] = e.payload
	}
	for j := len(lower); j < t.internalCap; j++ {
		n.subregions[j] = MBR{}
		n.children[j] = nil
	}

	return &splitResult[S]{newRegion: upperRegion.Clone(), sibling: sibling}
}

// recomputeRegion rebuilds the cached region as the exact union of the
// node's subregions.
func (t *Tree[S]) recomputeRegion(n *node[S]) {
	region := NewMBR(t.dims)
	for i := 0; i < n.size; i++ {
		region.Expand(n.subregions[i])
	}
	n.region = region
}
