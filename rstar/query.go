package rstar

import (
	"github.com/hupe1980/geogo/queue"
)

// Result pairs a payload with its scaled squared distance to the query
// point.
type Result[S any] struct {
	Value    S
	Distance float64
}

// Query returns up to k payloads ordered by ascending scaled squared
// distance to key. A nil scale means unit scale; otherwise scale must have
// one positive finite component per axis. k = 0 and the empty tree both
// return an empty result.
func (t *Tree[S]) Query(key []float64, k int, scale []float64) ([]S, error) {
	return t.QueryWithFilter(key, k, nil, scale)
}

// QueryWithFilter is Query restricted to payloads for which filter holds.
// A nil filter admits everything.
func (t *Tree[S]) QueryWithFilter(key []float64, k int, filter func(S) bool, scale []float64) ([]S, error) {
	results, err := t.Search(key, k, filter, scale)
	if err != nil {
		return nil, err
	}
	values := make([]S, len(results))
	for i, r := range results {
		values[i] = r.Value
	}
	return values, nil
}

// Search is QueryWithFilter returning the distances alongside the payloads.
func (t *Tree[S]) Search(key []float64, k int, filter func(S) bool, scale []float64) ([]Result[S], error) {
	if err := t.validateKey(key); err != nil {
		return nil, err
	}
	if err := t.validateScale(scale); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, ErrInvalidK
	}
	if k == 0 || t.root == nil {
		return nil, nil
	}

	// Bounded max-heap of the k best candidates seen so far; the top is the
	// current worst of them.
	result := queue.NewMax[S]()
	t.queryNode(t.root, key, k, filter, scale, result)

	// Unload the heap worst-first and reverse into ascending order.
	results := make([]Result[S], result.Len())
	for i := result.Len() - 1; i >= 0; i-- {
		item, _ := result.PopItem()
		results[i] = Result[S]{Value: item.Value, Distance: item.Distance}
	}
	return results, nil
}

func (t *Tree[S]) queryNode(n *node[S], key []float64, k int, filter func(S) bool, scale []float64, result *queue.PriorityQueue[S]) {
	if n.kind == kindLeaf {
		t.queryLeaf(n, key, k, filter, scale, result)
		return
	}

	// Best-first within this node: visit children ascending by the scaled
	// squared distance from the query point to their region.
	pq := queue.NewMin[*node[S]]()
	for i := 0; i < n.size; i++ {
		pq.PushItem(queue.Item[*node[S]]{
			Value:    n.children[i],
			Distance: boxDistSq(key, n.subregions[i], scale),
		})
	}

	for pq.Len() > 0 {
		item, _ := pq.PopItem()
		// Once the result heap is full, no child farther than the current
		// worst candidate can contribute; children pop in ascending
		// distance order, so the remainder is prunable as well.
		if result.Len() == k {
			if worst, ok := result.TopItem(); ok && item.Distance > worst.Distance {
				break
			}
		}
		t.queryNode(item.Value, key, k, filter, scale, result)
	}
}

func (t *Tree[S]) queryLeaf(n *node[S], key []float64, k int, filter func(S) bool, scale []float64, result *queue.PriorityQueue[S]) {
	for i := 0; i < n.size; i++ {
		if filter != nil && !filter(n.values[i]) {
			continue
		}
		// Leaf regions are degenerate point boxes, so Min is the stored
		// point itself.
		distSq := pointDistSq(key, n.subregions[i].Min, scale)
		result.PushItemBounded(queue.Item[S]{Value: n.values[i], Distance: distSq}, k)
	}
}
