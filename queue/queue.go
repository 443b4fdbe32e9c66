// Package queue provides value-based binary heaps keyed by distance, used
// for best-first traversal ordering and bounded top-k result collection.
package queue

// Item represents an item in the priority queue.
type Item[T any] struct {
	Value    T       // Value is the carried element.
	Distance float64 // Distance is the priority of the item in the queue.
}

// PriorityQueue is a value-based binary heap over Items. The polarity flag
// selects whether the top is the largest (max-heap) or smallest (min-heap)
// distance.
type PriorityQueue[T any] struct {
	isMaxHeap bool
	items     []Item[T]
}

// NewMin creates a min-heap: the top is the smallest distance.
func NewMin[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{
		isMaxHeap: false,
		items:     make([]Item[T], 0, 16),
	}
}

// NewMax creates a max-heap: the top is the largest distance.
func NewMax[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{
		isMaxHeap: true,
		items:     make([]Item[T], 0, 16),
	}
}

// Len returns the number of elements in the heap.
func (pq *PriorityQueue[T]) Len() int {
	return len(pq.items)
}

// TopItem returns the top element of the heap.
func (pq *PriorityQueue[T]) TopItem() (Item[T], bool) {
	if len(pq.items) == 0 {
		return Item[T]{}, false
	}
	return pq.items[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (pq *PriorityQueue[T]) PushItem(item Item[T]) {
	pq.items = append(pq.items, item)
	pq.siftUp(len(pq.items) - 1)
}

// PushItemBounded inserts an item into a heap bounded to capacity elements.
// If the heap is full and the new item is worse than the top, it is skipped.
// If the heap is full and the new item is better, the top is replaced.
func (pq *PriorityQueue[T]) PushItemBounded(item Item[T], capacity int) {
	if capacity <= 0 {
		return
	}
	if len(pq.items) < capacity {
		pq.PushItem(item)
		return
	}

	top := pq.items[0]
	if pq.isMaxHeap {
		// MaxHeap keeps the smallest distances; the top is the worst.
		if item.Distance < top.Distance {
			pq.items[0] = item
			pq.siftDown(0)
		}
	} else {
		// MinHeap keeps the largest distances; the top is the worst.
		if item.Distance > top.Distance {
			pq.items[0] = item
			pq.siftDown(0)
		}
	}
}

// PopItem removes and returns the top element from the heap.
func (pq *PriorityQueue[T]) PopItem() (Item[T], bool) {
	n := len(pq.items)
	if n == 0 {
		return Item[T]{}, false
	}

	item := pq.items[0]
	pq.items[0] = pq.items[n-1]
	pq.items = pq.items[:n-1]

	if len(pq.items) > 0 {
		pq.siftDown(0)
	}

	return item, true
}

// Reset clears the priority queue.
func (pq *PriorityQueue[T]) Reset() {
	pq.items = pq.items[:0]
}

func (pq *PriorityQueue[T]) less(i, j int) bool {
	if pq.isMaxHeap {
		return pq.items[i].Distance > pq.items[j].Distance
	}
	return pq.items[i].Distance < pq.items[j].Distance
}

func (pq *PriorityQueue[T]) swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
}

// siftUp moves the element at index i up the heap until the heap invariant
// is restored.
func (pq *PriorityQueue[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !pq.less(i, parent) {
			break
		}
		pq.swap(i, parent)
		i = parent
	}
}

// siftDown moves the element at index i down the heap until the heap
// invariant is restored.
func (pq *PriorityQueue[T]) siftDown(i int) {
	n := len(pq.items)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		child := left
		right := left + 1
		if right < n && pq.less(right, left) {
			child = right
		}
		if !pq.less(child, i) {
			break
		}
		pq.swap(i, child)
		i = child
	}
}
