package geoidx

import "container/heap"

// knnAdapter is what the k-NN engine needs from an index's node
// abstraction: a leaf test, a way to enumerate an internal node's
// children, a node's bounds (for distance pruning), and a leaf's data.
type knnAdapter[T any, N any] interface {
	IsLeaf(n N) bool
	Children(n N) []N
	Bounds(n N) Rectangle
	LeafData(n N) []Datum[T]
}

// nodeHeapItem pairs a node with its distance from the query point.
type nodeHeapItem[N any] struct {
	node N
	dist float64
}

// nodeHeap is a min-heap on distance(query, node.bounds).
type nodeHeap[N any] struct {
	items []nodeHeapItem[N]
}

func (h *nodeHeap[N]) Len() int            { return len(h.items) }
func (h *nodeHeap[N]) Less(i, j int) bool  { return h.items[i].dist < h.items[j].dist }
func (h *nodeHeap[N]) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *nodeHeap[N]) Push(x interface{})  { h.items = append(h.items, x.(nodeHeapItem[N])) }
func (h *nodeHeap[N]) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// resultHeapItem pairs a datum with its distance from the query point.
type resultHeapItem[T any] struct {
	datum Datum[T]
	dist  float64
}

// resultHeap is a max-heap on distance(query, datum.point), so the
// farthest-so-far candidate always sits at the top and can be evicted in
// O(log k) once the heap has k entries.
type resultHeap[T any] struct {
	items []resultHeapItem[T]
}

func (h *resultHeap[T]) Len() int            { return len(h.items) }
func (h *resultHeap[T]) Less(i, j int) bool  { return h.items[i].dist > h.items[j].dist }
func (h *resultHeap[T]) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *resultHeap[T]) Push(x interface{})  { h.items = append(h.items, x.(resultHeapItem[T])) }
func (h *resultHeap[T]) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// queryKNN runs the shared best-first distance-browsing traversal described
// for every index variant: a node min-heap bounds how close the nearest
// unexplored region can be, and a result max-heap (bounded to k) holds the
// current best candidates. The loop stops once the closest unexplored node
// cannot possibly beat the current k-th best candidate, and the result is
// drained farthest-first.
func queryKNN[T any, N any](adapter knnAdapter[T, N], root N, k int, x, y float64) []T {
	out := make([]T, 0, k)
	if k <= 0 {
		return out
	}

	q := Point{X: x, Y: y}

	nodes := &nodeHeap[N]{}
	heap.Init(nodes)
	heap.Push(nodes, nodeHeapItem[N]{node: root, dist: DistanceToRect(q, adapter.Bounds(root))})

	results := &resultHeap[T]{}
	heap.Init(results)

	for nodes.Len() > 0 && (results.Len() < k || results.items[0].dist > nodes.items[0].dist) {
		next := heap.Pop(nodes).(nodeHeapItem[N])
		n := next.node
		if adapter.IsLeaf(n) {
			for _, d := range adapter.LeafData(n) {
				dist := Distance(q, d.Point)
				if results.Len() < k {
					heap.Push(results, resultHeapItem[T]{datum: d, dist: dist})
				} else if dist < results.items[0].dist {
					results.items[0] = resultHeapItem[T]{datum: d, dist: dist}
					heap.Fix(results, 0)
				}
			}
		} else {
			for _, c := range adapter.Children(n) {
				heap.Push(nodes, nodeHeapItem[N]{node: c, dist: DistanceToRect(q, adapter.Bounds(c))})
			}
		}
	}

	for results.Len() > 0 {
		item := heap.Pop(results).(resultHeapItem[T])
		out = append(out, item.datum.Data)
	}
	return out
}
