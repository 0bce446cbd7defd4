package geoidx

import "math"

// DefaultFanout is the maximum number of entries an RTree node holds
// before it overflows and is split.
const DefaultFanout = 8

// rtreeEntry is a tagged union: exactly one of child/datum is non-nil.
// A leaf entry's MBB is degenerate (collapsed to its point); an internal
// entry's MBB bounds everything reachable through child.
type rtreeEntry[T any] struct {
	mbb   Rectangle
	child *rtreeNode[T]
	datum *Datum[T]
}

func (e *rtreeEntry[T]) isLeafEntry() bool {
	return e.datum != nil
}

// entryLoad reports how many points e itself accounts for: one, if it is
// a leaf entry, or its child subtree's load, if it is internal.
func entryLoad[T any](e *rtreeEntry[T]) int {
	if e.isLeafEntry() {
		return 1
	}
	return e.child.load
}

// rtreeNode owns a sequence of entries and a load counter (the number of
// points in this subtree, exact for leaf nodes and the root; see distribute
// for where it under-counts). A node is a leaf iff every entry is a leaf
// entry; a node's entries are never mixed, so the first one decides, and a
// node with no entries (the root before its first insert) is a leaf.
type rtreeNode[T any] struct {
	entries []*rtreeEntry[T]
	load    int
}

func (n *rtreeNode[T]) isLeaf() bool {
	return len(n.entries) == 0 || n.entries[0].isLeafEntry()
}

// insertDatum recursively inserts d into the subtree rooted at n, splitting
// any node whose child overflowed. It reports whether n itself now
// overflows (entries.size() > fanout), which the caller must handle by
// calling split on its own entry for n.
func (n *rtreeNode[T]) insertDatum(d Datum[T], fanout int) bool {
	p := d.Point
	if n.isLeaf() {
		n.entries = append(n.entries, &rtreeEntry[T]{
			mbb:   Rectangle{p.X, p.X, p.Y, p.Y},
			datum: &d,
		})
	} else {
		b := n.chooseBranch(p)
		branch := n.entries[b]
		branch.mbb = MinBoundingBoxPoint(branch.mbb, p)
		if branch.child.insertDatum(d, fanout) {
			n.split(b, fanout)
		}
	}
	n.load++
	return len(n.entries) > fanout
}

// chooseBranch picks the entry requiring the smallest area expansion to
// include p, tie-breaking on smaller resulting MBB area. A zero-expansion
// hit is returned immediately without considering the remaining entries.
func (n *rtreeNode[T]) chooseBranch(p Point) int {
	best := -1
	bestExpansion := 0.0
	for i, e := range n.entries {
		expanded := MinBoundingBoxPoint(e.mbb, p)
		expansion := Area(expanded) - Area(e.mbb)
		if expansion == 0 {
			return i
		}
		if best == -1 || expansion < bestExpansion {
			bestExpansion = expansion
			best = i
		} else if expansion == bestExpansion && Area(e.mbb) < Area(n.entries[best].mbb) {
			best = i
		}
	}
	return best
}

// split handles an overflowing child at n.entries[b]: the overflowing
// entry is removed, two fresh seed entries are chosen by the quadratic
// split heuristic, and the remaining entries are distributed between them.
func (n *rtreeNode[T]) split(b int, fanout int) {
	overflowing := n.entries[b].child
	n.entries = append(n.entries[:b:b], n.entries[b+1:]...)

	i, j := pickSeeds(overflowing.entries)
	seedA, seedB := overflowing.entries[i], overflowing.entries[j]
	g1 := &rtreeNode[T]{entries: []*rtreeEntry[T]{seedA}, load: entryLoad(seedA)}
	g2 := &rtreeNode[T]{entries: []*rtreeEntry[T]{seedB}, load: entryLoad(seedB)}
	n.entries = append(n.entries,
		&rtreeEntry[T]{mbb: seedA.mbb, child: g1},
		&rtreeEntry[T]{mbb: seedB.mbb, child: g2},
	)

	leftover := make([]*rtreeEntry[T], 0, len(overflowing.entries)-2)
	for k, e := range overflowing.entries {
		if k == i || k == j {
			continue
		}
		leftover = append(leftover, e)
	}
	n.distribute(leftover)
}

// pickSeeds chooses the pair of entries maximizing
// area(MBB(ei,ej)) - area(ei) - area(ej), the "most wasteful" pair were
// they to share a group.
func pickSeeds[T any](choices []*rtreeEntry[T]) (int, int) {
	bestI, bestJ := 0, 1
	maxWaste := math.Inf(-1)
	for i := 0; i < len(choices); i++ {
		for j := i + 1; j < len(choices); j++ {
			combined := MinBoundingBoxRect(choices[i].mbb, choices[j].mbb)
			waste := Area(combined) - Area(choices[i].mbb) - Area(choices[j].mbb)
			if waste > maxWaste {
				maxWaste = waste
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ
}

// distribute repeatedly assigns the next leftover entry (chosen by
// pickNext) to whichever of the two new groups requires the smaller MBB
// expansion, tie-breaking on smaller current group area.
func (n *rtreeNode[T]) distribute(leftover []*rtreeEntry[T]) {
	g2 := n.entries[len(n.entries)-1]
	g1 := n.entries[len(n.entries)-2]

	for len(leftover) > 0 {
		idx := pickNext(leftover, g1, g2)
		next := leftover[idx]
		leftover = append(leftover[:idx], leftover[idx+1:]...)

		g1Expanded := MinBoundingBoxRect(g1.mbb, next.mbb)
		g2Expanded := MinBoundingBoxRect(g2.mbb, next.mbb)
		g1Expansion := Area(g1Expanded) - Area(g1.mbb)
		g2Expansion := Area(g2Expanded) - Area(g2.mbb)

		if g1Expansion < g2Expansion || (g1Expansion == g2Expansion && Area(g1.mbb) < Area(g2.mbb)) {
			g1.mbb = g1Expanded
			g1.child.entries = append(g1.child.entries, next)
			// load++ only matches the entry's true point count at a
			// leaf-level split; a deeper split under-counts subtree size
			// this way, inherited as-is from the source algorithm.
			g1.child.load++
		} else {
			g2.mbb = g2Expanded
			g2.child.entries = append(g2.child.entries, next)
			g2.child.load++
		}
	}
}

// pickNext chooses the leftover entry maximizing the disparity between
// the expansion cost of placing it in group 1 versus group 2.
func pickNext[T any](leftover []*rtreeEntry[T], g1, g2 *rtreeEntry[T]) int {
	maxDiff := 0.0
	best := 0
	for i, e := range leftover {
		d1 := Area(MinBoundingBoxRect(g1.mbb, e.mbb)) - Area(g1.mbb)
		d2 := Area(MinBoundingBoxRect(g2.mbb, e.mbb)) - Area(g2.mbb)
		diff := math.Abs(d1 - d2)
		if diff > maxDiff {
			maxDiff = diff
			best = i
		}
	}
	return best
}

// RTree is a dynamic point-insertion spatial index with minimum-bounding-
// box entries and quadratic-split overflow handling. Unlike Quadtree and
// ZGrid, it derives its bounds from the first inserted point rather than
// taking them at construction time.
//
// Build is non-reentrant. Once built, QueryKNN may be called concurrently
// from multiple goroutines, provided no Insert runs concurrently with it.
type RTree[T any] struct {
	// Fanout is M, the maximum number of entries per node before it
	// overflows. Default DefaultFanout. There is no minimum-fill (m)
	// parameter: an uneven split is not rebalanced.
	Fanout int

	project   func(T) Point
	rootEntry *rtreeEntry[T]
	data      []Datum[T]
}

// NewRTree constructs an empty R-tree, projecting each record to (x, y)
// via project.
func NewRTree[T any](project func(T) Point) *RTree[T] {
	return &RTree[T]{
		Fanout:  DefaultFanout,
		project: project,
	}
}

func (r *RTree[T]) fanout() int {
	if r.Fanout <= 0 {
		return DefaultFanout
	}
	return r.Fanout
}

// Build bulk-constructs the tree via point-by-point insertion.
func (r *RTree[T]) Build(records []T) {
	for _, rec := range records {
		r.Insert(rec)
	}
}

// Insert adds a single record to the tree, expanding the root's MBB and
// splitting the root if the insertion overflows it.
func (r *RTree[T]) Insert(record T) {
	p := r.project(record)
	datum := Datum[T]{Point: p, Data: record}
	r.data = append(r.data, datum)

	if r.rootEntry == nil {
		r.rootEntry = &rtreeEntry[T]{
			mbb:   Rectangle{p.X, p.X, p.Y, p.Y},
			child: &rtreeNode[T]{},
		}
		r.rootEntry.child.insertDatum(datum, r.fanout())
		return
	}

	r.rootEntry.mbb = MinBoundingBoxPoint(r.rootEntry.mbb, p)
	if r.rootEntry.child.insertDatum(datum, r.fanout()) {
		r.splitRoot()
	}
}

// splitRoot handles root overflow: a fresh root entry is allocated
// wrapping a new node, the old root entry becomes that node's sole entry,
// and split is invoked on it.
func (r *RTree[T]) splitRoot() {
	old := r.rootEntry
	newNode := &rtreeNode[T]{entries: []*rtreeEntry[T]{old}, load: old.child.load}
	r.rootEntry = &rtreeEntry[T]{mbb: old.mbb, child: newNode}
	newNode.split(0, r.fanout())
}

// Load reports the total number of points in the tree.
func (r *RTree[T]) Load() int {
	if r.rootEntry == nil {
		return 0
	}
	return r.rootEntry.child.load
}

// rtreeEntryAdapter implements knnAdapter over *rtreeEntry[T] directly:
// distance browsing on an R-tree extends the node PQ to an entry PQ, since
// both leaf entries (which emit a candidate point) and internal entries
// (whose expansion pushes their child node's entries) carry an MBB.
type rtreeEntryAdapter[T any] struct{}

func (rtreeEntryAdapter[T]) IsLeaf(e *rtreeEntry[T]) bool      { return e.isLeafEntry() }
func (rtreeEntryAdapter[T]) Bounds(e *rtreeEntry[T]) Rectangle { return e.mbb }
func (rtreeEntryAdapter[T]) Children(e *rtreeEntry[T]) []*rtreeEntry[T] {
	return e.child.entries
}
func (rtreeEntryAdapter[T]) LeafData(e *rtreeEntry[T]) []Datum[T] {
	return []Datum[T]{*e.datum}
}

// QueryKNN returns up to k payloads nearest to (x, y), in strictly
// descending order of distance from the query point (farthest first).
func (r *RTree[T]) QueryKNN(k int, x, y float64) []T {
	if r.rootEntry == nil {
		return []T{}
	}
	return queryKNN[T, *rtreeEntry[T]](rtreeEntryAdapter[T]{}, r.rootEntry, k, x, y)
}
