package geoidx

// DefaultLeafCapacity is the maximum number of points held in a Quadtree
// leaf before it splits into four children.
const DefaultLeafCapacity = 16

// DefaultBoundsEpsilon widens a Quadtree's or ZGrid's right/top bounds
// relative to the caller-supplied box, so a point exactly on xmax or ymax
// hashes into a cell inside the tree rather than just outside it.
const DefaultBoundsEpsilon = 0.01

// quadtreeNode is one node of a Quadtree. It owns up to four children
// (SW, SE, NW, NE, in that order — the two low bits of the child's
// Z-order code) and, if it is a leaf, a range addressing one bucket in
// the index's leaves slice.
type quadtreeNode[T any] struct {
	depth     int
	code      int64
	bounds    Rectangle
	center    Point
	leafRange Range
	children  [4]*quadtreeNode[T]
}

func (n *quadtreeNode[T]) isLeaf() bool {
	return n.children[0] == nil
}

// quadrant maps a point to {0,1,2,3} = {SW,SE,NW,NE} relative to this
// node's center; also the low two bits appended to this node's Z-order
// code to form the child's code.
func (n *quadtreeNode[T]) quadrant(p Point) int {
	q := 0
	if p.X > n.center.X {
		q |= 1
	}
	if p.Y > n.center.Y {
		q |= 2
	}
	return q
}

func (n *quadtreeNode[T]) createChildren() {
	n.children[0] = &quadtreeNode[T]{
		depth:  n.depth + 1,
		code:   (n.code << 2) + 0,
		bounds: Rectangle{n.bounds.Xmin, n.center.X, n.bounds.Ymin, n.center.Y},
	}
	n.children[1] = &quadtreeNode[T]{
		depth:  n.depth + 1,
		code:   (n.code << 2) + 1,
		bounds: Rectangle{n.center.X, n.bounds.Xmax, n.bounds.Ymin, n.center.Y},
	}
	n.children[2] = &quadtreeNode[T]{
		depth:  n.depth + 1,
		code:   (n.code << 2) + 2,
		bounds: Rectangle{n.bounds.Xmin, n.center.X, n.center.Y, n.bounds.Ymax},
	}
	n.children[3] = &quadtreeNode[T]{
		depth:  n.depth + 1,
		code:   (n.code << 2) + 3,
		bounds: Rectangle{n.center.X, n.bounds.Xmax, n.center.Y, n.bounds.Ymax},
	}
	for _, c := range n.children {
		c.center = Midpoint(c.bounds)
	}
}

// Quadtree is an adaptive recursive space partition over points of type T.
// Its zero value is not usable; construct one with NewQuadtree.
//
// Build is non-reentrant and must complete before any query is issued.
// Once built, QueryKNN may be called concurrently from multiple goroutines,
// provided no Insert is running concurrently with it.
type Quadtree[T any] struct {
	// LeafCapacity is the maximum number of points per leaf before it
	// splits. Must be set before Build or Insert; changing it afterwards
	// has no effect on the already-built tree. Default DefaultLeafCapacity.
	LeafCapacity int

	project func(T) Point
	root    *quadtreeNode[T]
	leaves  [][]Datum[T]
}

// NewQuadtree constructs an empty quadtree over the given bounding box,
// projecting each record to (x, y) via project. The box's right/top edges
// are widened by DefaultBoundsEpsilon.
func NewQuadtree[T any](xmin, xmax, ymin, ymax float64, project func(T) Point) *Quadtree[T] {
	bounds := Rectangle{xmin, xmax + DefaultBoundsEpsilon, ymin, ymax + DefaultBoundsEpsilon}
	root := &quadtreeNode[T]{bounds: bounds}
	root.center = Midpoint(bounds)
	return &Quadtree[T]{
		LeafCapacity: DefaultLeafCapacity,
		project:      project,
		root:         root,
	}
}

// Build bulk-constructs the quadtree from records via top-down recursive
// partition: a node holding more than LeafCapacity points gets four
// children, which split its bounds at their geometric midpoint (the node's
// center) into the SW/SE/NW/NE quadrants and partition its data among
// them; nodes whose data fits are never split. Children are created
// and recursed into in order 0,1,2,3, which makes the leaves slice ordered
// by Z-order code.
func (q *Quadtree[T]) Build(records []T) {
	data := make([]Datum[T], len(records))
	for i, r := range records {
		data[i] = Datum[T]{Point: q.project(r), Data: r}
	}
	q.leaves = nil
	q.root.leafRange = q.insertInto(q.root, data)
}

// Insert is semantically identical to Build for an initially empty tree.
func (q *Quadtree[T]) Insert(records []T) {
	q.Build(records)
}

func (q *Quadtree[T]) insertInto(n *quadtreeNode[T], data []Datum[T]) Range {
	if q.LeafCapacity <= 0 {
		q.LeafCapacity = DefaultLeafCapacity
	}
	if len(data) <= q.LeafCapacity {
		idx := len(q.leaves)
		n.leafRange = Range{idx, idx}
		q.leaves = append(q.leaves, data)
		return n.leafRange
	}

	var partition [4][]Datum[T]
	for _, d := range data {
		quad := n.quadrant(d.Point)
		partition[quad] = append(partition[quad], d)
	}
	n.createChildren()

	first := q.insertInto(n.children[0], partition[0])
	n.leafRange.Start = first.Start
	q.insertInto(n.children[1], partition[1])
	q.insertInto(n.children[2], partition[2])
	last := q.insertInto(n.children[3], partition[3])
	n.leafRange.End = last.End

	return n.leafRange
}

// NumLeaves reports the number of leaf buckets in the tree.
func (q *Quadtree[T]) NumLeaves() int {
	return len(q.leaves)
}

// quadtreeAdapter implements knnAdapter over *quadtreeNode[T].
type quadtreeAdapter[T any] struct {
	leaves [][]Datum[T]
}

func (a quadtreeAdapter[T]) IsLeaf(n *quadtreeNode[T]) bool    { return n.isLeaf() }
func (a quadtreeAdapter[T]) Bounds(n *quadtreeNode[T]) Rectangle { return n.bounds }
func (a quadtreeAdapter[T]) Children(n *quadtreeNode[T]) []*quadtreeNode[T] {
	return n.children[:]
}
func (a quadtreeAdapter[T]) LeafData(n *quadtreeNode[T]) []Datum[T] {
	return a.leaves[n.leafRange.Start]
}

// QueryKNN returns up to k payloads nearest to (x, y), in strictly
// descending order of distance from the query point (farthest first).
func (q *Quadtree[T]) QueryKNN(k int, x, y float64) []T {
	return queryKNN[T, *quadtreeNode[T]](quadtreeAdapter[T]{leaves: q.leaves}, q.root, k, x, y)
}
