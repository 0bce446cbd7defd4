package geoidx

// zgridNode is one node of a ZGrid's overlay tree. Unlike a Quadtree node
// it carries no leaf range: a leaf's code directly indexes into the flat
// grid slice of buckets.
type zgridNode[T any] struct {
	code     int64
	depth    int
	bounds   Rectangle
	center   Point
	children [4]*zgridNode[T]
}

func (n *zgridNode[T]) isLeaf() bool {
	return n.children[0] == nil
}

func (n *zgridNode[T]) createChildren() {
	n.children[0] = &zgridNode[T]{code: (n.code << 2) + 0, depth: n.depth + 1, bounds: Rectangle{n.bounds.Xmin, n.center.X, n.bounds.Ymin, n.center.Y}}
	n.children[1] = &zgridNode[T]{code: (n.code << 2) + 1, depth: n.depth + 1, bounds: Rectangle{n.center.X, n.bounds.Xmax, n.bounds.Ymin, n.center.Y}}
	n.children[2] = &zgridNode[T]{code: (n.code << 2) + 2, depth: n.depth + 1, bounds: Rectangle{n.bounds.Xmin, n.center.X, n.center.Y, n.bounds.Ymax}}
	n.children[3] = &zgridNode[T]{code: (n.code << 2) + 3, depth: n.depth + 1, bounds: Rectangle{n.center.X, n.bounds.Xmax, n.center.Y, n.bounds.Ymax}}
	for _, c := range n.children {
		c.center = Midpoint(c.bounds)
	}
}

// populate unconditionally builds a complete overlay quadtree of depth r
// above the flat grid: every node at depth d < r gets four children, and
// nodes at depth r are leaves whose code indexes directly into the grid.
func (n *zgridNode[T]) populate(r int) {
	if r <= 0 {
		return
	}
	n.createChildren()
	for _, c := range n.children {
		c.populate(r - 1)
	}
}

// ZGrid is a flat uniform grid spatial index at a fixed resolution,
// keyed by Z-order (Morton) code, with a thin overlay tree used only for
// k-NN distance pruning.
//
// Build is non-reentrant and must complete before any query is issued.
// Once built, QueryKNN may be called concurrently from multiple goroutines.
type ZGrid[T any] struct {
	project func(T) Point

	root  *zgridNode[T]
	grid  [][]Datum[T]
	depth int
}

// NewZGrid constructs an empty Z-grid over the given bounding box,
// projecting each record to (x, y) via project. The box's right/top edges
// are widened by DefaultBoundsEpsilon, matching Quadtree.
func NewZGrid[T any](xmin, xmax, ymin, ymax float64, project func(T) Point) *ZGrid[T] {
	bounds := Rectangle{xmin, xmax + DefaultBoundsEpsilon, ymin, ymax + DefaultBoundsEpsilon}
	root := &zgridNode[T]{bounds: bounds}
	root.center = Midpoint(bounds)
	return &ZGrid[T]{
		project: project,
		root:    root,
	}
}

// Build bins records into a grid of 4^r cells (a 2^r x 2^r grid), hashing
// each point to its cell via Interleave(GridIndex(x,...), GridIndex(y,...)),
// then builds a complete overlay quadtree of depth r above the grid.
func (z *ZGrid[T]) Build(records []T, r int) {
	z.depth = r
	dim := 1 << uint(r)
	z.grid = make([][]Datum[T], 1<<uint(2*r))
	for _, rec := range records {
		p := z.project(rec)
		d := Datum[T]{Point: p, Data: rec}
		code := z.zorderHash(p, dim)
		z.grid[code] = append(z.grid[code], d)
	}
	z.root.populate(r)
}

func (z *ZGrid[T]) zorderHash(p Point, dim int) int64 {
	b := z.root.bounds
	cellX := GridIndex(p.X, b.Xmin, b.Xmax, dim)
	cellY := GridIndex(p.Y, b.Ymin, b.Ymax, dim)
	return int64(Interleave(uint16(cellX), uint16(cellY)))
}

// Size reports the number of grid cells (4^r).
func (z *ZGrid[T]) Size() int {
	return len(z.grid)
}

// zgridAdapter implements knnAdapter over *zgridNode[T].
type zgridAdapter[T any] struct {
	grid [][]Datum[T]
}

func (a zgridAdapter[T]) IsLeaf(n *zgridNode[T]) bool      { return n.isLeaf() }
func (a zgridAdapter[T]) Bounds(n *zgridNode[T]) Rectangle { return n.bounds }
func (a zgridAdapter[T]) Children(n *zgridNode[T]) []*zgridNode[T] {
	return n.children[:]
}
func (a zgridAdapter[T]) LeafData(n *zgridNode[T]) []Datum[T] {
	return a.grid[n.code]
}

// QueryKNN returns up to k payloads nearest to (x, y), in strictly
// descending order of distance from the query point (farthest first).
func (z *ZGrid[T]) QueryKNN(k int, x, y float64) []T {
	return queryKNN[T, *zgridNode[T]](zgridAdapter[T]{grid: z.grid}, z.root, k, x, y)
}
