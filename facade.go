package geoidx

import "time"

// Located is satisfied by payload types that know their own projection to
// a 2D point, e.g. a LiDAR return carrying (x, y, z, intensity, ...).
type Located interface {
	XY() (float64, float64)
}

// ProjectLocated is a ready-made projector for any payload implementing
// Located, for use as the project argument to NewQuadtree/NewZGrid/NewRTree.
func ProjectLocated[T Located](v T) Point {
	x, y := v.XY()
	return Point{X: x, Y: y}
}

// FloatSlice is any slice-like record whose first two elements are the
// (x, y) coordinates, matching the record[0]/record[1] indexable contract
// external collaborators (e.g. a LiDAR text reader) use to hand over raw
// tuples without wrapping them in a dedicated payload type.
type FloatSlice interface {
	~[]float64
}

// ProjectSlice projects a FloatSlice record by its first two elements.
// Further elements are opaque payload, carried through untouched.
func ProjectSlice[S FloatSlice](v S) Point {
	return Point{X: v[0], Y: v[1]}
}

// BuildQuadtree is the façade's build driver for a Quadtree: it wraps
// construction and bulk load, optionally timing both into m.
func BuildQuadtree[T any](bounds Rectangle, leafCapacity int, records []T, project func(T) Point, m *Metrics) *Quadtree[T] {
	start := time.Now()
	qt := NewQuadtree[T](bounds.Xmin, bounds.Xmax, bounds.Ymin, bounds.Ymax, project)
	if leafCapacity > 0 {
		qt.LeafCapacity = leafCapacity
	}
	qt.Build(records)
	m.observeBuild("quadtree", time.Since(start))
	m.observeSize("quadtree", float64(qt.NumLeaves()))
	return qt
}

// BuildZGrid is the façade's build driver for a ZGrid.
func BuildZGrid[T any](bounds Rectangle, depth int, records []T, project func(T) Point, m *Metrics) *ZGrid[T] {
	start := time.Now()
	zg := NewZGrid[T](bounds.Xmin, bounds.Xmax, bounds.Ymin, bounds.Ymax, project)
	zg.Build(records, depth)
	m.observeBuild("zgrid", time.Since(start))
	m.observeSize("zgrid", float64(zg.Size()))
	return zg
}

// BuildRTree is the façade's build driver for an RTree.
func BuildRTree[T any](fanout int, records []T, project func(T) Point, m *Metrics) *RTree[T] {
	start := time.Now()
	rt := NewRTree[T](project)
	if fanout > 0 {
		rt.Fanout = fanout
	}
	rt.Build(records)
	m.observeBuild("rtree", time.Since(start))
	m.observeSize("rtree", float64(rt.Load()))
	return rt
}

// TimedQuery runs a k-NN query and records its duration under the given
// index kind label, forwarding the query's own return value unchanged.
func TimedQuery[T any](m *Metrics, kind string, k int, query func(k int, x, y float64) []T, x, y float64) []T {
	start := time.Now()
	result := query(k, x, y)
	m.observeQuery(kind, time.Since(start))
	return result
}
