package main

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"

	"github.com/gprender/nearest-neighbour"
	"github.com/gprender/nearest-neighbour/internal/lidar"
)

// knnIndex is the subset of the Quadtree/ZGrid/RTree API the CLI needs,
// satisfied by all three once instantiated over lidar.Point.
type knnIndex interface {
	QueryKNN(k int, x, y float64) []lidar.Point
}

// buildIndex dispatches to the façade's build driver for the requested
// index kind and reports a one-line size summary.
func buildIndex(kind string, file *lidar.File, m *geoidx.Metrics) (knnIndex, string, error) {
	switch kind {
	case "quadtree":
		qt := geoidx.BuildQuadtree[lidar.Point](file.Bounds, leafCapacity, file.Points, geoidx.ProjectLocated[lidar.Point], m)
		return qt, fmt.Sprintf("%d leaves", qt.NumLeaves()), nil
	case "zgrid":
		zg := geoidx.BuildZGrid[lidar.Point](file.Bounds, gridDepth, file.Points, geoidx.ProjectLocated[lidar.Point], m)
		return zg, fmt.Sprintf("%d grid cells", zg.Size()), nil
	case "rtree":
		rt := geoidx.BuildRTree[lidar.Point](fanout, file.Points, geoidx.ProjectLocated[lidar.Point], m)
		return rt, fmt.Sprintf("load %d", rt.Load()), nil
	default:
		return nil, "", errors.New(fmt.Sprintf("unknown index kind %q (want quadtree|zgrid|rtree)", kind))
	}
}
