package geoidx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuadtreeQuadrantNumbering(t *testing.T) {
	n := &quadtreeNode[taggedPoint]{center: Point{X: 5, Y: 5}}
	require.Equal(t, 0, n.quadrant(Point{X: 0, Y: 0}), "SW")
	require.Equal(t, 1, n.quadrant(Point{X: 10, Y: 0}), "SE")
	require.Equal(t, 2, n.quadrant(Point{X: 0, Y: 10}), "NW")
	require.Equal(t, 3, n.quadrant(Point{X: 10, Y: 10}), "NE")
}

// Densely clustered data forced well past LeafCapacity must split into
// more than one leaf, with every leaf at or under capacity and every
// record accounted for exactly once.
func TestQuadtreeSplitsUntilUnderCapacity(t *testing.T) {
	var records []taggedPoint
	id := 0
	for cx := 0; cx < 4; cx++ {
		for cy := 0; cy < 4; cy++ {
			base := Point{X: float64(cx) * 256, Y: float64(cy) * 256}
			for i := 0; i < 20; i++ {
				records = append(records, taggedPoint{
					Point: Point{X: base.X + float64(i%5), Y: base.Y + float64(i/5)},
					id:    id,
				})
				id++
			}
		}
	}

	qt := NewQuadtree[taggedPoint](0, 1024, 0, 1024, projectTagged)
	qt.LeafCapacity = 16
	qt.Build(records)

	require.Greater(t, qt.NumLeaves(), 1)

	total := 0
	seen := make(map[int]bool)
	for _, leaf := range qt.leaves {
		require.LessOrEqual(t, len(leaf), qt.LeafCapacity)
		for _, d := range leaf {
			require.False(t, seen[d.Data.id], "record visited twice")
			seen[d.Data.id] = true
		}
		total += len(leaf)
	}
	require.Equal(t, len(records), total)
}

func TestQuadtreeLeafRangeBubbling(t *testing.T) {
	records := randomRecords(300, 42)
	qt := NewQuadtree[taggedPoint](0, 1000, 0, 1000, projectTagged)
	qt.LeafCapacity = 8
	qt.Build(records)

	require.Equal(t, 0, qt.root.leafRange.Start)
	require.Equal(t, qt.NumLeaves()-1, qt.root.leafRange.End)

	var walk func(n *quadtreeNode[taggedPoint])
	walk = func(n *quadtreeNode[taggedPoint]) {
		if n.isLeaf() {
			require.Equal(t, n.leafRange.Start, n.leafRange.End)
			return
		}
		require.Equal(t, n.children[0].leafRange.Start, n.leafRange.Start)
		require.Equal(t, n.children[3].leafRange.End, n.leafRange.End)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(qt.root)
}

func TestQuadtreeBoundsWidenedByEpsilon(t *testing.T) {
	qt := NewQuadtree[taggedPoint](0, 10, 0, 10, projectTagged)
	require.Equal(t, 10+DefaultBoundsEpsilon, qt.root.bounds.Xmax)
	require.Equal(t, 10+DefaultBoundsEpsilon, qt.root.bounds.Ymax)
}

func TestQuadtreeEmptyBuild(t *testing.T) {
	qt := NewQuadtree[taggedPoint](0, 10, 0, 10, projectTagged)
	qt.Build(nil)
	require.Equal(t, 1, qt.NumLeaves())
	require.Empty(t, qt.QueryKNN(5, 1, 1))
}

func TestQuadtreeInsertAliasesBuild(t *testing.T) {
	records := randomRecords(50, 7)
	a := NewQuadtree[taggedPoint](0, 1000, 0, 1000, projectTagged)
	a.Build(records)
	b := NewQuadtree[taggedPoint](0, 1000, 0, 1000, projectTagged)
	b.Insert(records)
	require.Equal(t, a.NumLeaves(), b.NumLeaves())
}
