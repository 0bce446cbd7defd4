package geoidx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRTreeEmptyLoad(t *testing.T) {
	rt := NewRTree[taggedPoint](projectTagged)
	require.Equal(t, 0, rt.Load())
	require.Empty(t, rt.QueryKNN(5, 0, 0))
}

func TestRTreeLoadTracksInsertedCount(t *testing.T) {
	rt := NewRTree[taggedPoint](projectTagged)
	rt.Fanout = 8
	records := randomRecords(50, 20)
	rt.Build(records)
	require.Equal(t, len(records), rt.Load())
}

// Nine collinear points with a fanout of 8 overflow the root exactly once,
// forcing a single splitRoot and leaving the tree two levels deep.
func TestRTreeNinePointsTriggerOneRootSplit(t *testing.T) {
	rt := NewRTree[taggedPoint](projectTagged)
	rt.Fanout = 8
	for i := 0; i < 9; i++ {
		rt.Insert(taggedPoint{Point: Point{X: float64(i), Y: 0}, id: i})
	}

	require.Equal(t, 9, rt.Load())
	require.False(t, rt.rootEntry.isLeafEntry())
	require.False(t, rt.rootEntry.child.isLeaf(), "root now wraps two internal groups, not raw leaf entries")
	require.Len(t, rt.rootEntry.child.entries, 2, "one split produces exactly two groups under the new root")

	for _, e := range rt.rootEntry.child.entries {
		require.True(t, e.child.isLeaf())
		require.Greater(t, e.child.load, 0)
	}

	total := 0
	for _, e := range rt.rootEntry.child.entries {
		total += e.child.load
	}
	require.Equal(t, 9, total)
}

func TestRTreeChooseBranchPrefersZeroExpansion(t *testing.T) {
	n := &rtreeNode[taggedPoint]{
		entries: []*rtreeEntry[taggedPoint]{
			{mbb: Rectangle{0, 10, 0, 10}},
			{mbb: Rectangle{100, 110, 100, 110}},
		},
	}
	// A point already inside entry 0's MBB costs zero expansion and must
	// win immediately, regardless of entry order.
	require.Equal(t, 0, n.chooseBranch(Point{X: 5, Y: 5}))
}

func TestRTreeChooseBranchPicksSmallerExpansion(t *testing.T) {
	n := &rtreeNode[taggedPoint]{
		entries: []*rtreeEntry[taggedPoint]{
			{mbb: Rectangle{0, 10, 0, 10}},
			{mbb: Rectangle{20, 100, 0, 100}},
		},
	}
	// A point just outside both entries costs far less expansion in entry 0
	// (area 100 -> 110) than in the already-huge entry 1 (8000 -> 8900).
	require.Equal(t, 0, n.chooseBranch(Point{X: 11, Y: 5}))
}

func TestRTreePickSeedsPicksMostWastefulPair(t *testing.T) {
	entries := []*rtreeEntry[taggedPoint]{
		{mbb: Rectangle{0, 1, 0, 1}},
		{mbb: Rectangle{100, 101, 100, 101}},
		{mbb: Rectangle{0.5, 1.5, 0.5, 1.5}},
	}
	i, j := pickSeeds(entries)
	got := map[int]bool{i: true, j: true}
	require.True(t, got[0] && got[1], "the two far-apart entries are the most wasteful pair")
}

func TestRTreeBulkBuildKNNMatchesBruteForce(t *testing.T) {
	records := randomRecords(300, 21)
	rt := NewRTree[taggedPoint](projectTagged)
	rt.Fanout = 4
	rt.Build(records)

	for _, k := range []int{1, 3, 10} {
		got := rt.QueryKNN(k, 500, 500)
		want := bruteForceKNN(records, k, 500, 500)
		require.Equal(t, idsOf(want), idsOf(got))
	}
}
