package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gprender/nearest-neighbour/internal/lidar"
)

func writeSampleFile(t *testing.T) *lidar.File {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	contents := "% min x y z 0 0 0\n% max x y z 100 100 10\n" +
		"10 10 1\n20 20 2\n30 30 3\n40 40 4\n50 50 5\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	f, err := lidar.ReadFile(path)
	require.NoError(t, err)
	return f
}

func TestBuildIndexAllKinds(t *testing.T) {
	file := writeSampleFile(t)
	for _, kind := range []string{"quadtree", "zgrid", "rtree"} {
		leafCapacity, gridDepth, fanout = 16, 4, 8
		idx, summary, err := buildIndex(kind, file, nil)
		require.NoError(t, err, kind)
		require.NotEmpty(t, summary, kind)

		results := idx.QueryKNN(2, 25, 25)
		require.Len(t, results, 2, kind)
	}
}

func TestBuildIndexUnknownKind(t *testing.T) {
	file := writeSampleFile(t)
	_, _, err := buildIndex("unknown", file, nil)
	require.Error(t, err)
}
