package lidar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestReadFileParsesHeaderAndBody(t *testing.T) {
	path := writeTempFile(t, "% min x y z 0 0 -1\n% max x y z 10 10 5\n0 0 0\n1 1 1\n5 5 2.5\n")
	f, err := ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, 0.0, f.Bounds.Xmin)
	require.Equal(t, 10.0, f.Bounds.Xmax)
	require.Equal(t, -1.0, f.ZMin)
	require.Equal(t, 5.0, f.ZMax)
	require.Len(t, f.Points, 3)
	require.Equal(t, Point{X: 5, Y: 5, Z: 2.5}, f.Points[2])
}

func TestReadFileMissingHeaderErrors(t *testing.T) {
	path := writeTempFile(t, "0 0 0\n1 1 1\n")
	_, err := ReadFile(path)
	require.Error(t, err)
}

func TestReadFileSkipsBlankBodyLines(t *testing.T) {
	path := writeTempFile(t, "% min x y z 0 0 0\n% max x y z 10 10 10\n1 1 1\n\n2 2 2\n")
	f, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, f.Points, 2)
}

func TestPointXY(t *testing.T) {
	p := Point{X: 3, Y: 4, Z: 5}
	x, y := p.XY()
	require.Equal(t, 3.0, x)
	require.Equal(t, 4.0, y)
}
