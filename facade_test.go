package geoidx

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type xyRecord struct {
	x, y float64
}

func (r xyRecord) XY() (float64, float64) { return r.x, r.y }

func TestProjectLocated(t *testing.T) {
	p := ProjectLocated(xyRecord{x: 3, y: 4})
	require.Equal(t, Point{X: 3, Y: 4}, p)
}

func TestProjectSlice(t *testing.T) {
	p := ProjectSlice([]float64{1, 2, 99})
	require.Equal(t, Point{X: 1, Y: 2}, p)
}

func TestBuildQuadtreeFacadeRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	records := []xyRecord{{0, 0}, {1, 1}, {2, 2}}

	qt := BuildQuadtree[xyRecord](Rectangle{0, 10, 0, 10}, 2, records, ProjectLocated[xyRecord], m)
	require.NotNil(t, qt)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestBuildZGridFacade(t *testing.T) {
	records := []xyRecord{{0, 0}, {1, 1}, {2, 2}}
	zg := BuildZGrid[xyRecord](Rectangle{0, 10, 0, 10}, 3, records, ProjectLocated[xyRecord], nil)
	require.Equal(t, 1<<6, zg.Size())
}

func TestBuildRTreeFacade(t *testing.T) {
	records := []xyRecord{{0, 0}, {1, 1}, {2, 2}}
	rt := BuildRTree[xyRecord](4, records, ProjectLocated[xyRecord], nil)
	require.Equal(t, 3, rt.Load())
}

func TestTimedQueryForwardsResult(t *testing.T) {
	records := []xyRecord{{0, 0}, {5, 5}}
	qt := BuildQuadtree[xyRecord](Rectangle{0, 10, 0, 10}, 16, records, ProjectLocated[xyRecord], nil)

	got := TimedQuery[xyRecord](nil, "quadtree", 1, qt.QueryKNN, 0, 0)
	require.Len(t, got, 1)
	require.Equal(t, xyRecord{0, 0}, got[0])
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.observeBuild("quadtree", 0)
		m.observeQuery("quadtree", 0)
		m.observeSize("quadtree", 0)
	})
}
