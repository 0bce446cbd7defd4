package geoidx

import "math"

// Point is a 2D coordinate pair. Coordinates are float64 so LiDAR-scale
// values keep their full 53-bit mantissa.
type Point struct {
	X, Y float64
}

// Rectangle is an axis-aligned bounding box. A degenerate (zero-area)
// rectangle, where Xmin == Xmax or Ymin == Ymax, is valid: a point is a
// rectangle with Xmin == Xmax and Ymin == Ymax.
type Rectangle struct {
	Xmin, Xmax, Ymin, Ymax float64
}

// Range is a half-open-or-inclusive index range into a leaves vector; the
// exact semantics differ between index types, but Start <= End always holds.
type Range struct {
	Start, End int
}

// Datum pairs a user payload with its projected 2D point. The payload is
// immutable once ingested.
type Datum[T any] struct {
	Point Point
	Data  T
}

// Midpoint returns the componentwise mean of a rectangle's corners.
func Midpoint(r Rectangle) Point {
	return Point{
		X: (r.Xmin + r.Xmax) / 2,
		Y: (r.Ymin + r.Ymax) / 2,
	}
}

// Distance returns the Euclidean distance between two points.
func Distance(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceToRect returns the minimum Euclidean distance from p to r; zero
// iff p is contained in or on the boundary of r.
func DistanceToRect(p Point, r Rectangle) float64 {
	dx := math.Max(r.Xmin-p.X, p.X-r.Xmax)
	dy := math.Max(r.Ymin-p.Y, p.Y-r.Ymax)
	dx = math.Max(dx, 0)
	dy = math.Max(dy, 0)
	return math.Sqrt(dx*dx + dy*dy)
}

// Area returns the area of a rectangle. May be zero for a degenerate
// rectangle.
func Area(r Rectangle) float64 {
	return (r.Xmax - r.Xmin) * (r.Ymax - r.Ymin)
}

// MinBoundingBoxPoint returns the smallest rectangle containing both r and p.
func MinBoundingBoxPoint(r Rectangle, p Point) Rectangle {
	return Rectangle{
		Xmin: math.Min(r.Xmin, p.X),
		Xmax: math.Max(r.Xmax, p.X),
		Ymin: math.Min(r.Ymin, p.Y),
		Ymax: math.Max(r.Ymax, p.Y),
	}
}

// MinBoundingBoxRect returns the smallest rectangle containing both r1 and r2.
func MinBoundingBoxRect(r1, r2 Rectangle) Rectangle {
	return Rectangle{
		Xmin: math.Min(r1.Xmin, r2.Xmin),
		Xmax: math.Max(r1.Xmax, r2.Xmax),
		Ymin: math.Min(r1.Ymin, r2.Ymin),
		Ymax: math.Max(r1.Ymax, r2.Ymax),
	}
}

// ContainsRect reports whether outer contains inner, closed-interval.
func ContainsRect(outer, inner Rectangle) bool {
	return outer.Xmin <= inner.Xmin &&
		outer.Xmax >= inner.Xmax &&
		outer.Ymin <= inner.Ymin &&
		outer.Ymax >= inner.Ymax
}

// ContainsPoint reports whether r contains p, closed-interval.
func ContainsPoint(r Rectangle, p Point) bool {
	return r.Xmin <= p.X && r.Xmax >= p.X && r.Ymin <= p.Y && r.Ymax >= p.Y
}

// GridIndex returns the integer cell index of coord along one axis of a
// range [min,max] divided into dim equal partitions.
func GridIndex(coord, min, max float64, dim int) int {
	return int((coord - min) * float64(dim) / (max - min))
}

// spreadBits spaces a 16-bit integer out into 32 bits, interleaving zeros
// between each original bit: e.g. 1111 -> 01010101.
func spreadBits(v uint32) uint32 {
	v = (v | (v << 8)) & 0x00FF00FF
	v = (v | (v << 4)) & 0x0F0F0F0F
	v = (v | (v << 2)) & 0x33333333
	v = (v | (v << 1)) & 0x55555555
	return v
}

// Interleave bit-interleaves two 16-bit integers into a 32-bit Z-order code:
// bit 2i comes from a's bit i, bit 2i+1 from b's bit i.
func Interleave(a, b uint16) uint32 {
	return spreadBits(uint32(a)) | (spreadBits(uint32(b)) << 1)
}
