// Package geoidx implements in-memory 2D point indexes for static point
// clouds, with bulk construction and best-first k-nearest-neighbour queries.
//
// Three index variants are provided, all generic over a user payload type:
//
//   - Quadtree: adaptive recursive space partition, leaf-capacity driven.
//   - ZGrid: flat uniform grid at a fixed resolution, keyed by Z-order code.
//   - RTree: dynamic point-insertion tree with quadratic-split overflow
//     handling.
//
// All three share the same spatial primitives (Point, Rectangle, distance
// functions) and the same priority-queue-driven k-NN traversal, so query
// results are ordered identically regardless of which index produced them.
package geoidx
