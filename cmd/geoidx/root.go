package main

import (
	"os"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/spf13/cobra"
)

var (
	indexKind    string
	leafCapacity int
	gridDepth    int
	fanout       int
)

var rootCmd = &cobra.Command{
	Use:   "geoidx",
	Short: "Build and query 2D point indexes over LiDAR-style data",
	Long: `geoidx builds a Quadtree, Z-grid, or R-tree over a LiDAR text file and
runs k-nearest-neighbour queries against it.

Example usage:
  geoidx build --in reg2048.txt --index quadtree
  geoidx query --in reg2048.txt --index rtree --k 8 --x 100 --y 150
  geoidx bench --in rand100k.txt`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logs.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&indexKind, "index", "quadtree", "Index kind: quadtree|zgrid|rtree")
	rootCmd.PersistentFlags().IntVar(&leafCapacity, "leaf-capacity", 16, "Quadtree leaf capacity")
	rootCmd.PersistentFlags().IntVar(&gridDepth, "depth", 6, "ZGrid target depth (tree height, 2^depth grid resolution)")
	rootCmd.PersistentFlags().IntVar(&fanout, "fanout", 8, "RTree max entries per node (M)")
}
