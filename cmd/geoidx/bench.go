package main

import (
	"fmt"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gprender/nearest-neighbour"
	"github.com/gprender/nearest-neighbour/internal/lidar"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Build all three index kinds over the same data and time k-NN queries",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().StringVar(&inputPath, "in", "", "Path to a LiDAR text file")
	_ = benchCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(benchCmd)
}

// benchKinds mirrors the three index variants exercised by the reference
// timing harness this command replaces.
var benchKinds = []string{"quadtree", "zgrid", "rtree"}

// benchKValues is the k-NN battery the reference timing harness ran.
var benchKValues = []int{1, 8, 16, 32}

func runBench(cmd *cobra.Command, args []string) error {
	file, err := lidar.ReadFile(inputPath)
	if err != nil {
		return errors.New("reading input").Wrap(err)
	}

	cx := (file.Bounds.Xmin + file.Bounds.Xmax) / 2
	cy := (file.Bounds.Ymin + file.Bounds.Ymax) / 2

	fmt.Printf("%d points, bounds x[%.2f,%.2f] y[%.2f,%.2f]\n\n",
		len(file.Points), file.Bounds.Xmin, file.Bounds.Xmax, file.Bounds.Ymin, file.Bounds.Ymax)

	m := geoidx.NewMetrics(nil)
	for _, kind := range benchKinds {
		start := time.Now()
		idx, summary, err := buildIndex(kind, file, m)
		if err != nil {
			return err
		}
		fmt.Printf("%s: build %s -> %s\n", kind, time.Since(start), summary)

		for _, k := range benchKValues {
			qStart := time.Now()
			idx.QueryKNN(k, cx, cy)
			fmt.Printf("\tk=%d: %s\n", k, time.Since(qStart))
		}
		fmt.Println()
	}
	return nil
}
