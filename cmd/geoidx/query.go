package main

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/gprender/nearest-neighbour"
	"github.com/gprender/nearest-neighbour/internal/lidar"
)

var (
	queryK int
	queryX float64
	queryY float64
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Build an index and run a single k-NN query against it",
	RunE:  runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&inputPath, "in", "", "Path to a LiDAR text file")
	queryCmd.Flags().IntVar(&queryK, "k", 1, "Number of neighbours to return")
	queryCmd.Flags().Float64Var(&queryX, "x", 0, "Query point x")
	queryCmd.Flags().Float64Var(&queryY, "y", 0, "Query point y")
	_ = queryCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	file, err := lidar.ReadFile(inputPath)
	if err != nil {
		return errors.New("reading input").Wrap(err)
	}

	idx, _, err := buildIndex(indexKind, file, geoidx.NewMetrics(nil))
	if err != nil {
		return err
	}

	// Results come back farthest-first, matching geoidx's query contract.
	results := idx.QueryKNN(queryK, queryX, queryY)
	for i, p := range results {
		rank := len(results) - i
		fmt.Printf("#%d\tx=%.4f\ty=%.4f\tz=%.4f\n", rank, p.X, p.Y, p.Z)
	}
	return nil
}
