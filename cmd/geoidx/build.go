package main

import (
	"fmt"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/spf13/cobra"

	"github.com/gprender/nearest-neighbour"
	"github.com/gprender/nearest-neighbour/internal/lidar"
)

var inputPath string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an index over a LiDAR text file and report its size",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&inputPath, "in", "", "Path to a LiDAR text file")
	_ = buildCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	file, err := lidar.ReadFile(inputPath)
	if err != nil {
		return errors.New("reading input").Wrap(err)
	}

	m := geoidx.NewMetrics(nil)
	start := time.Now()
	_, summary, err := buildIndex(indexKind, file, m)
	if err != nil {
		return err
	}

	logs.WithTag("index", indexKind).
		WithTag("points", len(file.Points)).
		WithTag("elapsed", time.Since(start)).
		Info("build complete")
	fmt.Printf("%s: %d points -> %s in %s\n", indexKind, len(file.Points), summary, time.Since(start))
	return nil
}
