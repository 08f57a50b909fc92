// Command succinctbench drives the rank, select, and sparse-array APIs over
// a randomly generated bitstream and reports timing and overhead numbers as
// JSON. It is a thin consumer of the succinct package, not part of it: the
// core library never imports flag-parsing, JSON, or RNG-sweep code itself.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sakateka/succinct/bitstore"
	"github.com/sakateka/succinct/rank"
	"github.com/sakateka/succinct/selectidx"
	"github.com/sakateka/succinct/sparse"
)

// runResult is the JSON payload written to stdout (or --output) for a
// single benchmark run.
type runResult struct {
	Size           uint64        `json:"size"`
	QuerySize      int           `json:"query_size"`
	Overhead       uint64        `json:"overhead_bits"`
	SetupDuration  time.Duration `json:"setup_duration_ns"`
	QueryDuration  time.Duration `json:"query_duration_ns"`
	BlockSizeFixed bool          `json:"block_size_fixed"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var size uint64
	var querySize int
	var outfile string
	var fixedBlockSize bool

	rootCmd := &cobra.Command{
		Use:   "succinctbench",
		Short: "Benchmark rank, select, and sparse array queries over a random bitstream",
	}

	rankCmd := &cobra.Command{
		Use:   "rank",
		Short: "Build a RankIndex and time rank1 queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(logger, size, querySize, fixedBlockSize, outfile)
		},
	}
	rankCmd.Flags().Uint64Var(&size, "size", 1_000_000, "Number of bits in the bitstream")
	rankCmd.Flags().IntVar(&querySize, "query-size", 1000, "Number of rank queries to execute")
	rankCmd.Flags().BoolVar(&fixedBlockSize, "fixed-block-size", false, "Use the fixed b=64 block size policy instead of the dynamic default")
	rankCmd.Flags().StringVar(&outfile, "output", "", "Write JSON result here instead of stdout")

	selectCmd := &cobra.Command{
		Use:   "select",
		Short: "Build a SelectIndex and time select1 queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(logger, size, querySize, outfile)
		},
	}
	selectCmd.Flags().Uint64Var(&size, "size", 1_000_000, "Number of bits in the bitstream")
	selectCmd.Flags().IntVar(&querySize, "query-size", 1000, "Number of select queries to execute")
	selectCmd.Flags().StringVar(&outfile, "output", "", "Write JSON result here instead of stdout")

	sparseCmd := &cobra.Command{
		Use:   "sparse",
		Short: "Build a SparseArray and time positional queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSparse(logger, size, querySize, outfile)
		},
	}
	sparseCmd.Flags().Uint64Var(&size, "size", 1_000_000, "Logical length of the sparse array")
	sparseCmd.Flags().IntVar(&querySize, "query-size", 1000, "Number of positional queries to execute")
	sparseCmd.Flags().StringVar(&outfile, "output", "", "Write JSON result here instead of stdout")

	rootCmd.AddCommand(rankCmd, selectCmd, sparseCmd)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("succinctbench failed", "error", err)
		os.Exit(1)
	}
}

func randomBits(n uint64, rng *rand.Rand) []bool {
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = rng.Intn(2) == 1
	}
	return bits
}

func runRank(logger *slog.Logger, size uint64, querySize int, fixed bool, outfile string) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	bits := randomBits(size, rng)

	start := time.Now()
	store := bitstore.FromBits(bits)
	var idx *rank.Index
	if fixed {
		idx = rank.Build(store, rank.WithFixedBlockSize(64))
	} else {
		idx = rank.Build(store)
	}
	setupDuration := time.Since(start)

	start = time.Now()
	for i := 0; i < querySize; i++ {
		idx.Rank1(uint64(rng.Intn(int(size) + 1)))
	}
	queryDuration := time.Since(start)

	result := runResult{
		Size:           size,
		QuerySize:      querySize,
		Overhead:       idx.Overhead(),
		SetupDuration:  setupDuration,
		QueryDuration:  queryDuration,
		BlockSizeFixed: fixed,
	}
	logger.Info("rank benchmark complete", "size", size, "overhead_bits", result.Overhead)
	return writeResult(result, outfile)
}

func runSelect(logger *slog.Logger, size uint64, querySize int, outfile string) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	bits := randomBits(size, rng)

	start := time.Now()
	store := bitstore.FromBits(bits)
	idx := rank.Build(store)
	sel := selectidx.From(idx)
	setupDuration := time.Since(start)

	totalOnes := idx.Rank1(size)
	start = time.Now()
	for i := 0; i < querySize && totalOnes > 0; i++ {
		k := uint64(rng.Intn(int(totalOnes))) + 1
		sel.Select1(k)
	}
	queryDuration := time.Since(start)

	result := runResult{
		Size:          size,
		QuerySize:     querySize,
		Overhead:      sel.Overhead(),
		SetupDuration: setupDuration,
		QueryDuration: queryDuration,
	}
	logger.Info("select benchmark complete", "size", size, "overhead_bits", result.Overhead)
	return writeResult(result, outfile)
}

func runSparse(logger *slog.Logger, size uint64, querySize int, outfile string) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	start := time.Now()
	builder := sparse.Create[uint64](size)
	for pos := uint64(0); pos < size; pos++ {
		if rng.Intn(10) == 0 {
			builder.Append(pos, pos)
		}
	}
	arr := builder.Finalize()
	setupDuration := time.Since(start)

	start = time.Now()
	for i := 0; i < querySize; i++ {
		arr.GetAtIndex(uint64(rng.Intn(int(size))))
	}
	queryDuration := time.Since(start)

	result := runResult{
		Size:          size,
		QuerySize:     querySize,
		Overhead:      arr.Overhead(),
		SetupDuration: setupDuration,
		QueryDuration: queryDuration,
	}
	logger.Info("sparse benchmark complete", "size", size, "num_elem", arr.NumElem())
	return writeResult(result, outfile)
}

func writeResult(result runResult, outfile string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("succinctbench: failed to marshal result: %w", err)
	}

	if outfile == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(outfile, data, 0o644); err != nil {
		return fmt.Errorf("succinctbench: failed to write %s: %w", outfile, err)
	}
	return nil
}
