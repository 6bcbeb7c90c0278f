// Command ordoctl drives the evolutionary fitness and selection engine from
// the shell. Most subcommands load a population file, call the engine, and
// print the result as JSON so output composes with jq and friends.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ordo/internal/evo"
	"ordo/internal/storage"
	"ordo/pkg/ordo"
)

var (
	flagStore        string
	flagDBPath       string
	flagSeed         int64
	flagArtifactsDir string
	flagWeights      string
	flagThreshold    float64
	flagVerbose      bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "ordoctl",
	Short: "ordoctl — fitness, selection, and population analytics for agent populations",
	Long: `ordoctl evaluates agent populations along five fitness dimensions,
runs selection (tournament, roulette, elite), partitions populations into
species, and tracks growth, diversity, and novel behaviors across ticks.

Population files are YAML or JSON documents with a top-level "entities" list.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if flagVerbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db-path", "ordo.db", "sqlite database path")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "random seed for stochastic selection (0 = time-based)")
	rootCmd.PersistentFlags().StringVar(&flagArtifactsDir, "artifacts-dir", "artifacts", "directory for exported run artifacts")
	rootCmd.PersistentFlags().StringVar(&flagWeights, "weights", "", "aggregate fitness weights as survival,earnings,offspring,adaptation,innovation")
	rootCmd.PersistentFlags().Float64Var(&flagThreshold, "threshold", 0, "speciation similarity threshold (0 = default)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
}

func newClient(cmd *cobra.Command) (*ordo.Client, error) {
	opts := ordo.Options{
		StoreKind:           flagStore,
		DBPath:              flagDBPath,
		ArtifactsDir:        flagArtifactsDir,
		Seed:                flagSeed,
		SimilarityThreshold: flagThreshold,
		Logger:              logger,
	}
	if flagWeights != "" {
		w, err := parseWeights(flagWeights)
		if err != nil {
			return nil, err
		}
		opts.Weights = &w
	}
	return ordo.New(cmd.Context(), opts)
}

func parseWeights(s string) (evo.Weights, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 5 {
		return evo.Weights{}, fmt.Errorf("weights: want 5 comma-separated values, got %d", len(parts))
	}
	vals := make([]float64, 5)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return evo.Weights{}, fmt.Errorf("weights: %w", err)
		}
		vals[i] = v
	}
	w := evo.Weights{
		Survival:   vals[0],
		Earnings:   vals[1],
		Offspring:  vals[2],
		Adaptation: vals[3],
		Innovation: vals[4],
	}
	if err := w.Validate(); err != nil {
		return evo.Weights{}, err
	}
	return w, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
