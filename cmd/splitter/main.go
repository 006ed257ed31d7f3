// Command splitter fans tf_data.jsonl out into per-shard plain-text term
// files, the first stage of the sharded inverted-index build (spec.md §4.2).
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"wikidex/internal/config"
	"wikidex/internal/shard"
)

var (
	tfDataPath string
	numShards  int
	outDir     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "splitter",
		Short: "Split term-frequency records into hash-partitioned shard files",
		RunE:  run,
	}

	rootCmd.Flags().StringVar(&tfDataPath, "tf-data", config.TFDataPath, "path to tf_data.jsonl")
	rootCmd.Flags().IntVar(&numShards, "shards", config.NumShards, "number of shards")
	rootCmd.Flags().StringVar(&outDir, "out-dir", config.ShardDir, "directory for temp_<i>.txt shard files")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	total, err := shard.Split(tfDataPath, outDir, numShards)
	if err != nil {
		return fmt.Errorf("splitting: %w", err)
	}
	log.Printf("split complete: %d terms across %d shards", total, numShards)
	return nil
}
