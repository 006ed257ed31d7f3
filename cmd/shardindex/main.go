// Command shardindex builds one shard's binary posting chunk from its
// temp_<id>.txt file, per spec.md §4.3. It takes the shard id as a
// positional argument, matching the original's argv[1] convention.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"wikidex/internal/config"
	"wikidex/internal/shard"
)

var shardDir string

func main() {
	rootCmd := &cobra.Command{
		Use:   "shardindex <shard-id>",
		Short: "Build one shard's binary posting chunk",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}

	rootCmd.Flags().StringVar(&shardDir, "shard-dir", config.ShardDir, "directory holding temp_<id>.txt and receiving chunk_<id>.bin")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid shard id %q: %w", args[0], err)
	}

	if err := shard.IndexShard(shardDir, id); err != nil {
		return fmt.Errorf("indexing shard %d: %w", id, err)
	}
	return nil
}
