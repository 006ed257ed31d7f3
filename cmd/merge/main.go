// Command merge concatenates per-shard binary chunks into the single
// index.bin/offset.txt pair the query evaluator reads, per spec.md §4.4.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"wikidex/internal/config"
	"wikidex/internal/corpus"
	"wikidex/internal/shard"
)

var (
	numShards     int
	shardDir      string
	indexOutPath  string
	offsetOutPath string
	totalDocs     int
	docInfoPath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge per-shard chunks into one global index",
		RunE:  run,
	}

	rootCmd.Flags().IntVar(&numShards, "shards", config.NumShards, "number of shards")
	rootCmd.Flags().StringVar(&shardDir, "shard-dir", config.ShardDir, "directory holding chunk_<i>.bin / chunk_offsets_<i>.txt")
	rootCmd.Flags().StringVar(&indexOutPath, "index-out", config.IndexBinPath, "merged index.bin output path")
	rootCmd.Flags().StringVar(&offsetOutPath, "offset-out", config.OffsetPath, "merged offset.txt output path")
	rootCmd.Flags().IntVar(&totalDocs, "total-docs", 0, "total document count header; 0 derives it from doc_info.jsonl")
	rootCmd.Flags().StringVar(&docInfoPath, "doc-info", config.DocInfoPath, "path to doc_info.jsonl, used when --total-docs is 0")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	docs := totalDocs
	if docs == 0 {
		count := 0
		_, err := corpus.ForEachDocInfo(docInfoPath, func(d corpus.DocInfo) {
			count++
		})
		if err != nil {
			return fmt.Errorf("deriving total docs from %s: %w", docInfoPath, err)
		}
		docs = count
		log.Printf("derived total docs from doc_info.jsonl: %d", docs)
	}

	if err := shard.Merge(shardDir, numShards, int32(docs), indexOutPath, offsetOutPath); err != nil {
		return fmt.Errorf("merging: %w", err)
	}

	log.Printf("merge complete: %s, %s", indexOutPath, offsetOutPath)
	return nil
}
