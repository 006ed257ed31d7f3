// Command pagerank computes and persists PageRank scores over the
// Wikipedia link graph, per spec.md §4.1.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"wikidex/internal/config"
	"wikidex/internal/pagerank"
)

var (
	docInfoPath   string
	pagelinksPath string
	outPath       string
	damping       float64
	iterations    int
	tolerance     float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pagerank",
		Short: "Compute PageRank scores over the Wikipedia link graph",
		RunE:  run,
	}

	rootCmd.Flags().StringVar(&docInfoPath, "doc-info", config.DocInfoPath, "path to doc_info.jsonl")
	rootCmd.Flags().StringVar(&pagelinksPath, "pagelinks", config.PagelinksPath, "path to pagelinks.csv")
	rootCmd.Flags().StringVar(&outPath, "out", config.PagerankScoresCSV, "output scores CSV path")
	rootCmd.Flags().Float64Var(&damping, "damping", config.Damping, "damping factor")
	rootCmd.Flags().IntVar(&iterations, "iterations", config.Iterations, "max power-iteration rounds")
	rootCmd.Flags().Float64Var(&tolerance, "tolerance", config.Tolerance, "L1 average-delta convergence tolerance")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	valid, err := pagerank.LoadValidPageIDs(docInfoPath)
	if err != nil {
		return fmt.Errorf("loading valid page ids: %w", err)
	}

	graph, err := pagerank.BuildGraph(pagelinksPath, valid)
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}

	params := pagerank.Params{Damping: damping, Iterations: iterations, Tolerance: tolerance}
	scores := pagerank.Run(graph, params)

	if err := pagerank.Save(outPath, graph, scores); err != nil {
		return fmt.Errorf("saving scores: %w", err)
	}

	log.Printf("pagerank complete: %d nodes scored, written to %s", graph.N(), outPath)
	return nil
}
