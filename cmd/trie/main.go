// Command trie builds and serves the prefix-autocomplete index described
// in spec.md §4.6, split into "build" and "serve" subcommands the way the
// original's offline build step and interactive query loop are separate
// invocations.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wikidex/internal/config"
	"wikidex/internal/corpus"
	"wikidex/internal/pagerank"
	trieindex "wikidex/internal/trie"
)

var (
	buildDocInfoPath  string
	buildPagerankPath string
	buildOutPath      string

	servePath    string
	serveVerbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "trie",
		Short: "Build or serve the prefix-autocomplete index",
	}

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build trie.bin from doc titles and PageRank scores",
		RunE:  runBuild,
	}
	buildCmd.Flags().StringVar(&buildDocInfoPath, "doc-info", config.DocInfoPath, "path to doc_info.jsonl")
	buildCmd.Flags().StringVar(&buildPagerankPath, "pagerank", config.PagerankScoresCSV, "path to pagerank_scores.csv")
	buildCmd.Flags().StringVar(&buildOutPath, "out", config.TrieBinPath, "output trie.bin path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve interactive prefix lookups against a built trie.bin",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&servePath, "trie", config.TrieBinPath, "path to trie.bin")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "print suggestion count and latency")

	rootCmd.AddCommand(buildCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	scores, err := pagerank.Load(buildPagerankPath)
	if err != nil {
		log.Printf("pagerank scores not loaded (%v); continuing with all-zero priors", err)
		scores = map[int32]float64{}
	}

	t := trieindex.New()
	count := 0
	_, err = corpus.ForEachDocInfo(buildDocInfoPath, func(d corpus.DocInfo) {
		t.Insert(d.Title, scores[d.ID], d.ID)
		count++
		if count%100000 == 0 {
			log.Printf("%d titles inserted", count)
		}
	})
	if err != nil {
		return fmt.Errorf("reading doc info: %w", err)
	}

	if err := t.Save(buildOutPath); err != nil {
		return fmt.Errorf("saving trie: %w", err)
	}

	log.Printf("trie build complete: %d titles, written to %s", count, buildOutPath)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	t, err := trieindex.Load(servePath)
	if err != nil {
		return fmt.Errorf("loading trie: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		prefix := strings.TrimSpace(scanner.Text())
		if prefix == "exit" {
			break
		}
		if prefix == "" {
			fmt.Print("> ")
			continue
		}

		start := time.Now()
		suggestions := t.Suggest(prefix, config.AutocompleteK)
		elapsed := time.Since(start)

		if serveVerbose {
			fmt.Printf("%d suggestions in %s\n", len(suggestions), elapsed)
		}
		for i, s := range suggestions {
			fmt.Printf("  [%d] %s (score %.6f)\n", i+1, s.Title, s.Score)
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}
