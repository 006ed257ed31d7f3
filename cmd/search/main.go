// Command search runs the interactive query REPL described in spec.md §5:
// reads free-text queries from stdin, stems and scores them against the
// merged index, and prints the top results until EOF or a literal "exit".
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
	"wikidex/internal/index"
	"wikidex/internal/pagerank"
	"wikidex/internal/querylog"
	"wikidex/internal/stem"
)

var (
	indexPath     string
	offsetPath    string
	docInfoPath   string
	pagerankPath  string
	stopwordsPath string
	alpha         float64
	k1            float64
	b             float64
	verbose       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "search",
		Short: "Interactively answer ranked free-text queries over the merged index",
		RunE:  run,
	}

	rootCmd.Flags().StringVar(&indexPath, "index", config.IndexBinPath, "path to index.bin")
	rootCmd.Flags().StringVar(&offsetPath, "offsets", config.OffsetPath, "path to offset.txt")
	rootCmd.Flags().StringVar(&docInfoPath, "doc-info", config.DocInfoPath, "path to doc_info.jsonl")
	rootCmd.Flags().StringVar(&pagerankPath, "pagerank", config.PagerankScoresCSV, "path to pagerank_scores.csv")
	rootCmd.Flags().StringVar(&stopwordsPath, "stopwords", config.StopwordsPath, "path to an extra stopwords.txt")
	rootCmd.Flags().Float64Var(&alpha, "alpha", config.Alpha, "PageRank prior weight")
	rootCmd.Flags().Float64Var(&k1, "k1", config.BM25K1, "BM25 term-frequency saturation parameter")
	rootCmd.Flags().Float64Var(&b, "b", config.BM25B, "BM25 length-normalization parameter")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "print stemmed query terms, result count and timing")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	scores, err := pagerank.Load(pagerankPath)
	if err != nil {
		log.Printf("pagerank scores not loaded (%v); continuing with all-zero priors", err)
		scores = map[int32]float64{}
	}

	params := index.BM25Params{K1: k1, B: b, Alpha: alpha}
	evaluator, err := index.NewEvaluator(docInfoPath, offsetPath, indexPath, scores, params)
	if err != nil {
		return fmt.Errorf("preparing evaluator: %w", err)
	}

	stemmer := stem.New(stopwordsPath)

	qlog, err := querylog.Open("querylog.db")
	if err != nil {
		log.Printf("querylog not opened (%v); queries will not be recorded", err)
		qlog = nil
	} else {
		defer qlog.Close()
	}

	return repl(os.Stdin, os.Stdout, evaluator, stemmer, qlog)
}

func repl(in *os.File, out *os.File, evaluator *index.Evaluator, stemmer *stem.Stemmer, qlog *querylog.Log) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" {
			break
		}
		if line == "" {
			fmt.Fprint(out, "> ")
			continue
		}

		terms := stemmer.Process(line)
		if verbose {
			fmt.Fprintf(out, "stemmed terms: %v\n", terms)
		}

		start := time.Now()
		results, err := evaluator.Search(terms)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(out, "search error: %v\n", err)
			fmt.Fprint(out, "> ")
			continue
		}

		if verbose {
			fmt.Fprintf(out, "%d results in %s\n", len(results), elapsed)
		}

		if len(results) == 0 {
			fmt.Fprintln(out, "No results found.")
		}
		for i, r := range results {
			fmt.Fprintln(out, index.FormatResult(i+1, r))
		}

		if qlog != nil {
			rows := make([]querylog.ResultRow, len(results))
			for i, r := range results {
				rows[i] = querylog.ResultRow{Rank: i + 1, DocID: r.DocID, Title: r.Title, Score: r.Score}
			}
			if err := qlog.Record(line, elapsed, rows); err != nil {
				log.Printf("querylog record failed: %v", err)
			}
		}

		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}
