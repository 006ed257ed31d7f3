package index

import (
	"log"
	"math"
	"os"
	"sort"
	"strings"

	"wikidex/internal/corpus"
	"wikidex/internal/shard"
)

// BM25Params bundles k1/b, the saturation and length-normalization
// parameters, and alpha, the weight given to the PageRank prior.
type BM25Params struct {
	K1    float64
	B     float64
	Alpha float64
}

// DefaultBM25Params matches spec.md §4.5's k1=1.2, b=0.75, alpha=0.2.
func DefaultBM25Params() BM25Params {
	return BM25Params{K1: 1.2, B: 0.75, Alpha: 0.2}
}

// Evaluator holds the immutable, once-per-process state the query pipeline
// needs: doc metadata, the offset table, the open index file, and PageRank
// scores. Per spec.md design notes, this replaces the teacher's/original's
// process-wide globals with an explicit context object threaded through
// query handling.
type Evaluator struct {
	docs         map[int32]corpus.DocInfo
	avgDocLength float64
	offsets      map[string]int64
	indexPath    string
	totalDocs    int32
	pagerank     map[int32]float64
	params       BM25Params
}

// NewEvaluator loads doc metadata, computes avg_doc_length, and opens the
// index binary, per spec.md §4.5's "Preparation" step.
func NewEvaluator(docInfoPath, offsetPath, indexBinPath string, pagerank map[int32]float64, params BM25Params) (*Evaluator, error) {
	docs, skipped, err := corpus.CollectDocInfo(docInfoPath)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		log.Printf("skipped %d malformed doc-info lines", skipped)
	}

	var totalLength int64
	for _, d := range docs {
		totalLength += int64(d.Len)
	}
	avgDocLength := 0.0
	if len(docs) > 0 {
		avgDocLength = float64(totalLength) / float64(len(docs))
	}
	log.Printf("titles loaded, total unique docs: %d", len(docs))

	offsets, err := LoadOffsets(offsetPath)
	if err != nil {
		return nil, err
	}

	f, totalDocs, err := OpenIndex(indexBinPath)
	if err != nil {
		return nil, err
	}
	f.Close() // re-opened per query via indexPath; keeps no long-lived fd open between queries

	log.Printf("total documents: %d", totalDocs)

	return &Evaluator{
		docs:         docs,
		avgDocLength: avgDocLength,
		offsets:      offsets,
		indexPath:    indexBinPath,
		totalDocs:    totalDocs,
		pagerank:     pagerank,
		params:       params,
	}, nil
}

// Result is one ranked document in a query response.
type Result struct {
	DocID int32
	Score float64
	Title string
}

// Search retrieves postings for each query term, scores with BM25 +
// PageRank, sorts descending, and returns the top 10, filtering out
// "disambiguation" titles. stemTerms is the already-tokenized/stopword-
// filtered/stemmed query term list; tokenization, lowercasing, stop-word
// removal and stemming are done before the call (internal/stem).
func (e *Evaluator) Search(stemTerms []string) ([]Result, error) {
	f, err := os.Open(e.indexPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	docScores := make(map[int32]float64)

	for _, term := range stemTerms {
		offset, ok := e.offsets[term]
		if !ok {
			continue // unknown term: normal empty contribution, not an error
		}

		if _, err := f.Seek(offset, 0); err != nil {
			// I/O error mid-seek: skip this term, per spec.md §7
			continue
		}

		postings, err := shard.ReadPostingList(f, e.totalDocs)
		if err != nil {
			log.Printf("skipping term %q: %v", term, err)
			continue
		}

		df := len(postings)
		idf := math.Log((float64(e.totalDocs-int32(df)) + 0.5) / (float64(df) + 0.5))
		if idf < 0 {
			idf = 0
		}

		for _, p := range postings {
			// Unknown doc: fall back to avg_doc_length truncated to int,
			// matching the original's `int(avg_doc_length)` (search.cpp).
			docLen := math.Trunc(e.avgDocLength)
			if d, ok := e.docs[p.DocID]; ok {
				docLen = float64(d.Len)
			}

			rawFreq := float64(p.TFScore) * docLen
			numerator := rawFreq * (e.params.K1 + 1)
			denominator := rawFreq + e.params.K1*(1-e.params.B+e.params.B*(docLen/e.avgDocLength))
			bm25 := idf * (numerator / denominator)

			pg := e.pagerank[p.DocID]
			pgNorm := math.Log(1 + pg*float64(len(e.pagerank)))

			docScores[p.DocID] += bm25 + e.params.Alpha*pgNorm
		}
	}

	if len(docScores) == 0 {
		return nil, nil
	}

	results := make([]Result, 0, len(docScores))
	for id, score := range docScores {
		results = append(results, Result{DocID: id, Score: score, Title: e.title(id)})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return filterDisambiguation(results, 10), nil
}

func (e *Evaluator) title(id int32) string {
	if d, ok := e.docs[id]; ok {
		return d.Title
	}
	return "Unknown Title"
}

// filterDisambiguation drops titles containing "disambiguation" and
// truncates to limit, per spec.md §4.5 step 4 and Scenario E.
func filterDisambiguation(results []Result, limit int) []Result {
	out := make([]Result, 0, limit)
	for _, r := range results {
		if strings.Contains(strings.ToLower(r.Title), "disambiguation") {
			continue
		}
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	return out
}
