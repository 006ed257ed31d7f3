package index

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"wikidex/internal/shard"
)

func buildTestIndex(t *testing.T, dir string, postingsByTerm map[string][]shard.Posting, totalDocs int32) (string, string) {
	t.Helper()
	binPath := filepath.Join(dir, "index.bin")
	offsetPath := filepath.Join(dir, "offset.txt")

	binFile, err := os.Create(binPath)
	require.NoError(t, err)
	defer binFile.Close()

	require.NoError(t, binary.Write(binFile, binary.LittleEndian, totalDocs))

	offsetFile, err := os.Create(offsetPath)
	require.NoError(t, err)
	defer offsetFile.Close()

	pos := int64(4)
	for term, postings := range postingsByTerm {
		_, err := offsetFile.WriteString(term + " " + strconv.FormatInt(pos, 10) + "\n")
		require.NoError(t, err)
		require.NoError(t, shard.WritePostingList(binFile, postings))
		pos += 4 + int64(len(postings))*shard.PostingSize
	}

	return binPath, offsetPath
}

// bm25Contribution reimplements the per-posting scoring formula directly,
// independent of Evaluator.Search, so it can be property-tested (Testable
// Property 4) without needing an index file on disk.
func bm25Contribution(idf, rawFreq, docLen, avgDocLength, k1, b float64) float64 {
	numerator := rawFreq * (k1 + 1)
	denominator := rawFreq + k1*(1-b+b*(docLen/avgDocLength))
	return idf * (numerator / denominator)
}

func TestBM25MonotonicityInRawFreq(t *testing.T) {
	idf := 2.0
	docLen := 200.0
	avgDocLength := 100.0
	k1, b := 1.2, 0.75

	prev := -1.0
	for rawFreq := 0.0; rawFreq <= 50; rawFreq++ {
		score := bm25Contribution(idf, rawFreq, docLen, avgDocLength, k1, b)
		require.GreaterOrEqual(t, score, prev-1e-9)
		prev = score
	}
}

// Scenario C: BM25 scoring with PageRank blend.
func TestScenarioCBM25WithPageRankBlend(t *testing.T) {
	totalDocs := int64(1000)
	df := int64(10)
	idf := math.Log((float64(totalDocs-df) + 0.5) / (float64(df) + 0.5))
	require.InDelta(t, 4.547, idf, 0.01)

	docLen := 200.0
	avgDocLength := 100.0
	tfNorm := 0.02
	rawFreq := tfNorm * docLen
	require.InDelta(t, 4.0, rawFreq, 1e-9)

	// 4.547 * (4*2.2) / (4 + 1.2*(0.25 + 0.75*2)) = 4.547 * 8.8 / 6.1
	bm25 := bm25Contribution(idf, rawFreq, docLen, avgDocLength, 1.2, 0.75)
	require.InDelta(t, 6.559, bm25, 0.05)

	pg := 1e-4
	numPageranks := 1000.0
	pgNorm := math.Log(1 + pg*numPageranks)
	require.InDelta(t, 0.0953, pgNorm, 0.001)

	total := bm25 + 0.2*pgNorm
	require.InDelta(t, 6.578, total, 0.05)
}

// Scenario E: disambiguation filter.
func TestScenarioEDisambiguationFilter(t *testing.T) {
	results := []Result{
		{DocID: 1, Score: 10, Title: "Java"},
		{DocID: 2, Score: 9, Title: "Java (disambiguation)"},
		{DocID: 3, Score: 8, Title: "Java programming language"},
	}

	filtered := filterDisambiguation(results, 10)
	require.Len(t, filtered, 2)
	require.Equal(t, "Java", filtered[0].Title)
	require.Equal(t, "Java programming language", filtered[1].Title)
}

func TestFilterDisambiguationTruncatesToLimit(t *testing.T) {
	var results []Result
	for i := 0; i < 15; i++ {
		results = append(results, Result{DocID: int32(i), Score: float64(15 - i), Title: "Doc"})
	}
	require.Len(t, filterDisambiguation(results, 10), 10)
}

func TestNewEvaluatorAndSearchEndToEnd(t *testing.T) {
	dir := t.TempDir()

	docInfoPath := filepath.Join(dir, "doc_info.jsonl")
	require.NoError(t, os.WriteFile(docInfoPath, []byte(
		`{"id":1,"title":"Alpha Centauri","len":200}
{"id":2,"title":"Beta Fish","len":150}
`), 0o644))

	postingsByTerm := map[string][]shard.Posting{
		"alpha": {{DocID: 1, TFScore: 0.02}, {DocID: 2, TFScore: 0.01}},
	}
	binPath, offsetPath := buildTestIndex(t, dir, postingsByTerm, 2)

	eval, err := NewEvaluator(docInfoPath, offsetPath, binPath, map[int32]float64{1: 1e-4}, DefaultBM25Params())
	require.NoError(t, err)

	results, err := eval.Search([]string{"alpha"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, int32(1), results[0].DocID)
}

func TestSearchUnknownTermIsEmptyNotError(t *testing.T) {
	dir := t.TempDir()
	docInfoPath := filepath.Join(dir, "doc_info.jsonl")
	require.NoError(t, os.WriteFile(docInfoPath, []byte(`{"id":1,"title":"Alpha","len":10}`+"\n"), 0o644))

	binPath, offsetPath := buildTestIndex(t, dir, map[string][]shard.Posting{
		"alpha": {{DocID: 1, TFScore: 0.1}},
	}, 1)

	eval, err := NewEvaluator(docInfoPath, offsetPath, binPath, nil, DefaultBM25Params())
	require.NoError(t, err)

	results, err := eval.Search([]string{"nonexistent"})
	require.NoError(t, err)
	require.Nil(t, results)
}
