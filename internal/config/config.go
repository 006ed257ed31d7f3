// Package config holds the fixed paths and tuning constants every stage of
// the pipeline defaults to. The original C++ programs hard-code these as
// file-scope consts; here they're still consts, and the cmd/ binaries expose
// all of them except AutocompleteK as overridable flags.
package config

const (
	DocInfoPath       = "data_files/doc_info.jsonl"
	TFDataPath        = "data_files/tf_data.jsonl"
	PagelinksPath     = "data_files/pagelinks.csv"
	StopwordsPath     = "stopwords.txt"
	PagerankScoresCSV = "pagerank_scores.csv"

	ShardDir     = "."
	NumShards    = 32
	IndexBinPath = "index.bin"
	OffsetPath   = "offset.txt"
	TrieBinPath  = "trie.bin"

	Damping     = 0.85
	Iterations  = 20
	Tolerance   = 1e-12
	Alpha       = 0.2
	BM25K1      = 1.2
	BM25B       = 0.75
	AutocompleteK = 10
)
