// Package stem implements the query-time token pipeline: lowercase, drop
// stop words, stem. spec.md §6 treats the stemmer as an external oracle
// (the original shells out to a Python script via popen); here it's linked
// in-process via github.com/kljensen/snowball, satisfying the same
// `stem: string -> string`, deterministic, idempotent contract.
package stem

import (
	"bufio"
	"log"
	"os"
	"strings"

	"github.com/kljensen/snowball"
	"github.com/orsinium-labs/stopwords"
)

// Stemmer holds the stop-word set consulted before stemming. The base set
// comes from github.com/orsinium-labs/stopwords; an optional on-disk
// stopwords.txt (spec.md §6) extends it, matching the teacher's
// loadStopWordsFromFile but layered on a maintained word list instead of
// starting from nothing.
type Stemmer struct {
	extra map[string]bool
}

// New builds a Stemmer backed by the built-in English stop-word list,
// optionally extended by the words in stopwordsPath (a missing file is
// tolerated: a stopwords file is an enrichment, not a hard requirement).
func New(stopwordsPath string) *Stemmer {
	s := &Stemmer{extra: make(map[string]bool)}

	if stopwordsPath == "" {
		return s
	}
	f, err := os.Open(stopwordsPath)
	if err != nil {
		log.Printf("stopwords file not loaded: %v", err)
		return s
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	extra := 0
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		s.extra[strings.ToLower(word)] = true
		extra++
	}
	log.Printf("loaded %d extra stop words from %s", extra, stopwordsPath)
	return s
}

// IsStopWord reports whether word (already lowercased) should be dropped
// from a query before stemming.
func (s *Stemmer) IsStopWord(word string) bool {
	return stopwords.English.IsStopWord(word) || s.extra[word]
}

// Stem returns the Snowball (Porter2) stem of an already-lowercased,
// non-stop-word token.
func (s *Stemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}

// Process tokenizes text on whitespace, lowercases, drops stop words, and
// stems each surviving token, per spec.md §4.5 step 1.
func (s *Stemmer) Process(text string) []string {
	fields := strings.Fields(text)
	terms := make([]string, 0, len(fields))
	for _, raw := range fields {
		lower := strings.ToLower(raw)
		if s.IsStopWord(lower) {
			continue
		}
		terms = append(terms, s.Stem(lower))
	}
	return terms
}
