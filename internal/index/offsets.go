// Package index implements the query-time side of the pipeline: loading
// the term offset table and index.bin, and scoring postings with BM25
// blended against a PageRank prior, per spec.md §4.5.
package index

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// LoadOffsets reads a "term absolute_byte_offset" offset.txt into a map.
func LoadOffsets(path string) (map[string]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	offsets := make(map[string]int64)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var term string
		var pos int64
		if _, err := fmt.Sscanf(scanner.Text(), "%s %d", &term, &pos); err != nil {
			continue
		}
		offsets[term] = pos
	}
	return offsets, scanner.Err()
}

// OpenIndex opens index.bin and reads its total_docs header; a header that
// cannot be read is an error. The header's value is not range-checked.
func OpenIndex(path string) (*os.File, int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	var totalDocs int32
	if err := binary.Read(f, binary.LittleEndian, &totalDocs); err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("could not read total_docs header: %w", err)
	}
	return f, totalDocs, nil
}
