package shard

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// IndexShard reads a single shard's temp_<id>.txt lines ("term doc_id
// score") and writes chunk_<id>.bin (a contiguous run of
// [doc_freq][postings...] blocks) plus chunk_offsets_<id>.txt (term ->
// chunk-relative byte offset), per spec.md §4.3. Posting order within a
// term is insertion order from the shard file; terms are written to the
// chunk in the order they first appear in the shard file.
func IndexShard(shardDir string, id int) error {
	inPath := filepath.Join(shardDir, fmt.Sprintf("temp_%d.txt", id))
	binPath := filepath.Join(shardDir, fmt.Sprintf("chunk_%d.bin", id))
	offsetPath := filepath.Join(shardDir, fmt.Sprintf("chunk_offsets_%d.txt", id))

	log.Printf("processing shard %d", id)

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("could not open input file: %w", err)
	}
	defer in.Close()

	index := make(map[string][]Posting)
	order := make([]string, 0)

	scanner := bufio.NewScanner(bufio.NewReaderSize(in, 1024*1024))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var term string
	var docID int32
	var score float32
	termCounter := 0
	for scanner.Scan() {
		line := scanner.Text()
		if _, scanErr := fmt.Sscanf(line, "%s %d %g", &term, &docID, &score); scanErr != nil {
			continue
		}
		if _, ok := index[term]; !ok {
			order = append(order, term)
		}
		index[term] = append(index[term], Posting{DocID: docID, TFScore: score})

		termCounter++
		if termCounter%100000 == 0 {
			log.Printf("%d terms processed", termCounter)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.Printf("done building map for shard %d: %d unique terms", id, len(index))

	binFile, err := os.Create(binPath)
	if err != nil {
		return fmt.Errorf("bin file not opening: %w", err)
	}
	defer binFile.Close()
	offsetFile, err := os.Create(offsetPath)
	if err != nil {
		return fmt.Errorf("offset file not opening: %w", err)
	}
	defer offsetFile.Close()

	binWriter := bufio.NewWriterSize(binFile, 1024*1024)
	offsetWriter := bufio.NewWriterSize(offsetFile, 256*1024)

	var pos int64
	for i, term := range order {
		postings := index[term]
		if _, err := fmt.Fprintf(offsetWriter, "%s %d\n", term, pos); err != nil {
			return err
		}
		if err := WritePostingList(binWriter, postings); err != nil {
			return err
		}
		pos += 4 + int64(len(postings))*PostingSize

		if (i+1)%100000 == 0 {
			log.Printf("%d/%d terms written to shard %d", i+1, len(order), id)
		}
	}

	if err := binWriter.Flush(); err != nil {
		return err
	}
	if err := offsetWriter.Flush(); err != nil {
		return err
	}

	log.Printf("saved chunk_%d.bin", id)
	return nil
}
