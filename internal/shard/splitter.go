package shard

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"wikidex/internal/corpus"
)

// Split reads tfDataPath and fans each term record out to one of numShards
// plain-text shard files, named temp_<i>.txt under outDir, per spec.md §4.2.
// Terms shorter than 2 characters are dropped, matching the original's
// `if(term.length() < 2) continue;`.
func Split(tfDataPath, outDir string, numShards int) (int64, error) {
	writers := make([]*bufio.Writer, numShards)
	files := make([]*os.File, numShards)
	for i := 0; i < numShards; i++ {
		name := filepath.Join(outDir, fmt.Sprintf("temp_%d.txt", i))
		f, err := os.Create(name)
		if err != nil {
			return 0, fmt.Errorf("shard %d not opening: %w", i, err)
		}
		files[i] = f
		writers[i] = bufio.NewWriterSize(f, 1024*1024)
	}
	defer func() {
		for i := range files {
			writers[i].Flush()
			files[i].Close()
		}
	}()

	var termCounter int64
	_, err := corpus.ForEachTFRecord(tfDataPath, func(rec corpus.TFRecord) {
		for term, score := range rec.Terms {
			if len(term) < 2 {
				continue
			}
			bucket := BucketFor(term, numShards)
			fmt.Fprintf(writers[bucket], "%s %d %g\n", term, rec.ID, score)
			termCounter++
			if termCounter%1000 == 0 {
				log.Printf("%d terms processed", termCounter)
			}
		}
	})
	if err != nil {
		return termCounter, err
	}

	for i := range writers {
		if err := writers[i].Flush(); err != nil {
			return termCounter, fmt.Errorf("shard %d flush: %w", i, err)
		}
	}

	log.Printf("processing complete: %d terms parsed", termCounter)
	return termCounter, nil
}
