package shard

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// Merge concatenates the numShards chunk_<i>.bin files into a single
// index.bin (prefixed with a totalDocs header) and rewrites each shard's
// local offsets into a single global offset.txt, per spec.md §4.4.
func Merge(shardDir string, numShards int, totalDocs int32, indexOutPath, offsetOutPath string) error {
	finalBin, err := os.Create(indexOutPath)
	if err != nil {
		return fmt.Errorf("final bin not opening: %w", err)
	}
	defer finalBin.Close()
	finalOffset, err := os.Create(offsetOutPath)
	if err != nil {
		return fmt.Errorf("final offset not opening: %w", err)
	}
	defer finalOffset.Close()

	binWriter := bufio.NewWriterSize(finalBin, 4*1024*1024)
	offsetWriter := bufio.NewWriterSize(finalOffset, 1024*1024)

	if err := binary.Write(binWriter, binary.LittleEndian, totalDocs); err != nil {
		return err
	}

	var base int64 = 4 // the totalDocs header

	for i := 0; i < numShards; i++ {
		log.Printf("merging shard %d", i)

		chunkOffsetPath := filepath.Join(shardDir, fmt.Sprintf("chunk_offsets_%d.txt", i))
		chunkOffsetFile, err := os.Open(chunkOffsetPath)
		if err != nil {
			return fmt.Errorf("chunk offset %d did not open: %w", i, err)
		}

		scanner := bufio.NewScanner(chunkOffsetFile)
		for scanner.Scan() {
			var term string
			var localPos int64
			if _, sErr := fmt.Sscanf(scanner.Text(), "%s %d", &term, &localPos); sErr != nil {
				continue
			}
			if _, err := fmt.Fprintf(offsetWriter, "%s %d\n", term, base+localPos); err != nil {
				chunkOffsetFile.Close()
				return err
			}
		}
		scanErr := scanner.Err()
		chunkOffsetFile.Close()
		if scanErr != nil {
			return scanErr
		}

		chunkBinPath := filepath.Join(shardDir, fmt.Sprintf("chunk_%d.bin", i))
		chunkBinFile, err := os.Open(chunkBinPath)
		if err != nil {
			return fmt.Errorf("chunk bin %d did not open: %w", i, err)
		}
		n, err := io.Copy(binWriter, chunkBinFile)
		chunkBinFile.Close()
		if err != nil {
			return err
		}
		base += n

		log.Printf("chunk %d finished combining", i)
	}

	if err := binWriter.Flush(); err != nil {
		return err
	}
	return offsetWriter.Flush()
}
