package shard

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Posting is one (doc_id, tf_score) entry in a posting list. tf_score is the
// normalized term frequency (raw_freq / doc_length) the upstream tokenizer
// delivers — spec.md §9's open question on this is resolved in favor of
// behavioral parity, since the on-disk layout is declared bit-exact.
type Posting struct {
	DocID   int32
	TFScore float32
}

const PostingSize = 8 // int32 + float32, little-endian

// WritePostingList writes [doc_freq int32][postings...] to w, matching the
// index.bin block layout in spec.md §3.
func WritePostingList(w io.Writer, postings []Posting) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(postings))); err != nil {
		return err
	}
	for _, p := range postings {
		if err := binary.Write(w, binary.LittleEndian, p.DocID); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, p.TFScore); err != nil {
			return err
		}
	}
	return nil
}

// ReadPostingList reads one [doc_freq][postings...] block from r, validating
// that 0 < doc_freq <= totalDocs per spec.md §4.5's corruption guard.
func ReadPostingList(r io.Reader, totalDocs int32) ([]Posting, error) {
	var docFreq int32
	if err := binary.Read(r, binary.LittleEndian, &docFreq); err != nil {
		return nil, err
	}
	if docFreq <= 0 || docFreq > totalDocs {
		return nil, fmt.Errorf("corrupt posting header: doc_freq=%d out of (0,%d]", docFreq, totalDocs)
	}

	postings := make([]Posting, docFreq)
	buf := make([]byte, int(docFreq)*PostingSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	for i := range postings {
		off := i * PostingSize
		postings[i] = Posting{
			DocID:   int32(binary.LittleEndian.Uint32(buf[off : off+4])),
			TFScore: math.Float32frombits(binary.LittleEndian.Uint32(buf[off+4 : off+8])),
		}
	}
	return postings, nil
}
