package pagerank

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"

	"wikidex/internal/corpus"
)

// Graph is the dense-ID reverse link graph built over the valid-document
// set, mirroring the C++ original's real_to_dense / dense_to_real /
// inLinks_graph / out_degree globals as fields on a single value instead of
// file-scope state.
type Graph struct {
	DenseToReal []int32
	InLinks     [][]int32
	OutDegree   []int32
}

// N is the number of dense nodes in the graph.
func (g *Graph) N() int {
	return len(g.DenseToReal)
}

// LoadValidPageIDs parses doc_info.jsonl and returns the set of known doc
// IDs. Only edges with both endpoints in this set are retained by BuildGraph.
func LoadValidPageIDs(docInfoPath string) (map[int32]struct{}, error) {
	valid := make(map[int32]struct{})
	_, err := corpus.ForEachDocInfo(docInfoPath, func(d corpus.DocInfo) {
		valid[d.ID] = struct{}{}
	})
	if err != nil {
		return nil, err
	}
	log.Printf("valid page-id set complete: %d pages", len(valid))
	return valid, nil
}

// BuildGraph performs the two-pass CSR-style construction described in
// spec.md §4.1: pass one assigns dense IDs in first-seen order and counts
// in/out degree, pass two builds the reverse adjacency list with each row
// pre-reserved to its in-degree, then releases the pass-one scratch state.
func BuildGraph(pagelinksPath string, valid map[int32]struct{}) (*Graph, error) {
	realToDense := make(map[int32]int32)
	var denseToReal []int32
	var outDegree []int32
	var inDegree []int32

	lineCount := 0
	err := scanEdges(pagelinksPath, func(u, v int32) {
		if _, ok := valid[u]; !ok {
			return
		}
		if _, ok := valid[v]; !ok {
			return
		}

		uDense, ok := realToDense[u]
		if !ok {
			uDense = int32(len(denseToReal))
			realToDense[u] = uDense
			denseToReal = append(denseToReal, u)
			outDegree = append(outDegree, 0)
			inDegree = append(inDegree, 0)
		}
		vDense, ok := realToDense[v]
		if !ok {
			vDense = int32(len(denseToReal))
			realToDense[v] = vDense
			denseToReal = append(denseToReal, v)
			outDegree = append(outDegree, 0)
			inDegree = append(inDegree, 0)
		}

		outDegree[uDense]++
		inDegree[vDense]++

		lineCount++
		if lineCount%5000000 == 0 {
			log.Printf("pass 1: scanned %d edges", lineCount)
		}
	})
	if err != nil {
		return nil, err
	}

	n := len(denseToReal)
	log.Printf("pass 1 complete: %d unique nodes", n)

	inLinks := make([][]int32, n)
	for i := 0; i < n; i++ {
		if inDegree[i] > 0 {
			inLinks[i] = make([]int32, 0, inDegree[i])
		}
	}
	inDegree = nil // release the in-degree scratch, as the original does

	lineCount = 0
	err = scanEdges(pagelinksPath, func(u, v int32) {
		if _, ok := valid[u]; !ok {
			return
		}
		if _, ok := valid[v]; !ok {
			return
		}
		uDense := realToDense[u]
		vDense := realToDense[v]
		inLinks[vDense] = append(inLinks[vDense], uDense)

		lineCount++
		if lineCount%5000000 == 0 {
			log.Printf("pass 2: loaded %d edges", lineCount)
		}
	})
	if err != nil {
		return nil, err
	}

	realToDense = nil // released after pass two, per spec.md §4.1
	log.Printf("graph loaded: %d nodes", n)

	return &Graph{
		DenseToReal: denseToReal,
		InLinks:     inLinks,
		OutDegree:   outDegree,
	}, nil
}

func scanEdges(path string, fn func(u, v int32)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		comma := strings.IndexByte(line, ',')
		if comma < 0 {
			log.Printf("skipping malformed edge line %q", line)
			continue
		}
		u, uErr := strconv.ParseInt(line[:comma], 10, 32)
		v, vErr := strconv.ParseInt(line[comma+1:], 10, 32)
		if uErr != nil || vErr != nil {
			log.Printf("skipping malformed edge line %q", line)
			continue
		}
		fn(int32(u), int32(v))
	}
	return scanner.Err()
}
