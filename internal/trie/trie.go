// Package trie implements the prefix-autocomplete index: an arena-backed
// character trie over normalized titles, serving score-ordered top-k
// prefix lookups, per spec.md §4.6.
package trie

import (
	"sort"
)

// node is one arena slot. Children are keyed by single ASCII-lowercased
// characters and stored as an ordered slice (small branching factor, so a
// linear scan plus an insertion-sort on write beats a map for both memory
// and the serializer's "ascending key order" requirement).
type node struct {
	childKeys []byte
	childIdx  []int32

	isEnd     bool
	fullTitle string
	score     float64
	pageID    int32
}

func (n *node) childAt(key byte) (int32, bool) {
	for i, k := range n.childKeys {
		if k == key {
			return n.childIdx[i], true
		}
	}
	return 0, false
}

func (n *node) addChild(key byte, idx int32) {
	i := sort.Search(len(n.childKeys), func(i int) bool { return n.childKeys[i] >= key })
	n.childKeys = append(n.childKeys, 0)
	n.childIdx = append(n.childIdx, 0)
	copy(n.childKeys[i+1:], n.childKeys[i:])
	copy(n.childIdx[i+1:], n.childIdx[i:])
	n.childKeys[i] = key
	n.childIdx[i] = idx
}

// Trie is an arena of nodes, root always at index 0. An arena avoids
// per-node allocator overhead at corpus scale and lets serialization walk
// a contiguous slice instead of chasing pointers (spec.md §9 Design Notes).
type Trie struct {
	nodes []node
}

// New returns an empty Trie with just the root node.
func New() *Trie {
	return &Trie{nodes: []node{{}}}
}

// Insert adds title to the trie, normalizing to ASCII lowercase for the
// walk while preserving the original casing in fullTitle, per spec.md §4.6.
func (t *Trie) Insert(title string, score float64, pageID int32) {
	cur := int32(0)
	for i := 0; i < len(title); i++ {
		key := toASCIILower(title[i])
		next, ok := t.nodes[cur].childAt(key)
		if !ok {
			next = int32(len(t.nodes))
			t.nodes = append(t.nodes, node{})
			t.nodes[cur].addChild(key, next)
		}
		cur = next
	}
	t.nodes[cur].isEnd = true
	t.nodes[cur].fullTitle = title
	t.nodes[cur].score = score
	t.nodes[cur].pageID = pageID
}

// Suggestion is one ranked autocomplete candidate.
type Suggestion struct {
	Title  string
	PageID int32
	Score  float64
}

// Suggest descends to prefix (ASCII-lowercased), collects every terminal
// descendant via depth-first search, sorts by descending score, and
// truncates (never enlarges, per spec.md §9's resolved open question) to
// limit.
func (t *Trie) Suggest(prefix string, limit int) []Suggestion {
	cur := int32(0)
	for i := 0; i < len(prefix); i++ {
		key := toASCIILower(prefix[i])
		next, ok := t.nodes[cur].childAt(key)
		if !ok {
			return nil
		}
		cur = next
	}

	var results []Suggestion
	t.collect(cur, &results)

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (t *Trie) collect(idx int32, out *[]Suggestion) {
	n := &t.nodes[idx]
	if n.isEnd {
		*out = append(*out, Suggestion{Title: n.fullTitle, PageID: n.pageID, Score: n.score})
	}
	for _, child := range n.childIdx {
		t.collect(child, out)
	}
}

func toASCIILower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
