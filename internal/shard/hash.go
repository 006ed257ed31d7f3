// Package shard implements the hash-partitioned external merge that turns
// a tf_data.jsonl stream into a single posting-list index: Split fans
// records out to shard files, IndexShard turns one shard into a binary chunk,
// and Merge stitches the chunks into the final index.bin/offset.txt pair.
package shard

import "github.com/cespare/xxhash/v2"

// BucketFor returns the shard index a term hashes to under mask (NumShards-1).
// xxhash is used instead of Go's randomized string hash or the original's
// platform-dependent std::hash<string>, per spec.md §9's requirement for a
// hash that is stable across runs and platforms.
func BucketFor(term string, numShards int) int {
	h := xxhash.Sum64String(term)
	return int(h & uint64(numShards-1))
}
