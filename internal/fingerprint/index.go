package fingerprint

import "sync"

const shardCount = 64

// Index maps content hashes to the windows that produced them. Insertion is
// safe for concurrent use: the shard is selected by hash, so windows with
// the same hash always land in the same bucket and writers to different
// shards never contend. The index is built once per scan and discarded.
type Index struct {
	shards [shardCount]indexShard
}

type indexShard struct {
	mu      sync.Mutex
	buckets map[uint64][]Window
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	idx := &Index{}
	for i := range idx.shards {
		idx.shards[i].buckets = make(map[uint64][]Window)
	}
	return idx
}

// Add inserts a single window into its hash bucket.
func (idx *Index) Add(w Window) {
	shard := &idx.shards[w.Hash%shardCount]
	shard.mu.Lock()
	shard.buckets[w.Hash] = append(shard.buckets[w.Hash], w)
	shard.mu.Unlock()
}

// AddAll inserts every window of one file, grouping the lock acquisitions
// per shard.
func (idx *Index) AddAll(windows []Window) {
	for _, w := range windows {
		idx.Add(w)
	}
}

// Len reports the total number of windows across all buckets.
func (idx *Index) Len() int {
	total := 0
	for i := range idx.shards {
		shard := &idx.shards[i]
		shard.mu.Lock()
		for _, bucket := range shard.buckets {
			total += len(bucket)
		}
		shard.mu.Unlock()
	}
	return total
}

// Buckets calls fn for every bucket holding at least two windows. Buckets
// of size one carry no duplication signal and are skipped. Must not be
// called concurrently with Add.
func (idx *Index) Buckets(fn func(hash uint64, windows []Window)) {
	for i := range idx.shards {
		for hash, bucket := range idx.shards[i].buckets {
			if len(bucket) < 2 {
				continue
			}
			fn(hash, bucket)
		}
	}
}
