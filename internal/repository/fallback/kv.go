package fallback

import (
	"hash/fnv"
	"sort"
	"sync"
	"sync/atomic"
)

type entry struct {
	seq uint64
	v   any
}

type shard struct {
	mu   sync.RWMutex
	data map[string]entry
}

// shardedKV is a map split into independently locked shards. Every write
// stamps the entry with a global sequence number so snapshots come back in
// insertion order.
type shardedKV struct {
	shards []shard
	seq    atomic.Uint64
}

type Option func(*shardedKV)

// WithShards sets the shard count. It is rounded up to a power of two; values
// below one fall back to the default of 16.
func WithShards(n int) Option {
	return func(kv *shardedKV) {
		if n <= 0 {
			n = 16
		}
		size := 1
		for size < n {
			size <<= 1
		}
		kv.shards = make([]shard, size)
		for i := range kv.shards {
			kv.shards[i] = shard{data: make(map[string]entry)}
		}
	}
}

func newShardedKV(opts ...Option) *shardedKV {
	kv := &shardedKV{}
	WithShards(16)(kv)
	for _, o := range opts {
		o(kv)
	}
	return kv
}

func (kv *shardedKV) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	idx := int(h.Sum32()) & (len(kv.shards) - 1)
	return &kv.shards[idx]
}

func (kv *shardedKV) put(key string, v any) {
	s := kv.shardFor(key)
	s.mu.Lock()
	s.data[key] = entry{seq: kv.seq.Add(1), v: v}
	s.mu.Unlock()
}

// putIfAbsent stores v unless key is taken and reports whether it stored.
func (kv *shardedKV) putIfAbsent(key string, v any) bool {
	s := kv.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		return false
	}
	s.data[key] = entry{seq: kv.seq.Add(1), v: v}
	return true
}

// replace swaps the value of an existing key and moves it to the end of the
// insertion order. Absent keys are left alone.
func (kv *shardedKV) replace(key string, v any) bool {
	s := kv.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return false
	}
	s.data[key] = entry{seq: kv.seq.Add(1), v: v}
	return true
}

func (kv *shardedKV) get(key string) (any, bool) {
	s := kv.shardFor(key)
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return e.v, true
}

func (kv *shardedKV) delete(key string) bool {
	s := kv.shardFor(key)
	s.mu.Lock()
	_, ok := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()
	return ok
}

func (kv *shardedKV) len() int {
	n := 0
	for i := range kv.shards {
		s := &kv.shards[i]
		s.mu.RLock()
		n += len(s.data)
		s.mu.RUnlock()
	}
	return n
}

// values returns every stored value ordered by last write.
func (kv *shardedKV) values() []any {
	var all []entry
	for i := range kv.shards {
		s := &kv.shards[i]
		s.mu.RLock()
		for _, e := range s.data {
			all = append(all, e)
		}
		s.mu.RUnlock()
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seq < all[j].seq })

	out := make([]any, len(all))
	for i, e := range all {
		out[i] = e.v
	}
	return out
}
