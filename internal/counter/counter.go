// Package counter provides a generic multiset that counts occurrences of
// ordered keys.
package counter

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Entry is a (key, count) pair produced by the sorted views of a Counter.
type Entry[K cmp.Ordered] struct {
	Key   K
	Count int64
}

// Counter counts occurrences of keys. Iteration is always in key order so
// that every tie-break is deterministic.
//
// The zero value is not usable; create counters with New.
type Counter[K cmp.Ordered] struct {
	mu     sync.RWMutex
	counts map[K]int64
}

// New creates an empty counter
func New[K cmp.Ordered]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int64)}
}

// CountAll creates a counter holding one occurrence per element of keys
func CountAll[K cmp.Ordered](keys []K) *Counter[K] {
	return New[K]().AddAll(keys)
}

// Add increments the count of key by one
func (c *Counter[K]) Add(key K) *Counter[K] {
	return c.AddN(key, 1)
}

// AddN increments the count of key by n
func (c *Counter[K]) AddN(key K, n int64) *Counter[K] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[key] += n
	return c
}

// AddAll increments the count of every element of keys by one
func (c *Counter[K]) AddAll(keys []K) *Counter[K] {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		c.counts[k]++
	}
	return c
}

// Merge adds every entry of other into c. Merging a counter into itself
// doubles every count.
func (c *Counter[K]) Merge(other *Counter[K]) *Counter[K] {
	if other == nil {
		return c
	}
	snapshot := other.snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range snapshot {
		c.counts[e.Key] += e.Count
	}
	return c
}

// Set overwrites the count of key
func (c *Counter[K]) Set(key K, n int64) *Counter[K] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counts[key] = n
	return c
}

// SetMax stores n for key unless the current count is already larger
func (c *Counter[K]) SetMax(key K, n int64) *Counter[K] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.counts[key]; !ok || n > cur {
		c.counts[key] = n
	}
	return c
}

// SetMin stores n for key unless the current count is already smaller
func (c *Counter[K]) SetMin(key K, n int64) *Counter[K] {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.counts[key]; !ok || n < cur {
		c.counts[key] = n
	}
	return c
}

// Count returns the count of key, 0 when the key is absent
func (c *Counter[K]) Count(key K) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.counts[key]
}

// Remove deletes key and reports the count it held
func (c *Counter[K]) Remove(key K) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.counts[key]
	delete(c.counts, key)
	return n, ok
}

// FilterMin returns the keys whose count is at least n. The counter is not modified.
func (c *Counter[K]) FilterMin(n int64) map[K]struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res := make(map[K]struct{})
	for k, v := range c.counts {
		if v >= n {
			res[k] = struct{}{}
		}
	}
	return res
}

// ExcludeMin removes every key whose count is below n
func (c *Counter[K]) ExcludeMin(n int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	maps.DeleteFunc(c.counts, func(_ K, v int64) bool {
		return v < n
	})
}

// KeepTopK retains only the k keys with the highest counts
func (c *Counter[K]) KeepTopK(k int) {
	c.KeepTopKOrSet(k, nil)
}

// KeepTopKOrSet retains the k keys with the highest counts plus every key in keep.
// Equal counts are ranked by key order.
func (c *Counter[K]) KeepTopKOrSet(k int, keep map[K]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if k < 0 {
		k = 0
	}
	ranked := sortedByCount(c.entriesLocked(), true)
	if k >= len(ranked) {
		return
	}
	for _, e := range ranked[k:] {
		if _, ok := keep[e.Key]; ok {
			continue
		}
		delete(c.counts, e.Key)
	}
}

// Max returns the key with the highest count. On ties the smallest key wins.
// ok is false when the counter is empty.
func (c *Counter[K]) Max() (key K, ok bool) {
	return c.MaxExcluding(nil)
}

// MaxExcluding is Max over the keys not present in ignore
func (c *Counter[K]) MaxExcluding(ignore map[K]struct{}) (key K, ok bool) {
	var best int64
	for _, e := range c.snapshot() {
		if _, skip := ignore[e.Key]; skip {
			continue
		}
		if !ok || e.Count > best {
			key, best, ok = e.Key, e.Count, true
		}
	}
	return key, ok
}

// Sum returns the total of all counts
func (c *Counter[K]) Sum() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var sum int64
	for _, v := range c.counts {
		sum += v
	}
	return sum
}

// Len returns the number of distinct keys
func (c *Counter[K]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.counts)
}

// IsEmpty reports whether the counter holds no keys
func (c *Counter[K]) IsEmpty() bool {
	return c.Len() == 0
}

// Clear removes every key
func (c *Counter[K]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.counts)
}

// Copy returns an independent counter with the same entries
func (c *Counter[K]) Copy() *Counter[K] {
	return New[K]().Merge(c)
}

// Keys returns the keys in ascending order
func (c *Counter[K]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Sorted(maps.Keys(c.counts))
}

// All iterates over the entries in ascending key order
func (c *Counter[K]) All() iter.Seq2[K, int64] {
	return c.view(func(entries []Entry[K]) []Entry[K] { return entries })
}

// Sort iterates over the entries by ascending count, ties by ascending key
func (c *Counter[K]) Sort() iter.Seq2[K, int64] {
	return c.view(func(entries []Entry[K]) []Entry[K] { return sortedByCount(entries, false) })
}

// InverseSort iterates over the entries by descending count, ties by ascending key
func (c *Counter[K]) InverseSort() iter.Seq2[K, int64] {
	return c.view(func(entries []Entry[K]) []Entry[K] { return sortedByCount(entries, true) })
}

// SortKey iterates over the entries by ascending key
func (c *Counter[K]) SortKey() iter.Seq2[K, int64] {
	return c.All()
}

// InverseSortKey iterates over the entries by descending key
func (c *Counter[K]) InverseSortKey() iter.Seq2[K, int64] {
	return c.view(func(entries []Entry[K]) []Entry[K] {
		slices.Reverse(entries)
		return entries
	})
}

func (c *Counter[K]) String() string {
	var sb strings.Builder
	sb.WriteString("Counter {")
	for i, e := range c.snapshot() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v=%d", e.Key, e.Count)
	}
	sb.WriteString("}")
	return sb.String()
}

// view builds a restartable sequence: every iteration takes a fresh snapshot,
// so mutating the counter while ranging over a view is safe.
func (c *Counter[K]) view(order func([]Entry[K]) []Entry[K]) iter.Seq2[K, int64] {
	return func(yield func(K, int64) bool) {
		for _, e := range order(c.snapshot()) {
			if !yield(e.Key, e.Count) {
				return
			}
		}
	}
}

// snapshot returns the entries in ascending key order
func (c *Counter[K]) snapshot() []Entry[K] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.entriesLocked()
}

func (c *Counter[K]) entriesLocked() []Entry[K] {
	entries := make([]Entry[K], 0, len(c.counts))
	for _, k := range slices.Sorted(maps.Keys(c.counts)) {
		entries = append(entries, Entry[K]{Key: k, Count: c.counts[k]})
	}
	return entries
}

// sortedByCount orders key-sorted entries by count. The sort is stable so
// equal counts keep their key order.
func sortedByCount[K cmp.Ordered](entries []Entry[K], descending bool) []Entry[K] {
	slices.SortStableFunc(entries, func(a, b Entry[K]) int {
		if descending {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Count, b.Count)
	})
	return entries
}
