package community

import "fmt"

// pairHeap is an indexed binary max-heap keyed by community. It keeps a
// key-to-slot side table so Remove and Update run in O(log n) instead of the
// O(n) scan a plain container/heap wrapper would need.
//
// Ordering among equal values depends only on the insertion sequence, so runs
// over identical input produce identical merge orders.
type pairHeap struct {
	entries []heapEntry
	index   map[*Community]int
}

type heapEntry struct {
	key   *Community
	value float32
}

func newPairHeap() *pairHeap {
	return &pairHeap{
		index: make(map[*Community]int),
	}
}

// Len returns the number of entries.
func (h *pairHeap) Len() int {
	return len(h.entries)
}

// Add inserts a new entry. Adding a key that is already present is a
// programmer error.
func (h *pairHeap) Add(key *Community, value float32) {
	if _, ok := h.index[key]; ok {
		panic(fmt.Sprintf("community: heap already contains community %d", key.id))
	}
	h.entries = append(h.entries, heapEntry{key: key, value: value})
	h.index[key] = len(h.entries) - 1
	h.siftUp(len(h.entries) - 1)
}

// Peek returns the entry with the maximum value without removing it.
func (h *pairHeap) Peek() (*Community, float32, bool) {
	if len(h.entries) == 0 {
		return nil, 0, false
	}
	return h.entries[0].key, h.entries[0].value, true
}

// Remove removes the entry for key. Removing an absent key is a no-op.
func (h *pairHeap) Remove(key *Community) {
	i, ok := h.index[key]
	if !ok {
		return
	}
	last := len(h.entries) - 1
	h.swap(i, last)
	h.entries = h.entries[:last]
	delete(h.index, key)
	if i < last {
		h.siftDown(i)
		h.siftUp(i)
	}
}

// Update changes the value for key and restores heap order. The key must be
// present.
func (h *pairHeap) Update(key *Community, value float32) {
	i, ok := h.index[key]
	if !ok {
		panic(fmt.Sprintf("community: heap does not contain community %d", key.id))
	}
	old := h.entries[i].value
	h.entries[i].value = value
	if value > old {
		h.siftUp(i)
	} else if value < old {
		h.siftDown(i)
	}
}

func (h *pairHeap) swap(i, j int) {
	if i == j {
		return
	}
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.index[h.entries[i].key] = i
	h.index[h.entries[j].key] = j
}

func (h *pairHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.entries[i].value <= h.entries[parent].value {
			return
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *pairHeap) siftDown(i int) {
	n := len(h.entries)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		largest := left
		if right := left + 1; right < n && h.entries[right].value > h.entries[left].value {
			largest = right
		}
		if h.entries[largest].value <= h.entries[i].value {
			return
		}
		h.swap(i, largest)
		i = largest
	}
}
