package community

import (
	"fmt"
	"sort"
)

// pairEntry is one side of the pairing between two communities: a reference
// to the community at the other end and the modularity gain of merging with
// it. Each pair is represented twice, once in each community's row, and the
// two deltaQ values are kept equal.
type pairEntry struct {
	id        uint64 // neighbor community ID, the row key
	community *Community
	deltaQ    float32
}

// neighborRow is an ordered mapping from neighbor community ID to pairEntry,
// backed by a sorted slice. Total-order iteration is what lets the merger
// splice two rows with a parallel cursor in O(|rowA|+|rowB|); a hash map
// would force a sort per merge.
type neighborRow struct {
	entries []*pairEntry
}

func newNeighborRow() *neighborRow {
	return &neighborRow{}
}

// Len returns the number of entries.
func (r *neighborRow) Len() int {
	return len(r.entries)
}

// At returns the i-th entry in ascending key order.
func (r *neighborRow) At(i int) *pairEntry {
	return r.entries[i]
}

// Get returns the entry keyed by id, if present.
func (r *neighborRow) Get(id uint64) (*pairEntry, bool) {
	i, ok := r.search(id)
	if !ok {
		return nil, false
	}
	return r.entries[i], true
}

// Insert adds an entry keyed by e.id. Duplicate keys are a programmer error.
func (r *neighborRow) Insert(e *pairEntry) {
	i, ok := r.search(e.id)
	if ok {
		panic(fmt.Sprintf("community: neighbor row already contains community %d", e.id))
	}
	r.entries = append(r.entries, nil)
	copy(r.entries[i+1:], r.entries[i:])
	r.entries[i] = e
}

// Remove deletes the entry keyed by id and returns it. Removing an absent key
// is a no-op.
func (r *neighborRow) Remove(id uint64) (*pairEntry, bool) {
	i, ok := r.search(id)
	if !ok {
		return nil, false
	}
	e := r.entries[i]
	copy(r.entries[i:], r.entries[i+1:])
	r.entries = r.entries[:len(r.entries)-1]
	return e, true
}

// Max rescans the row for the entry with the highest deltaQ. Ties go to the
// lowest neighbor ID. Returns nil for an empty row.
func (r *neighborRow) Max() *pairEntry {
	var best *pairEntry
	for _, e := range r.entries {
		if best == nil || e.deltaQ > best.deltaQ {
			best = e
		}
	}
	return best
}

// search returns the slot holding id, or the slot where it would be inserted.
func (r *neighborRow) search(id uint64) (int, bool) {
	i := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].id >= id
	})
	return i, i < len(r.entries) && r.entries[i].id == id
}
