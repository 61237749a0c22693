package graph

import "sort"

// SortByMetadata returns the vertices sorted by the metadata value stored
// under key. The sort is stable and does not mutate the input slice.
//
// Every vertex must carry the key, and all values must share the type of the
// first vertex's value. Ints and floats order numerically, strings
// lexicographically, bools false before true.
func SortByMetadata(vertices []*Vertex, key string, ascending bool) ([]*Vertex, error) {
	if vertices == nil {
		return nil, &GraphError{Op: "SortByMetadata", Entity: "vertices", Cause: ErrNilCollection}
	}
	if key == "" {
		return nil, &GraphError{Op: "SortByMetadata", Entity: "metadata", Cause: ErrEmptyKey}
	}

	if len(vertices) == 0 {
		return []*Vertex{}, nil
	}

	first, ok := vertices[0].Metadata[key]
	if !ok {
		return nil, MetadataError("SortByMetadata", key, vertices[0].ID, ErrKeyMissing)
	}
	for _, v := range vertices[1:] {
		val, ok := v.Metadata[key]
		if !ok {
			return nil, MetadataError("SortByMetadata", key, v.ID, ErrKeyMissing)
		}
		if val.Type != first.Type {
			return nil, MetadataError("SortByMetadata", key, v.ID, ErrWrongValueType)
		}
	}

	sorted := make([]*Vertex, len(vertices))
	copy(sorted, vertices)

	less := metadataLess(key, first.Type)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})

	return sorted, nil
}

// metadataLess builds a comparison function for the given key and value type.
// Type agreement was validated by the caller, so the decode cannot fail.
func metadataLess(key string, t ValueType) func(a, b *Vertex) bool {
	switch t {
	case TypeInt:
		return func(a, b *Vertex) bool {
			av, _ := a.Metadata[key].AsInt()
			bv, _ := b.Metadata[key].AsInt()
			return av < bv
		}
	case TypeFloat:
		return func(a, b *Vertex) bool {
			av, _ := a.Metadata[key].AsFloat()
			bv, _ := b.Metadata[key].AsFloat()
			return av < bv
		}
	case TypeBool:
		return func(a, b *Vertex) bool {
			av, _ := a.Metadata[key].AsBool()
			bv, _ := b.Metadata[key].AsBool()
			return !av && bv
		}
	default:
		return func(a, b *Vertex) bool {
			av, _ := a.Metadata[key].AsString()
			bv, _ := b.Metadata[key].AsString()
			return av < bv
		}
	}
}
