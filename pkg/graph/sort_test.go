package graph

import (
	"errors"
	"testing"
)

// intVertices builds 100 vertices whose "rank" metadata descends from 99 to 0,
// so an ascending sort is the exact inverse of insertion order.
func intVertices(t *testing.T) []*Vertex {
	t.Helper()

	vertices := make([]*Vertex, 0, 100)
	for i := 0; i < 100; i++ {
		vertices = append(vertices, &Vertex{
			ID:       uint64(i + 1),
			Metadata: map[string]Value{"rank": IntValue(int64(99 - i))},
		})
	}
	return vertices
}

func floatVertices(t *testing.T) []*Vertex {
	t.Helper()

	vertices := make([]*Vertex, 0, 100)
	for i := 0; i < 100; i++ {
		vertices = append(vertices, &Vertex{
			ID:       uint64(i + 1),
			Metadata: map[string]Value{"weight": FloatValue(float64(99-i) / 4.0)},
		})
	}
	return vertices
}

func TestSortByMetadata_IntAscending(t *testing.T) {
	vertices := intVertices(t)

	sorted, err := SortByMetadata(vertices, "rank", true)
	if err != nil {
		t.Fatalf("SortByMetadata failed: %v", err)
	}

	for i, v := range sorted {
		if want := vertices[len(vertices)-1-i]; v != want {
			t.Fatalf("Position %d: expected vertex %d, got %d", i, want.ID, v.ID)
		}
	}
}

func TestSortByMetadata_IntDescending(t *testing.T) {
	vertices := intVertices(t)

	sorted, err := SortByMetadata(vertices, "rank", false)
	if err != nil {
		t.Fatalf("SortByMetadata failed: %v", err)
	}

	for i, v := range sorted {
		if want := vertices[i]; v != want {
			t.Fatalf("Position %d: expected vertex %d, got %d", i, want.ID, v.ID)
		}
	}
}

func TestSortByMetadata_FloatAscending(t *testing.T) {
	vertices := floatVertices(t)

	sorted, err := SortByMetadata(vertices, "weight", true)
	if err != nil {
		t.Fatalf("SortByMetadata failed: %v", err)
	}

	for i, v := range sorted {
		if want := vertices[len(vertices)-1-i]; v != want {
			t.Fatalf("Position %d: expected vertex %d, got %d", i, want.ID, v.ID)
		}
	}
}

func TestSortByMetadata_FloatDescending(t *testing.T) {
	vertices := floatVertices(t)

	sorted, err := SortByMetadata(vertices, "weight", false)
	if err != nil {
		t.Fatalf("SortByMetadata failed: %v", err)
	}

	for i, v := range sorted {
		if want := vertices[i]; v != want {
			t.Fatalf("Position %d: expected vertex %d, got %d", i, want.ID, v.ID)
		}
	}
}

func TestSortByMetadata_String(t *testing.T) {
	vertices := []*Vertex{
		{ID: 1, Metadata: map[string]Value{"name": StringValue("carol")}},
		{ID: 2, Metadata: map[string]Value{"name": StringValue("alice")}},
		{ID: 3, Metadata: map[string]Value{"name": StringValue("bob")}},
	}

	sorted, err := SortByMetadata(vertices, "name", true)
	if err != nil {
		t.Fatalf("SortByMetadata failed: %v", err)
	}

	want := []uint64{2, 3, 1}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Errorf("Position %d: expected vertex %d, got %d", i, id, sorted[i].ID)
		}
	}
}

// Bools order false before true, stably within each group.
func TestSortByMetadata_Bool(t *testing.T) {
	vertices := []*Vertex{
		{ID: 1, Metadata: map[string]Value{"active": BoolValue(true)}},
		{ID: 2, Metadata: map[string]Value{"active": BoolValue(false)}},
		{ID: 3, Metadata: map[string]Value{"active": BoolValue(true)}},
		{ID: 4, Metadata: map[string]Value{"active": BoolValue(false)}},
	}

	sorted, err := SortByMetadata(vertices, "active", true)
	if err != nil {
		t.Fatalf("SortByMetadata failed: %v", err)
	}
	want := []uint64{2, 4, 1, 3}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Errorf("Position %d: expected vertex %d, got %d", i, id, sorted[i].ID)
		}
	}

	sorted, err = SortByMetadata(vertices, "active", false)
	if err != nil {
		t.Fatalf("SortByMetadata failed: %v", err)
	}
	want = []uint64{1, 3, 2, 4}
	for i, id := range want {
		if sorted[i].ID != id {
			t.Errorf("Descending position %d: expected vertex %d, got %d", i, id, sorted[i].ID)
		}
	}
}

func TestSortByMetadata_DoesNotMutateInput(t *testing.T) {
	vertices := intVertices(t)

	if _, err := SortByMetadata(vertices, "rank", true); err != nil {
		t.Fatalf("SortByMetadata failed: %v", err)
	}

	for i, v := range vertices {
		if v.ID != uint64(i+1) {
			t.Fatalf("Input order mutated at position %d", i)
		}
	}
}

func TestSortByMetadata_EmptyInput(t *testing.T) {
	sorted, err := SortByMetadata([]*Vertex{}, "rank", true)
	if err != nil {
		t.Fatalf("SortByMetadata failed: %v", err)
	}
	if len(sorted) != 0 {
		t.Errorf("Expected empty result, got %d vertices", len(sorted))
	}
}

func TestSortByMetadata_ArgumentErrors(t *testing.T) {
	valid := intVertices(t)

	tests := []struct {
		name     string
		vertices []*Vertex
		key      string
		want     error
	}{
		{"nil collection", nil, "rank", ErrNilCollection},
		{"empty key", valid, "", ErrEmptyKey},
		{"missing key", valid, "absent", ErrKeyMissing},
		{
			"missing key on later vertex",
			[]*Vertex{
				{ID: 1, Metadata: map[string]Value{"rank": IntValue(1)}},
				{ID: 2, Metadata: map[string]Value{}},
			},
			"rank",
			ErrKeyMissing,
		},
		{
			"wrongly typed value",
			[]*Vertex{
				{ID: 1, Metadata: map[string]Value{"rank": IntValue(1)}},
				{ID: 2, Metadata: map[string]Value{"rank": StringValue("two")}},
			},
			"rank",
			ErrWrongValueType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SortByMetadata(tt.vertices, tt.key, true)
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
			if !IsInvalidArgument(err) {
				t.Errorf("Expected an invalid-argument error, got %v", err)
			}
		})
	}
}
