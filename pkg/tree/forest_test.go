package tree

import (
	"reflect"
	"testing"

	"github.com/textoc/textoc/pkg/models"
)

func nb(id, parentID string) *models.Notebook {
	return &models.Notebook{ID: id, Name: id, ParentID: parentID}
}

// sample builds:
//
//	a
//	├── b
//	│   └── d
//	└── c
//	e
func sample() *Forest {
	return Build([]*models.Notebook{
		nb("a", ""),
		nb("b", "a"),
		nb("c", "a"),
		nb("d", "b"),
		nb("e", ""),
	})
}

func TestBuildRoots(t *testing.T) {
	f := sample()

	var roots []string
	for _, node := range f.Roots() {
		roots = append(roots, node.Notebook.ID)
	}
	want := []string{"a", "e"}
	if !reflect.DeepEqual(roots, want) {
		t.Errorf("Roots() = %v, want %v", roots, want)
	}
}

func TestBuildOrphanBecomesRoot(t *testing.T) {
	f := Build([]*models.Notebook{
		nb("a", ""),
		nb("orphan", "missing-parent"),
	})

	if len(f.Roots()) != 2 {
		t.Fatalf("expected orphan promoted to root, got %d roots", len(f.Roots()))
	}
	if f.Get("orphan").Parent != nil {
		t.Error("orphan should have no parent")
	}
}

func TestChildren(t *testing.T) {
	f := sample()

	var kids []string
	for _, node := range f.Children("a") {
		kids = append(kids, node.Notebook.ID)
	}
	want := []string{"b", "c"}
	if !reflect.DeepEqual(kids, want) {
		t.Errorf("Children(a) = %v, want %v", kids, want)
	}

	if f.Children("nope") != nil {
		t.Error("Children of unknown id should be nil")
	}
}

func TestDescendants(t *testing.T) {
	f := sample()

	tests := []struct {
		id   string
		want []string
	}{
		{"a", []string{"b", "d", "c"}},
		{"b", []string{"d"}},
		{"d", nil},
		{"missing", nil},
	}

	for _, tt := range tests {
		got := f.Descendants(tt.id)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Descendants(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestWouldCycle(t *testing.T) {
	f := sample()

	tests := []struct {
		name      string
		id        string
		newParent string
		want      bool
	}{
		{"to root is never a cycle", "a", "", false},
		{"under itself", "a", "a", true},
		{"under own child", "a", "b", true},
		{"under own grandchild", "a", "d", true},
		{"under sibling subtree", "c", "d", false},
		{"between separate trees", "e", "d", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.WouldCycle(tt.id, tt.newParent); got != tt.want {
				t.Errorf("WouldCycle(%s, %s) = %v, want %v", tt.id, tt.newParent, got, tt.want)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	f := sample()

	want := []string{"a", "b", "d", "c", "e"}
	if got := f.Flatten(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}
