package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yourusername/desk-cli/internal/types"
)

func testTree() Tree {
	return NewTree([]Entry{
		{ID: "readme", Name: "README", Kind: types.FileText, Content: "hello"},
		{ID: "blog", Name: "Blog", Kind: types.FileFolder, Children: []Entry{
			{ID: "blog-1", Name: "one.txt", Kind: types.FileText, Content: "1"},
			{ID: "blog-2", Name: "two.txt", Kind: types.FileText, Content: "2"},
			{ID: "nested", Name: "Nested", Kind: types.FileFolder, Children: []Entry{
				{ID: "deep", Name: "deep.txt", Kind: types.FileText, Content: "deep"},
			}},
		}},
		{ID: "photo", Name: "photo.png", Kind: types.FileImage},
	})
}

func selectedIn(entries []Entry) []string {
	var ids []string
	for _, e := range entries {
		if e.Selected {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// === Selection Tests ===

func TestSelect_TopLevel(t *testing.T) {
	tree := testTree().Select("readme")

	got := selectedIn(tree.Entries())
	if len(got) != 1 || got[0] != "readme" {
		t.Errorf("selected = %v, want [readme]", got)
	}
}

func TestSelect_SiblingsExclusive(t *testing.T) {
	tree := testTree().Select("readme").Select("photo")

	got := selectedIn(tree.Entries())
	if len(got) != 1 || got[0] != "photo" {
		t.Errorf("selected = %v, want [photo]", got)
	}
}

func TestSelect_ChildLevel(t *testing.T) {
	tree := testTree().Select("blog-1").Select("blog-2")

	blog, _ := tree.Find("blog")
	got := selectedIn(blog.Children)
	if len(got) != 1 || got[0] != "blog-2" {
		t.Errorf("blog children selected = %v, want [blog-2]", got)
	}
	if blog.Selected {
		t.Error("folder should not be selected when a child is")
	}
	if ids := selectedIn(tree.Entries()); len(ids) != 0 {
		t.Errorf("top level selected = %v, want none", ids)
	}
}

func TestSelect_TopLevelClearsChildren(t *testing.T) {
	tree := testTree().Select("blog-1").Select("readme")

	blog, _ := tree.Find("blog")
	if got := selectedIn(blog.Children); len(got) != 0 {
		t.Errorf("blog children selected = %v, want none", got)
	}
}

func TestSelect_OnlyTwoLevels(t *testing.T) {
	tree := testTree().Select("deep")

	deep, ok := tree.Find("deep")
	if !ok {
		t.Fatal("deep entry not found")
	}
	if deep.Selected {
		t.Error("selection should not reach the third level")
	}
}

func TestSelect_DoesNotMutateReceiver(t *testing.T) {
	before := testTree()
	_ = before.Select("blog-1")

	if ids := before.SelectedIDs(); len(ids) != 0 {
		t.Errorf("original tree selected = %v, want none", ids)
	}
}

func TestSelect_UnknownID(t *testing.T) {
	tree := testTree().Select("readme").Select("missing")

	if ids := tree.SelectedIDs(); len(ids) != 0 {
		t.Errorf("selected = %v, want none", ids)
	}
}

// === Lookup Tests ===

func TestFind(t *testing.T) {
	tree := testTree()

	tests := []struct {
		id   string
		want string
		ok   bool
	}{
		{"readme", "README", true},
		{"blog-2", "two.txt", true},
		{"deep", "deep.txt", true},
		{"missing", "", false},
	}

	for _, tt := range tests {
		got, ok := tree.Find(tt.id)
		if ok != tt.ok || got.Name != tt.want {
			t.Errorf("Find(%q) = (%q, %v), want (%q, %v)", tt.id, got.Name, ok, tt.want, tt.ok)
		}
	}
}

func TestFind_ReturnsCopy(t *testing.T) {
	tree := testTree()
	blog, _ := tree.Find("blog")
	blog.Children[0].Name = "changed"

	again, _ := tree.Find("blog")
	if again.Children[0].Name != "one.txt" {
		t.Error("Find should return a deep copy")
	}
}

func TestResolve(t *testing.T) {
	tree := testTree()

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"README", "readme", true},
		{"Blog/two.txt", "blog-2", true},
		{"/Blog/Nested/deep.txt", "deep", true},
		{"Blog", "blog", true},
		{"README/x", "", false},
		{"Blog/missing.txt", "", false},
		{"", "", false},

		// Ids stand in for names
		{"Blog/blog-2.txt", "blog-2", true},
		{"blog/blog-1", "blog-1", true},
		{"Blog/nested/deep.txt", "deep", true},
		{"blog.txt", "", false},
	}

	for _, tt := range tests {
		got, ok := tree.Resolve(tt.path)
		if ok != tt.ok || got.ID != tt.want {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.path, got.ID, ok, tt.want, tt.ok)
		}
	}
}

// === Seed Tests ===

func TestDefaultTree(t *testing.T) {
	tree := DefaultTree()

	if tree.Len() != 4 {
		t.Fatalf("top-level entries = %d, want 4", tree.Len())
	}

	readme, ok := tree.Find("readme")
	if !ok {
		t.Fatal("readme not found")
	}
	if !strings.HasPrefix(readme.Content, "# Welcome to My Portfolio") {
		t.Errorf("readme content = %q", readme.Content[:20])
	}
	if readme.Position == nil || *readme.Position != (types.Point{X: 20, Y: 20}) {
		t.Errorf("readme position = %v, want (20, 20)", readme.Position)
	}

	blog, _ := tree.Find("blog")
	if len(blog.Children) != 4 {
		t.Errorf("blog children = %d, want 4", len(blog.Children))
	}
}

func TestParseTree_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "entries:\n  - name: a\n    kind: text\n"},
		{"duplicate id", "entries:\n  - {id: a, name: a, kind: text}\n  - {id: a, name: b, kind: text}\n"},
		{"unknown kind", "entries:\n  - {id: a, name: a, kind: video}\n"},
		{"folder content", "entries:\n  - {id: a, name: a, kind: folder, content: x}\n"},
		{"file children", "entries:\n  - id: a\n    name: a\n    kind: text\n    children:\n      - {id: b, name: b, kind: text}\n"},
		{"bad yaml", "entries: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseTree([]byte(tt.yaml)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadTree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	data := "entries:\n  - {id: notes, name: Notes, kind: folder}\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	tree, err := LoadTree(path)
	if err != nil {
		t.Fatalf("LoadTree: %v", err)
	}
	if tree.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tree.Len())
	}

	if _, err := LoadTree(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
