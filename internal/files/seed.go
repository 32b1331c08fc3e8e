package files

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/desk-cli/internal/types"
)

//go:embed seed.yaml
var seedData []byte

// treeDocument is the on-disk shape of a file tree
type treeDocument struct {
	Entries []Entry `yaml:"entries"`
}

// DefaultTree returns the built-in desktop file tree
func DefaultTree() Tree {
	t, err := ParseTree(seedData)
	if err != nil {
		// The seed is compiled in; failing to parse it is a build defect.
		panic(fmt.Sprintf("files: invalid built-in tree: %v", err))
	}
	return t
}

// LoadTree reads a file tree from a YAML file
func LoadTree(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tree{}, fmt.Errorf("failed to read file tree: %w", err)
	}
	t, err := ParseTree(data)
	if err != nil {
		return Tree{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseTree parses and validates a YAML file tree document
func ParseTree(data []byte) (Tree, error) {
	var doc treeDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Tree{}, fmt.Errorf("failed to parse file tree: %w", err)
	}

	seen := make(map[string]bool)
	if err := validateEntries(doc.Entries, seen); err != nil {
		return Tree{}, err
	}

	return Tree{entries: doc.Entries}, nil
}

func validateEntries(entries []Entry, seen map[string]bool) error {
	for i, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("entry %d (%q): missing id", i, e.Name)
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate entry id: %s", e.ID)
		}
		seen[e.ID] = true

		if e.Name == "" {
			return fmt.Errorf("entry %s: missing name", e.ID)
		}
		if !e.Kind.Valid() {
			return fmt.Errorf("entry %s: unknown kind %q", e.ID, e.Kind)
		}

		if e.Kind == types.FileFolder {
			if e.Content != "" {
				return fmt.Errorf("entry %s: folders cannot have content", e.ID)
			}
			if err := validateEntries(e.Children, seen); err != nil {
				return err
			}
		} else if len(e.Children) > 0 {
			return fmt.Errorf("entry %s: only folders can have children", e.ID)
		}
	}
	return nil
}
