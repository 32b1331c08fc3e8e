package launch

import (
	"testing"

	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/types"
	"github.com/yourusername/desk-cli/internal/window"
)

func TestForFile(t *testing.T) {
	p := DefaultPolicy()
	folder := files.Entry{ID: "blog", Name: "Blog", Kind: types.FileFolder, Children: []files.Entry{
		{ID: "b1", Name: "one.txt", Kind: types.FileText, Content: "1"},
	}}

	tests := []struct {
		name        string
		entry       files.Entry
		wantOK      bool
		wantContent window.ContentType
	}{
		{"text", files.Entry{ID: "r", Name: "README", Kind: types.FileText, Content: "# hi"}, true, window.ContentText},
		{"folder", folder, true, window.ContentFolder},
		{"image", files.Entry{ID: "i", Name: "pic.png", Kind: types.FileImage}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ok := p.ForFile(tt.entry)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if req.Kind != types.KindFileExplorer {
				t.Errorf("Kind = %q, want fileExplorer", req.Kind)
			}
			if req.Title != tt.entry.Name {
				t.Errorf("Title = %q, want %q", req.Title, tt.entry.Name)
			}
			if req.Size != (types.Size{Width: 600, Height: 400}) {
				t.Errorf("Size = %v, want 600x400", req.Size)
			}
			if req.Content.Type != tt.wantContent {
				t.Errorf("Content.Type = %q, want %q", req.Content.Type, tt.wantContent)
			}
		})
	}
}

func TestForFile_TextBody(t *testing.T) {
	req, _ := DefaultPolicy().ForFile(files.Entry{ID: "r", Name: "README", Kind: types.FileText, Content: "# hi"})
	if req.Content.Text != "# hi" {
		t.Errorf("Content.Text = %q, want %q", req.Content.Text, "# hi")
	}
}

func TestForFile_FolderCarriesChildren(t *testing.T) {
	folder := files.Entry{ID: "blog", Name: "Blog", Kind: types.FileFolder, Children: []files.Entry{
		{ID: "b1", Name: "one.txt", Kind: types.FileText},
	}}
	req, _ := DefaultPolicy().ForFile(folder)

	if req.Content.Folder == nil || len(req.Content.Folder.Children) != 1 {
		t.Fatalf("folder content = %+v", req.Content.Folder)
	}
}

func TestForApp(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		id    string
		kind  types.WindowKind
		title string
		size  types.Size
		url   string
	}{
		{"files", types.KindFileExplorer, "File Explorer", types.Size{Width: 600, Height: 400}, ""},
		{"terminal", types.KindTerminal, "Terminal", types.Size{Width: 600, Height: 400}, ""},
		{"browser", types.KindBrowser, "Browser", types.Size{Width: 800, Height: 600}, "https://github.com"},
	}

	for _, tt := range tests {
		req, ok := p.ForApp(tt.id)
		if !ok {
			t.Errorf("ForApp(%q) not found", tt.id)
			continue
		}
		if req.Kind != tt.kind || req.Title != tt.title || req.Size != tt.size || req.Content.URL != tt.url {
			t.Errorf("ForApp(%q) = %+v", tt.id, req)
		}
	}

	if _, ok := p.ForApp("calculator"); ok {
		t.Error("unknown app should not be found")
	}
}
