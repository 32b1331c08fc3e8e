package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/desk-cli/internal/files"
	"github.com/yourusername/desk-cli/internal/launch"
	"github.com/yourusername/desk-cli/internal/window"
)

// PrintWindowsTable prints windows back to front in a table
func PrintWindowsTable(w io.Writer, windows []window.Record) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Title", "Kind", "Position", "Size", "Stack", "State", "Focus")

	for _, win := range window.SortByStackOrder(append([]window.Record(nil), windows...)) {
		focus := ""
		if win.Focused {
			focus = "*"
		}

		table.Append(
			win.ID,
			truncate(win.Title, 30),
			string(win.Kind),
			win.Position.String(),
			win.Size.String(),
			fmt.Sprintf("%d", win.StackOrder),
			win.State(),
			focus,
		)
	}

	table.Render()
}

// PrintFilesTable prints the file tree, one row per entry, indented by depth
func PrintFilesTable(w io.Writer, entries []files.Entry) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Kind", "Size", "Selected")

	var walk func(entries []files.Entry, depth int)
	walk = func(entries []files.Entry, depth int) {
		for _, e := range entries {
			selected := ""
			if e.Selected {
				selected = "*"
			}
			size := fmt.Sprintf("%d", len(e.Content))
			if e.IsFolder() {
				size = fmt.Sprintf("%d items", len(e.Children))
			}

			table.Append(
				e.ID,
				strings.Repeat("  ", depth)+truncate(e.Name, 30),
				string(e.Kind),
				size,
				selected,
			)
			walk(e.Children, depth+1)
		}
	}
	walk(entries, 0)

	table.Render()

	if ids := files.NewTree(entries).SelectedIDs(); len(ids) > 0 {
		fmt.Fprintf(w, "Selected: %s\n", strings.Join(ids, ", "))
	}
}

// PrintAppsTable prints the dock entries
func PrintAppsTable(w io.Writer, apps []launch.App) {
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Name", "Kind", "Title", "Size", "URL")

	for _, app := range apps {
		table.Append(
			app.ID,
			app.Name,
			string(app.Kind),
			truncate(app.Title, 25),
			app.Size.String(),
			truncate(app.URL, 35),
		)
	}

	table.Render()
}

// PrintWindowDetail prints detailed information about a single window
func PrintWindowDetail(w io.Writer, win window.Record) {
	fmt.Fprintf(w, "Window ID: %s\n", win.ID)
	fmt.Fprintf(w, "Title: %s\n", win.Title)
	fmt.Fprintf(w, "Kind: %s\n", win.Kind)
	fmt.Fprintf(w, "Frame: %s\n", win.FormatFrame())
	fmt.Fprintf(w, "Stack Order: %d\n", win.StackOrder)
	fmt.Fprintf(w, "State: %s\n", win.State())
	fmt.Fprintf(w, "Focused: %v\n", win.Focused)
	if win.Restore != nil {
		fmt.Fprintf(w, "Restores To: %dx%d @ (%d, %d)\n",
			win.Restore.Width, win.Restore.Height, win.Restore.X, win.Restore.Y)
	}

	switch win.Content.Type {
	case window.ContentText:
		fmt.Fprintf(w, "Content: text, %d bytes\n", len(win.Content.Text))
	case window.ContentURL:
		fmt.Fprintf(w, "Content: %s\n", win.Content.URL)
	case window.ContentFolder:
		if win.Content.Folder != nil {
			fmt.Fprintf(w, "Content: folder %s (%d items)\n", win.Content.Folder.Name, len(win.Content.Folder.Children))
		}
	default:
		fmt.Fprintln(w, "Content: none")
	}
}

// truncate shortens s to maxLen terminal cells
func truncate(s string, maxLen int) string {
	return runewidth.Truncate(s, maxLen, "...")
}
