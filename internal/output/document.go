package output

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/fatih/color"
	"github.com/go-enry/go-enry/v2"
)

const (
	lightStyleName = "github"
	darkStyleName  = "catppuccin-mocha"
)

// DocumentLanguage guesses the language of a file tree document from its
// name and content. Plain notes come back as "Markdown" since the seed
// documents use markdown headings and lists.
func DocumentLanguage(name, text string) string {
	lang := enry.GetLanguage(name, []byte(text))
	if lang == "" || lang == "Text" {
		return "Markdown"
	}
	return lang
}

// getLexer returns a Chroma lexer by name, or auto-detects from content
func getLexer(name, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

// documentStyle resolves the highlight style for the desktop theme
func documentStyle(dark bool) *chroma.Style {
	if dark {
		return styles.Get(darkStyleName)
	}
	return styles.Get(lightStyleName)
}

// RenderDocument writes a text document to w. With color enabled the body is
// syntax highlighted for the terminal; otherwise it is written unchanged.
func RenderDocument(w io.Writer, name, text string, dark bool) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if color.NoColor {
		_, err := io.WriteString(w, text)
		return err
	}

	lexer := chroma.Coalesce(getLexer(DocumentLanguage(name, text), text))
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		_, err = io.WriteString(w, text)
		return err
	}
	return formatters.TTY256.Format(w, documentStyle(dark), it)
}
