package markdown

import (
	"bytes"
	"html/template"
	"strings"
	"sync"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// RichTextClass marks the containers that hold rendered markdown: post bodies and tool
// descriptions. Highlighting rules only apply inside them.
const RichTextClass = "rich-text"

// The site is light only, so a single palette is emitted.
const highlightStyle = "github"

var (
	highlightCSSOnce sync.Once
	highlightCSS     template.CSS
)

// ChromaCSS returns the code highlighting rules scoped to RichTextClass.
func ChromaCSS() template.CSS {
	highlightCSSOnce.Do(func() {
		highlightCSS = template.CSS(scopeRules(styleCSS(highlightStyle), "."+RichTextClass))
	})
	return highlightCSS
}

func styleCSS(name string) string {
	style := styles.Get(name)
	if style == nil {
		style = styles.Fallback
	}

	var buffer bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buffer, style); err != nil {
		return ""
	}
	return buffer.String()
}

// scopeRules prefixes every selector of css with scope. Chroma writes one rule per line,
// optionally led by a comment naming the token type; the comments are dropped. Without the
// scope its .bg rule would repaint anything else carrying that class.
func scopeRules(css string, scope string) string {
	var out strings.Builder
	for _, line := range strings.Split(css, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "/*") {
			end := strings.Index(line, "*/")
			if end < 0 {
				continue
			}
			line = strings.TrimSpace(line[end+2:])
		}

		brace := strings.Index(line, "{")
		if brace <= 0 {
			continue
		}

		selectors := strings.Split(line[:brace], ",")
		for idx, selector := range selectors {
			selectors[idx] = scope + " " + strings.TrimSpace(selector)
		}
		out.WriteString(strings.Join(selectors, ", "))
		out.WriteString(" ")
		out.WriteString(line[brace:])
		out.WriteString("\n")
	}
	return out.String()
}
