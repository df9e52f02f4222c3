// Package preview renders markdown documents found in a location for the picker's preview pane.
package preview

import (
	"bytes"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// Extensions lists the document extensions the renderer accepts.
var Extensions = []string{"md", "markdown"}

// Heading is one entry of a document outline
type Heading struct {
	Level  int    `json:"level"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

// Document is a rendered markdown document
type Document struct {
	Title   string    `json:"title"`
	HTML    string    `json:"html"`
	Outline []Heading `json:"outline"`
}

// Renderer converts markdown to HTML. Raw HTML in the source is not passed through.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer with GFM and class-based syntax highlighting
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
		),
	)
	return &Renderer{md: md}
}

// Render parses source once and returns its HTML, outline and title (the first heading).
func (r *Renderer) Render(source []byte) (*Document, error) {
	doc := r.md.Parser().Parse(text.NewReader(source))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, err
	}

	outline := collectHeadings(doc, source)
	title := ""
	if len(outline) > 0 {
		title = outline[0].Title
	}
	return &Document{Title: title, HTML: buf.String(), Outline: outline}, nil
}

func collectHeadings(doc ast.Node, source []byte) []Heading {
	outline := []Heading{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		heading, ok := n.(*ast.Heading)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		h := Heading{Level: heading.Level, Title: plainText(heading, source)}
		if id, ok := heading.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				h.Anchor = string(b)
			}
		}
		outline = append(outline, h)
		return ast.WalkSkipChildren, nil
	})
	return outline
}

// plainText concatenates the text segments below n, including inside emphasis and links.
func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.CodeSpan:
			for child := t.FirstChild(); child != nil; child = child.NextSibling() {
				if seg, ok := child.(*ast.Text); ok {
					sb.Write(seg.Segment.Value(source))
				}
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
