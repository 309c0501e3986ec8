package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/reportgest/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Headings stay in
// the text as their own blocks so keyword sectioning can find them.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	out := &document.Document{Title: titleFromFilename(filename)}

	var blocks blockWriter
	titled := false
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		t := extractText(n, src)
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 && !titled && t != "" {
			out.Title = t
			titled = true
		}
		blocks.add(t)
	}

	if blocks.Len() > 0 {
		out.Pages = []document.Page{{Number: 1, Text: blocks.String()}}
	}
	return out, nil
}

// extractText gets the text content of a goldmark AST node. Only code
// and raw HTML blocks are read from their source lines; every other node
// is rebuilt from its inline children so nothing is written twice.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	writeText(&buf, n, src)
	return strings.TrimSpace(buf.String())
}

func writeText(buf *bytes.Buffer, n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.CodeBlock, *ast.FencedCodeBlock, *ast.HTMLBlock:
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return
	case *ast.Text:
		buf.Write(node.Segment.Value(src))
		if node.HardLineBreak() || node.SoftLineBreak() {
			buf.WriteByte('\n')
		}
		return
	case *ast.String:
		buf.Write(node.Value)
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		// Nested blocks (list items, quoted paragraphs) get their own line.
		if c.Type() == ast.TypeBlock && buf.Len() > 0 && !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
			buf.WriteByte('\n')
		}
		writeText(buf, c, src)
	}
}

// blockWriter joins non-empty text blocks with blank lines.
type blockWriter struct {
	strings.Builder
}

func (b *blockWriter) add(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteString("\n\n")
	}
	b.WriteString(s)
}
