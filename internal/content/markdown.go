package content

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/deckplan/internal/deck"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser maps document structure onto slides: the first H1 becomes
// the title slide, later H1s become section headers, H2+ start content
// slides, and lists under a heading become its bullets.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) ([]deck.SlideRequest, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	b := &slideBuilder{}
	sawTitle := false

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			title := string(node.Text(src))
			switch {
			case node.Level == 1 && !sawTitle:
				sawTitle = true
				b.start(deck.TypeTitle, title)
			case node.Level == 1:
				b.start(deck.TypeSectionHeader, title)
			default:
				b.start(deck.TypeContent, title)
			}
		case *ast.List:
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				b.addItem(mdText(item, src))
			}
		default:
			b.addText(mdText(n, src))
		}
	}
	return b.result(), nil
}

// mdText gets the text content of a goldmark AST node. Blocks with raw
// source lines use those directly; container nodes recurse into children.
func mdText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines.Len() > 0 {
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
			}
			return strings.TrimSpace(buf.String())
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(mdText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
