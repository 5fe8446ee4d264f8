package content

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/deckplan/internal/deck"
	"golang.org/x/net/html"
)

// HTMLParser maps heading structure onto slides the same way the markdown
// parser does: first h1 is the title slide, later h1s are section headers,
// h2+ start content slides, list items become bullets.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) ([]deck.SlideRequest, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	b := &slideBuilder{}
	sawTitle := false

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				title := textContent(n)
				switch {
				case level == 1 && !sawTitle:
					sawTitle = true
					b.start(deck.TypeTitle, title)
				case level == 1:
					b.start(deck.TypeSectionHeader, title)
				default:
					b.start(deck.TypeContent, title)
				}
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "li":
				b.addItem(textContent(n))
				return
			case "p", "td", "blockquote":
				b.addText(textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return b.result(), nil
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
