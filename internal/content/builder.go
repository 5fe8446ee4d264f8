package content

import (
	"strings"

	"github.com/dgallion1/deckplan/internal/deck"
)

// slideBuilder accumulates one slide's worth of content between headings.
// Shared by the heading-structured parsers (markdown, html, docx).
type slideBuilder struct {
	requests []deck.SlideRequest
	open     bool
	current  deck.SlideRequest
	items    []string
	texts    []string
	section  string
}

// start flushes any open slide and begins a new one.
func (b *slideBuilder) start(t deck.SlideType, title string) {
	b.flush()
	b.open = true
	b.current = deck.SlideRequest{Type: t, Title: title, Section: b.section}
	if t == deck.TypeSectionHeader {
		b.section = title
	}
}

func (b *slideBuilder) addItem(item string) {
	if item = strings.TrimSpace(item); item != "" {
		b.items = append(b.items, item)
	}
}

func (b *slideBuilder) addText(text string) {
	if text = strings.TrimSpace(text); text != "" {
		b.texts = append(b.texts, text)
	}
}

// flush closes the open slide, if any. Content collected before the first
// heading becomes an untitled content slide. Slides with neither title nor
// content are dropped.
func (b *slideBuilder) flush() {
	if !b.open && len(b.items) == 0 && len(b.texts) == 0 {
		return
	}
	req := b.current
	if !b.open {
		req = deck.SlideRequest{Type: deck.TypeContent, Section: b.section}
	}

	switch {
	case len(b.items) > 0:
		items := b.items
		// Stray paragraph text inside a bulleted section rides along as
		// extra bullets rather than being lost.
		items = append(items, b.texts...)
		req.Content = deck.BulletList(items)
	case len(b.texts) > 0:
		req.Content = deck.FreeText(strings.Join(b.texts, "\n\n"))
	}

	if req.Title != "" || !req.Content.IsEmpty() {
		b.requests = append(b.requests, req)
	}
	b.open = false
	b.current = deck.SlideRequest{}
	b.items = nil
	b.texts = nil
}

func (b *slideBuilder) result() []deck.SlideRequest {
	b.flush()
	return b.requests
}
