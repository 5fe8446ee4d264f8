package content

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/deckplan/internal/deck"
)

// TextParser handles plain text. Blank lines separate paragraphs; a short
// single-line opening paragraph becomes the title slide, and every other
// paragraph becomes a content slide.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]deck.SlideRequest, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	var slides []deck.SlideRequest
	for i, para := range paragraphs {
		if i == 0 && len(para) < 80 && !strings.Contains(para, "\n") {
			slides = append(slides, deck.SlideRequest{Type: deck.TypeTitle, Title: para})
			continue
		}
		slides = append(slides, deck.SlideRequest{
			Type:    deck.TypeContent,
			Content: deck.FreeText(para),
		})
	}
	return slides, nil
}
