package content

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/deckplan/internal/deck"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Heading styles drive slide boundaries;
// list paragraphs become bullets.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) ([]deck.SlideRequest, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "deckplan-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	b := &slideBuilder{}
	sawTitle := false

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		style := docxStyle(para)
		switch {
		case docxHeadingLevel(style) == 1 && !sawTitle:
			sawTitle = true
			b.start(deck.TypeTitle, text)
		case docxHeadingLevel(style) == 1:
			b.start(deck.TypeSectionHeader, text)
		case docxHeadingLevel(style) > 1:
			b.start(deck.TypeContent, text)
		case docxIsList(style):
			b.addItem(text)
		default:
			b.addText(text)
		}
	}
	return b.result(), nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

func docxHeadingLevel(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if !strings.HasPrefix(s, "heading") {
		return 0
	}
	switch s {
	case "heading1":
		return 1
	case "heading2":
		return 2
	case "heading3":
		return 3
	case "heading4":
		return 4
	case "heading5":
		return 5
	case "heading6":
		return 6
	}
	return 0
}

func docxIsList(style string) bool {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	return s == "listparagraph" || strings.HasPrefix(s, "listbullet") || strings.HasPrefix(s, "listnumber")
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
