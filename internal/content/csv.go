package content

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/deckplan/internal/deck"
)

// CSVParser handles CSV files with a header row. Recognized columns are
// slide_type (or type), title, content, section and notes; unknown columns
// are ignored. A content cell splits into bullets on pipes or newlines.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) ([]deck.SlideRequest, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	col := make(map[string]int)
	for i, h := range records[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var slides []deck.SlideRequest
	for _, row := range records[1:] {
		slideType := cell(row, "slide_type")
		if slideType == "" {
			slideType = cell(row, "type")
		}
		req := deck.SlideRequest{
			Type:    deck.SlideType(slideType),
			Title:   cell(row, "title"),
			Section: cell(row, "section"),
			Notes:   cell(row, "notes"),
		}
		if req.Type == "" {
			req.Type = deck.TypeContent
		}
		req.Content = splitCell(cell(row, "content"))
		slides = append(slides, req)
	}
	return slides, nil
}

// splitCell turns a content cell into bullets when it carries pipe or
// newline separators, otherwise free text.
func splitCell(s string) deck.TextField {
	if s == "" {
		return deck.TextField{}
	}
	sep := ""
	if strings.Contains(s, "|") {
		sep = "|"
	} else if strings.Contains(s, "\n") {
		sep = "\n"
	}
	if sep == "" {
		return deck.FreeText(s)
	}
	var items []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return deck.BulletList(items)
}
