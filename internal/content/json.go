package content

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dgallion1/deckplan/internal/deck"
)

// JSONParser handles the native deck format: {"slides": [...]} or a bare
// array of slide objects.
type JSONParser struct{}

func (p *JSONParser) Parse(r io.Reader, filename string) ([]deck.SlideRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Slides []deck.SlideRequest `json:"slides"`
	}
	if err := json.Unmarshal(data, &doc); err == nil && doc.Slides != nil {
		return doc.Slides, nil
	}

	var slides []deck.SlideRequest
	if err := json.Unmarshal(data, &slides); err != nil {
		return nil, fmt.Errorf("parse json deck: %w", err)
	}
	return slides, nil
}
