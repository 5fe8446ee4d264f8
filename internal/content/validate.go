package content

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/deckplan/internal/deck"
)

// ErrInvalidSlide marks input that cannot be turned into a slide.
var ErrInvalidSlide = errors.New("invalid slide")

// Validate normalizes parsed requests. An unknown slide type is coerced to
// content with a warning; a slide with neither title nor content fails the
// whole input, since silently dropping it would shift every later slide.
func Validate(requests []deck.SlideRequest, log *slog.Logger) ([]deck.SlideRequest, error) {
	out := make([]deck.SlideRequest, 0, len(requests))
	for i, req := range requests {
		if req.Type == "" {
			req.Type = deck.TypeContent
		}
		if !req.Type.Valid() {
			log.Warn("unknown slide type, using content", "slide", i+1, "type", string(req.Type))
			req.Type = deck.TypeContent
		}
		if req.Title == "" && req.Content.IsEmpty() {
			return nil, fmt.Errorf("slide %d has neither title nor content: %w", i+1, ErrInvalidSlide)
		}
		out = append(out, req)
	}
	return out, nil
}
