package allocate

import (
	"github.com/dgallion1/deckplan/internal/deck"
)

const (
	// splitCharThreshold is the total character count above which a bullet
	// list is split across slides.
	splitCharThreshold = 2000
	// splitCountFactor scales the per-slide bullet limit into the count
	// that triggers splitting.
	splitCountFactor = 1.5
	// contSuffix marks continuation slides produced by a split.
	contSuffix = " (cont.)"
)

// Splitter breaks oversized bullet-list requests into several slides.
// Free-text content is never split; truncation handles it downstream.
type Splitter struct {
	maxBullets int
}

func NewSplitter(maxBullets int) *Splitter {
	return &Splitter{maxBullets: maxBullets}
}

// NeedsSplit reports whether a request carries too many bullets or too much
// bullet text for a single slide.
func (s *Splitter) NeedsSplit(req deck.SlideRequest) bool {
	if !req.Content.IsList() {
		return false
	}
	items := req.Content.Items()
	if float64(len(items)) > splitCountFactor*float64(s.maxBullets) {
		return true
	}
	total := 0
	for _, item := range items {
		total += len(item)
	}
	return total > splitCharThreshold
}

// Split expands a request into one or more requests of at most maxBullets
// items each. Continuation slides get a suffixed title; section and notes are
// carried onto every chunk.
func (s *Splitter) Split(req deck.SlideRequest) []deck.SlideRequest {
	if !s.NeedsSplit(req) {
		return []deck.SlideRequest{req}
	}

	items := req.Content.Items()
	out := make([]deck.SlideRequest, 0, (len(items)+s.maxBullets-1)/s.maxBullets)
	for start := 0; start < len(items); start += s.maxBullets {
		end := min(start+s.maxBullets, len(items))
		chunk := req
		chunk.Content = deck.BulletList(items[start:end])
		if start > 0 {
			chunk.Title = req.Title + contSuffix
		}
		out = append(out, chunk)
	}
	return out
}
