// Package allocate maps slide requests onto template slides, fitting content
// to placeholder capacities and splitting oversized requests.
package allocate

import (
	"github.com/dgallion1/deckplan/internal/textproc"
)

// minPartialChars is the smallest leftover capacity worth filling with a
// truncated bullet. Below this a partial bullet is dropped instead.
const minPartialChars = 50

// Fitter packs content into a placeholder's character capacity.
type Fitter struct {
	maxBullets   int
	maxBulletLen int
}

func NewFitter(maxBullets, maxBulletLen int) *Fitter {
	return &Fitter{maxBullets: maxBullets, maxBulletLen: maxBulletLen}
}

// FitBullets greedily packs items into maxChars. Each item is first capped at
// the per-bullet limit. The first item that does not fit is either truncated
// into the remaining capacity or dropped, and packing stops there.
func (f *Fitter) FitBullets(items []string, maxChars int) []string {
	fitted := make([]string, 0, min(len(items), f.maxBullets))
	total := 0
	for _, item := range items {
		if len(fitted) >= f.maxBullets {
			break
		}
		bullet := textproc.Truncate(item, f.maxBulletLen)
		if total+len(bullet) <= maxChars {
			fitted = append(fitted, bullet)
			total += len(bullet)
			continue
		}
		if remaining := maxChars - total; remaining > minPartialChars {
			fitted = append(fitted, textproc.Truncate(bullet, remaining))
		}
		break
	}
	return fitted
}

// FitText shortens free text to the placeholder capacity.
func (f *Fitter) FitText(text string, maxChars int) string {
	return textproc.Truncate(text, maxChars)
}
