package allocate

import "github.com/dgallion1/deckplan/internal/deck"

// SkippedSlide records a request that could not be planned. Index is the
// 1-based position of the request as submitted, before any splitting.
type SkippedSlide struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Report summarizes a planning run.
type Report struct {
	Submitted   int            `json:"submitted"`
	Planned     int            `json:"planned"`
	Skipped     []SkippedSlide `json:"skipped,omitempty"`
	SlideTypes  map[string]int `json:"slide_types"`
	LayoutsUsed []string       `json:"layouts_used"`
}

// Plan is the complete output of a planning run.
type Plan struct {
	RunID   string                 `json:"run_id"`
	Entries []deck.AllocationEntry `json:"entries"`
	Report  Report                 `json:"report"`
}

func buildReport(submitted int, entries []deck.AllocationEntry, skipped []SkippedSlide) Report {
	r := Report{
		Submitted:  submitted,
		Planned:    len(entries),
		Skipped:    skipped,
		SlideTypes: make(map[string]int),
	}
	seen := make(map[string]bool)
	for _, e := range entries {
		r.SlideTypes[string(e.SlideType)]++
		if e.LayoutName != "" && !seen[e.LayoutName] {
			seen[e.LayoutName] = true
			r.LayoutsUsed = append(r.LayoutsUsed, e.LayoutName)
		}
	}
	return r
}
