package allocate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgallion1/deckplan/internal/deck"
	"github.com/dgallion1/deckplan/internal/template"
	"github.com/dgallion1/deckplan/internal/textproc"
)

// ErrNoRequests is returned when a planning run is started with no slides.
var ErrNoRequests = errors.New("no slides to allocate")

// Config carries the planning knobs the allocator needs.
type Config struct {
	MaxBullets         int
	MaxBulletLength    int
	UseSummarization   bool
	SummarizeThreshold int
	Workers            int
}

// Allocator turns slide requests into an allocation plan against one analyzed
// template. A single-request failure is logged and skipped; only an empty
// request set or an empty template fails the whole run.
type Allocator struct {
	structure  *template.Structure
	fitter     *Fitter
	splitter   *Splitter
	summarizer *textproc.Summarizer
	cfg        Config
	log        *slog.Logger
}

func NewAllocator(st *template.Structure, cfg Config, summarizer *textproc.Summarizer, log *slog.Logger) *Allocator {
	if cfg.MaxBullets <= 0 {
		cfg.MaxBullets = 6
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Allocator{
		structure:  st,
		fitter:     NewFitter(cfg.MaxBullets, cfg.MaxBulletLength),
		splitter:   NewSplitter(cfg.MaxBullets),
		summarizer: summarizer,
		cfg:        cfg,
		log:        log,
	}
}

// expandedRequest is one post-split request, tagged with the position of the
// request it came from.
type expandedRequest struct {
	sourceIndex int
	req         deck.SlideRequest
}

// Allocate plans the given requests. Entries come back in submission order
// with 1-based slide numbers assigned by output position, so skipped requests
// leave no gaps.
func (a *Allocator) Allocate(ctx context.Context, requests []deck.SlideRequest) (*Plan, error) {
	if len(requests) == 0 {
		return nil, ErrNoRequests
	}
	if len(a.structure.Slides) == 0 {
		return nil, template.ErrNoTemplateSlides
	}

	runID := newRunID()
	log := a.log.With("run_id", runID)

	var expanded []expandedRequest
	for i, req := range requests {
		for _, chunk := range a.splitter.Split(req) {
			expanded = append(expanded, expandedRequest{sourceIndex: i, req: chunk})
		}
	}
	if n := len(expanded) - len(requests); n > 0 {
		log.Info("split oversized requests", "extra_slides", n)
	}

	outcomes := a.allocateAll(ctx, expanded)

	var entries []deck.AllocationEntry
	var skipped []SkippedSlide
	skippedSource := make(map[int]bool)
	for _, o := range outcomes {
		if o.err != nil {
			log.Error("slide allocation failed", "slide", o.sourceIndex+1, "error", o.err)
			if !skippedSource[o.sourceIndex] {
				skippedSource[o.sourceIndex] = true
				skipped = append(skipped, SkippedSlide{Index: o.sourceIndex + 1, Reason: o.err.Error()})
			}
			continue
		}
		o.entry.SlideNumber = len(entries) + 1
		entries = append(entries, *o.entry)
	}

	log.Info("allocation complete", "submitted", len(requests), "planned", len(entries), "skipped", len(skipped))
	return &Plan{
		RunID:   runID,
		Entries: entries,
		Report:  buildReport(len(requests), entries, skipped),
	}, nil
}

// allocateOne maps a single request onto the best-matching template slide.
func (a *Allocator) allocateOne(req deck.SlideRequest) (*deck.AllocationEntry, error) {
	slide, err := template.Resolve(a.structure, string(req.Type))
	if err != nil {
		return nil, fmt.Errorf("resolve template for %q: %w", req.Type, err)
	}

	content := a.prepareContent(req.Content)

	entry := &deck.AllocationEntry{
		TemplateIndex: slide.Index,
		LayoutName:    slide.LayoutName,
		SlideType:     req.Type,
		Content:       make(map[int]deck.FittedContent),
		Notes:         req.Notes,
	}

	bodyFilled := false
	for _, ph := range slide.Placeholders {
		switch ph.Semantic {
		case template.SemanticTitle:
			entry.Content[ph.Index] = deck.FittedContent{
				Text:   a.fitter.FitText(req.Title, ph.CapacityChars),
				Role:   deck.RoleTitle,
				Format: deck.FormatPlain,
			}
		case template.SemanticBody:
			// Content goes to the first body placeholder; extra body
			// placeholders stay empty.
			if bodyFilled || content.IsEmpty() {
				continue
			}
			bodyFilled = true
			// Free text becomes a one-item list so it gets the same
			// per-bullet ceiling as everything else.
			items := content.Items()
			if !content.IsList() {
				items = []string{content.Text()}
			}
			cleaned := make([]string, 0, len(items))
			for _, item := range items {
				if c := textproc.CleanBullet(item); c != "" {
					cleaned = append(cleaned, c)
				}
			}
			entry.Content[ph.Index] = deck.FittedContent{
				Items:  a.fitter.FitBullets(cleaned, ph.CapacityChars),
				Role:   deck.RoleBody,
				Format: deck.FormatBullets,
			}
		}
	}
	return entry, nil
}

// prepareContent converts long free text to summarized bullets when
// summarization is enabled. Lists and short text pass through.
func (a *Allocator) prepareContent(content deck.TextField) deck.TextField {
	if content.IsList() || !a.cfg.UseSummarization || a.summarizer == nil {
		return content
	}
	text := content.Text()
	if len(text) <= a.cfg.SummarizeThreshold {
		return content
	}
	if items := a.summarizer.Summarize(text, a.cfg.MaxBullets); len(items) > 0 {
		return deck.BulletList(items)
	}
	return content
}
