package allocate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dgallion1/deckplan/internal/deck"
	"github.com/dgallion1/deckplan/internal/template"
	"github.com/dgallion1/deckplan/internal/textproc"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testStructure() *template.Structure {
	return &template.Structure{
		Slides: []template.Slide{
			{
				Index: 0, LayoutName: "Title Slide", SlideType: "title", HasTitle: true,
				Placeholders: []template.Placeholder{
					{Index: 0, Semantic: template.SemanticTitle, CapacityChars: 50},
				},
			},
			{
				Index: 1, LayoutName: "Title and Content", SlideType: "content", HasTitle: true, HasBody: true,
				Placeholders: []template.Placeholder{
					{Index: 0, Semantic: template.SemanticTitle, CapacityChars: 60},
					{Index: 1, Semantic: template.SemanticBody, CapacityChars: 1000},
				},
			},
			{
				Index: 2, LayoutName: "Section Header", SlideType: "section_header", HasTitle: true,
				Placeholders: []template.Placeholder{
					{Index: 0, Semantic: template.SemanticTitle, CapacityChars: 80},
				},
			},
		},
	}
}

func newTestAllocator(st *template.Structure, cfg Config) *Allocator {
	sum := textproc.NewSummarizer(textproc.TFIDFScorer{}, 20, testLogger())
	return NewAllocator(st, cfg, sum, testLogger())
}

func TestAllocateEmptyRequests(t *testing.T) {
	a := newTestAllocator(testStructure(), Config{MaxBullets: 6, MaxBulletLength: 200})
	if _, err := a.Allocate(context.Background(), nil); !errors.Is(err, ErrNoRequests) {
		t.Errorf("got %v, want ErrNoRequests", err)
	}
}

func TestAllocateEmptyTemplate(t *testing.T) {
	a := newTestAllocator(&template.Structure{}, Config{MaxBullets: 6, MaxBulletLength: 200})
	_, err := a.Allocate(context.Background(), []deck.SlideRequest{
		{Type: deck.TypeContent, Title: "t", Content: deck.FreeText("body")},
	})
	if !errors.Is(err, template.ErrNoTemplateSlides) {
		t.Errorf("got %v, want ErrNoTemplateSlides", err)
	}
}

func TestAllocateTitleTruncatedToCapacity(t *testing.T) {
	a := newTestAllocator(testStructure(), Config{MaxBullets: 6, MaxBulletLength: 200})
	longTitle := strings.Repeat("Presentation Strategy Overview ", 10)

	plan, err := a.Allocate(context.Background(), []deck.SlideRequest{
		{Type: deck.TypeTitle, Title: longTitle},
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(plan.Entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(plan.Entries))
	}

	fitted := plan.Entries[0].Content[0]
	if fitted.Role != deck.RoleTitle {
		t.Errorf("role = %q, want title", fitted.Role)
	}
	if len(fitted.Text) > 50 {
		t.Errorf("title length %d exceeds capacity 50", len(fitted.Text))
	}
	if !strings.HasSuffix(fitted.Text, "...") {
		t.Errorf("truncated title not marked: %q", fitted.Text)
	}
}

func TestAllocateBulletsCleanedAndFitted(t *testing.T) {
	a := newTestAllocator(testStructure(), Config{MaxBullets: 6, MaxBulletLength: 200})
	plan, err := a.Allocate(context.Background(), []deck.SlideRequest{
		{
			Type:    deck.TypeContent,
			Title:   "Status",
			Content: deck.BulletList([]string{"  first point", "second   point", ""}),
		},
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	body := plan.Entries[0].Content[1]
	if body.Format != deck.FormatBullets {
		t.Fatalf("format = %q, want bullets", body.Format)
	}
	want := []string{"First point.", "Second point."}
	if len(body.Items) != len(want) {
		t.Fatalf("got %d bullets %q, want %d", len(body.Items), body.Items, len(want))
	}
	for i := range want {
		if body.Items[i] != want[i] {
			t.Errorf("bullet %d = %q, want %q", i, body.Items[i], want[i])
		}
	}
}

func TestAllocateSplitsOversizedRequest(t *testing.T) {
	a := newTestAllocator(testStructure(), Config{MaxBullets: 6, MaxBulletLength: 200})
	items := make([]string, 10)
	for i := range items {
		items[i] = "agenda item number " + string(rune('a'+i))
	}

	plan, err := a.Allocate(context.Background(), []deck.SlideRequest{
		{Type: deck.TypeContent, Title: "Agenda", Content: deck.BulletList(items)},
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(plan.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(plan.Entries))
	}
	if plan.Entries[0].SlideNumber != 1 || plan.Entries[1].SlideNumber != 2 {
		t.Errorf("slide numbers %d, %d, want 1, 2",
			plan.Entries[0].SlideNumber, plan.Entries[1].SlideNumber)
	}
	second := plan.Entries[1].Content[0]
	if !strings.HasSuffix(second.Text, "(cont.)") {
		t.Errorf("continuation title: %q", second.Text)
	}
	if got := len(plan.Entries[1].Content[1].Items); got != 4 {
		t.Errorf("second slide has %d bullets, want 4", got)
	}
}

func TestAllocateSummarizesLongFreeText(t *testing.T) {
	a := newTestAllocator(testStructure(), Config{
		MaxBullets: 6, MaxBulletLength: 200,
		UseSummarization: true, SummarizeThreshold: 300,
	})
	long := strings.Repeat("The platform migration reduced deployment times considerably. ", 8)

	plan, err := a.Allocate(context.Background(), []deck.SlideRequest{
		{Type: deck.TypeContent, Title: "Results", Content: deck.FreeText(long)},
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	body := plan.Entries[0].Content[1]
	if body.Format != deck.FormatBullets {
		t.Errorf("long text not summarized to bullets, format %q", body.Format)
	}
	if len(body.Items) == 0 || len(body.Items) > 6 {
		t.Errorf("got %d bullets, want 1..6", len(body.Items))
	}
}

func TestAllocateShortFreeTextBecomesSingleBullet(t *testing.T) {
	a := newTestAllocator(testStructure(), Config{
		MaxBullets: 6, MaxBulletLength: 200,
		UseSummarization: true, SummarizeThreshold: 300,
	})
	plan, err := a.Allocate(context.Background(), []deck.SlideRequest{
		{Type: deck.TypeContent, Title: "Note", Content: deck.FreeText("A short remark.")},
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	body := plan.Entries[0].Content[1]
	if body.Format != deck.FormatBullets {
		t.Errorf("format = %q, want bullets", body.Format)
	}
	if len(body.Items) != 1 || body.Items[0] != "A short remark." {
		t.Errorf("short text not kept as one bullet: %q", body.Items)
	}
}

func TestAllocateFreeTextBodyCappedPerBullet(t *testing.T) {
	a := newTestAllocator(testStructure(), Config{
		MaxBullets: 6, MaxBulletLength: 200,
		UseSummarization: false,
	})
	long := strings.Repeat("The quarterly planning cycle ran long again. ", 6)

	plan, err := a.Allocate(context.Background(), []deck.SlideRequest{
		{Type: deck.TypeContent, Title: "Notes", Content: deck.FreeText(long)},
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	body := plan.Entries[0].Content[1]
	if body.Format != deck.FormatBullets {
		t.Errorf("format = %q, want bullets", body.Format)
	}
	if len(body.Items) != 1 {
		t.Fatalf("got %d bullets, want 1", len(body.Items))
	}
	// Per-bullet ceiling applies even with capacity to spare.
	if len(body.Items[0]) > 200 {
		t.Errorf("bullet length %d exceeds per-item limit 200", len(body.Items[0]))
	}
	if !strings.HasSuffix(body.Items[0], "...") {
		t.Errorf("capped bullet not marked: %q", body.Items[0])
	}
}

func TestAllocateFallbackTypesResolve(t *testing.T) {
	a := newTestAllocator(testStructure(), Config{MaxBullets: 6, MaxBulletLength: 200})
	plan, err := a.Allocate(context.Background(), []deck.SlideRequest{
		{Type: deck.TypeClosing, Title: "Thanks"},
		{Type: deck.TypeTwoColumn, Title: "Compare", Content: deck.BulletList([]string{"left", "right"})},
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(plan.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(plan.Entries))
	}
	// two_column falls back to the content layout.
	if plan.Entries[1].TemplateIndex != 1 {
		t.Errorf("two_column resolved to template %d, want 1", plan.Entries[1].TemplateIndex)
	}
}

func TestAllocateParallelMatchesSequential(t *testing.T) {
	requests := make([]deck.SlideRequest, 12)
	for i := range requests {
		requests[i] = deck.SlideRequest{
			Type:    deck.TypeContent,
			Title:   "Slide " + string(rune('A'+i)),
			Content: deck.BulletList([]string{"one point", "another point"}),
		}
	}

	seq := newTestAllocator(testStructure(), Config{MaxBullets: 6, MaxBulletLength: 200, Workers: 1})
	par := newTestAllocator(testStructure(), Config{MaxBullets: 6, MaxBulletLength: 200, Workers: 4})

	seqPlan, err := seq.Allocate(context.Background(), requests)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	parPlan, err := par.Allocate(context.Background(), requests)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if len(seqPlan.Entries) != len(parPlan.Entries) {
		t.Fatalf("entry counts differ: %d vs %d", len(seqPlan.Entries), len(parPlan.Entries))
	}
	for i := range seqPlan.Entries {
		s, p := seqPlan.Entries[i], parPlan.Entries[i]
		if s.SlideNumber != p.SlideNumber || s.Content[0].Text != p.Content[0].Text {
			t.Errorf("entry %d differs: %+v vs %+v", i, s, p)
		}
	}
}

func TestAllocateSkipsReportOneBasedIndex(t *testing.T) {
	a := newTestAllocator(testStructure(), Config{MaxBullets: 6, MaxBulletLength: 200})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan, err := a.Allocate(ctx, []deck.SlideRequest{
		{Type: deck.TypeTitle, Title: "Intro"},
		{Type: deck.TypeContent, Title: "Body", Content: deck.BulletList([]string{"a point"})},
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if len(plan.Entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(plan.Entries))
	}
	if len(plan.Report.Skipped) != 2 {
		t.Fatalf("skipped: %+v", plan.Report.Skipped)
	}
	if plan.Report.Skipped[0].Index != 1 || plan.Report.Skipped[1].Index != 2 {
		t.Errorf("skip indexes %d, %d, want 1, 2",
			plan.Report.Skipped[0].Index, plan.Report.Skipped[1].Index)
	}
}

func TestAllocateReport(t *testing.T) {
	a := newTestAllocator(testStructure(), Config{MaxBullets: 6, MaxBulletLength: 200})
	plan, err := a.Allocate(context.Background(), []deck.SlideRequest{
		{Type: deck.TypeTitle, Title: "Intro"},
		{Type: deck.TypeContent, Title: "Body", Content: deck.BulletList([]string{"a point"})},
		{Type: deck.TypeSectionHeader, Title: "Part Two"},
	})
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}

	r := plan.Report
	if r.Submitted != 3 || r.Planned != 3 {
		t.Errorf("submitted/planned = %d/%d, want 3/3", r.Submitted, r.Planned)
	}
	if len(r.Skipped) != 0 {
		t.Errorf("unexpected skips: %+v", r.Skipped)
	}
	if r.SlideTypes["title"] != 1 || r.SlideTypes["content"] != 1 || r.SlideTypes["section_header"] != 1 {
		t.Errorf("slide type counts: %v", r.SlideTypes)
	}
	if len(r.LayoutsUsed) != 3 {
		t.Errorf("layouts used: %v", r.LayoutsUsed)
	}
	if plan.RunID == "" || len(plan.RunID) != 26 {
		t.Errorf("run id %q, want 26-char ULID", plan.RunID)
	}
}
