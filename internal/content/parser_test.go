package content

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dgallion1/deckplan/internal/deck"
)

func TestForFile(t *testing.T) {
	for _, name := range []string{"deck.json", "notes.md", "rows.csv", "doc.txt", "page.html", "report.docx", "paper.pdf"} {
		if _, err := ForFile(name); err != nil {
			t.Errorf("ForFile(%q): %v", name, err)
		}
		if !IsSupportedExtension(name) {
			t.Errorf("IsSupportedExtension(%q) = false", name)
		}
	}
	if _, err := ForFile("deck.xlsx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestJSONParserObjectForm(t *testing.T) {
	in := `{"slides":[
		{"type":"title","title":"My Deck"},
		{"type":"content","title":"Points","content":["one","two"]},
		{"type":"content","title":"Prose","content":"Free text body."}
	]}`
	slides, err := (&JSONParser{}).Parse(strings.NewReader(in), "deck.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("got %d slides, want 3", len(slides))
	}
	if !slides[1].Content.IsList() || len(slides[1].Content.Items()) != 2 {
		t.Errorf("array content: %+v", slides[1].Content)
	}
	if slides[2].Content.IsList() {
		t.Error("string content decoded as list")
	}
}

func TestJSONParserBareArray(t *testing.T) {
	in := `[{"type":"title","title":"Standalone"}]`
	slides, err := (&JSONParser{}).Parse(strings.NewReader(in), "deck.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(slides) != 1 || slides[0].Title != "Standalone" {
		t.Errorf("slides: %+v", slides)
	}
}

func TestJSONParserRejectsGarbage(t *testing.T) {
	if _, err := (&JSONParser{}).Parse(strings.NewReader("not json"), "deck.json"); err == nil {
		t.Error("expected parse error")
	}
	bad := `{"slides":[{"type":"content","content":{"nested":true}}]}`
	if _, err := (&JSONParser{}).Parse(strings.NewReader(bad), "deck.json"); err == nil {
		t.Error("expected error for object-valued content")
	}
}

func TestCSVParser(t *testing.T) {
	in := "slide_type,title,content,notes\n" +
		"title,Kickoff,,\n" +
		"content,Agenda,first item|second item,presenter note\n" +
		",Untyped,plain prose text,\n"
	slides, err := (&CSVParser{}).Parse(strings.NewReader(in), "rows.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("got %d slides, want 3", len(slides))
	}
	if slides[0].Type != deck.TypeTitle || slides[0].Title != "Kickoff" {
		t.Errorf("slide 0: %+v", slides[0])
	}
	agenda := slides[1]
	if !agenda.Content.IsList() || len(agenda.Content.Items()) != 2 {
		t.Errorf("pipe cell not split: %+v", agenda.Content)
	}
	if agenda.Notes != "presenter note" {
		t.Errorf("notes: %q", agenda.Notes)
	}
	if slides[2].Type != deck.TypeContent {
		t.Errorf("empty type not defaulted: %q", slides[2].Type)
	}
	if slides[2].Content.IsList() {
		t.Error("plain cell split into bullets")
	}
}

func TestCSVParserTypeHeaderAlias(t *testing.T) {
	in := "type,title,content\n" +
		"section_header,Part Two,\n"
	slides, err := (&CSVParser{}).Parse(strings.NewReader(in), "rows.csv")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(slides) != 1 || slides[0].Type != deck.TypeSectionHeader {
		t.Errorf("slides: %+v", slides)
	}
}

func TestMarkdownParser(t *testing.T) {
	in := `# Quarterly Review

## Highlights

- Revenue up sharply
- Churn down again

# Part Two

## Details

Some details text.
`
	slides, err := (&MarkdownParser{}).Parse(strings.NewReader(in), "notes.md")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(slides) != 4 {
		t.Fatalf("got %d slides, want 4: %+v", len(slides), slides)
	}
	if slides[0].Type != deck.TypeTitle || slides[0].Title != "Quarterly Review" {
		t.Errorf("slide 0: %+v", slides[0])
	}
	hl := slides[1]
	if hl.Type != deck.TypeContent || hl.Title != "Highlights" {
		t.Errorf("slide 1: %+v", hl)
	}
	if !hl.Content.IsList() || len(hl.Content.Items()) != 2 {
		t.Errorf("bullets: %+v", hl.Content)
	}
	if slides[2].Type != deck.TypeSectionHeader || slides[2].Title != "Part Two" {
		t.Errorf("slide 2: %+v", slides[2])
	}
	details := slides[3]
	if details.Section != "Part Two" {
		t.Errorf("section not carried: %q", details.Section)
	}
	if details.Content.IsList() || details.Content.Text() != "Some details text." {
		t.Errorf("details content: %+v", details.Content)
	}
}

func TestHTMLParser(t *testing.T) {
	in := `<html><head><title>ignored</title><style>p{}</style></head><body>
<h1>Launch Plan</h1>
<h2>Timeline</h2>
<ul><li>June beta</li><li>August GA</li></ul>
<h2>Risks</h2>
<p>Vendor dependency remains open.</p>
<script>alert(1)</script>
</body></html>`
	slides, err := (&HTMLParser{}).Parse(strings.NewReader(in), "page.html")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("got %d slides, want 3: %+v", len(slides), slides)
	}
	if slides[0].Type != deck.TypeTitle || slides[0].Title != "Launch Plan" {
		t.Errorf("slide 0: %+v", slides[0])
	}
	if items := slides[1].Content.Items(); len(items) != 2 || items[0] != "June beta" {
		t.Errorf("timeline bullets: %q", items)
	}
	if got := slides[2].Content.Text(); got != "Vendor dependency remains open." {
		t.Errorf("risks text: %q", got)
	}
}

func TestTextParser(t *testing.T) {
	in := "Migration Notes\n\nThe first phase moved the database without downtime.\n\nThe second phase is pending review."
	slides, err := (&TextParser{}).Parse(strings.NewReader(in), "doc.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(slides) != 3 {
		t.Fatalf("got %d slides, want 3", len(slides))
	}
	if slides[0].Type != deck.TypeTitle || slides[0].Title != "Migration Notes" {
		t.Errorf("slide 0: %+v", slides[0])
	}
	if slides[1].Content.IsEmpty() || slides[2].Content.IsEmpty() {
		t.Error("paragraph slides missing content")
	}
}

func TestValidate(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	good, err := Validate([]deck.SlideRequest{
		{Type: "diagram", Title: "Coerced"},
		{Title: "Defaulted", Content: deck.FreeText("x")},
	}, log)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if good[0].Type != deck.TypeContent || good[1].Type != deck.TypeContent {
		t.Errorf("types not normalized: %+v", good)
	}

	_, err = Validate([]deck.SlideRequest{
		{Type: deck.TypeContent, Title: "ok", Content: deck.FreeText("x")},
		{Type: deck.TypeContent},
	}, log)
	if !errors.Is(err, ErrInvalidSlide) {
		t.Errorf("got %v, want ErrInvalidSlide", err)
	}
}
