// Package deck defines the core data model shared by the planning pipeline:
// slide requests coming in, and the placeholder-level allocation plan going out.
package deck

// SlideType identifies the requested kind of slide.
type SlideType string

const (
	TypeTitle         SlideType = "title"
	TypeContent       SlideType = "content"
	TypeSectionHeader SlideType = "section_header"
	TypeTwoColumn     SlideType = "two_column"
	TypeClosing       SlideType = "closing"
)

// Valid reports whether t is one of the recognized slide types.
func (t SlideType) Valid() bool {
	switch t {
	case TypeTitle, TypeContent, TypeSectionHeader, TypeTwoColumn, TypeClosing:
		return true
	}
	return false
}

// SlideRequest is one slide's worth of input content.
type SlideRequest struct {
	Type    SlideType `json:"type"`
	Title   string    `json:"title"`
	Content TextField `json:"content"`
	Section string    `json:"section,omitempty"`
	Notes   string    `json:"notes,omitempty"`
}

// Role is the semantic role of fitted content within a slide.
type Role string

const (
	RoleTitle Role = "title"
	RoleBody  Role = "body"
)

// Format describes how fitted content should be rendered.
type Format string

const (
	FormatPlain   Format = "plain"
	FormatBullets Format = "bullets"
)

// FittedContent is the text assigned to a single placeholder, sized to fit.
// Title content uses Text; body content uses Items.
type FittedContent struct {
	Text   string   `json:"text,omitempty"`
	Items  []string `json:"items,omitempty"`
	Role   Role     `json:"role"`
	Format Format   `json:"format"`
}

// AllocationEntry is one output slide: a resolved template plus the content
// mapped into its placeholders. SlideNumber is 1-based in output order.
type AllocationEntry struct {
	SlideNumber   int                   `json:"slide_number"`
	TemplateIndex int                   `json:"template_index"`
	LayoutName    string                `json:"layout_name"`
	SlideType     SlideType             `json:"slide_type"`
	Content       map[int]FittedContent `json:"content"`
	Notes         string                `json:"notes,omitempty"`
}
