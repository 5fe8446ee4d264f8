// Package template analyzes PowerPoint templates into a structure the
// allocator can plan against: slides, their placeholders, and how much text
// each placeholder can hold.
package template

// Semantic is the role a placeholder plays on its slide.
type Semantic string

const (
	SemanticTitle Semantic = "title"
	SemanticBody  Semantic = "body"
	SemanticOther Semantic = "other"
)

// Geometry is a placeholder's position and size in inches.
type Geometry struct {
	WidthIn  float64 `json:"width_in"`
	HeightIn float64 `json:"height_in"`
	LeftIn   float64 `json:"left_in"`
	TopIn    float64 `json:"top_in"`
}

// Placeholder is a text slot within a template slide.
type Placeholder struct {
	Index         int      `json:"index"`
	Semantic      Semantic `json:"semantic"`
	CapacityChars int      `json:"capacity_chars"`
	Geometry      Geometry `json:"geometry"`
}

// Slide is one reusable slide definition within the template.
type Slide struct {
	Index        int           `json:"index"`
	LayoutName   string        `json:"layout_name"`
	SlideType    string        `json:"slide_type"`
	Placeholders []Placeholder `json:"placeholders"`
	HasTitle     bool          `json:"has_title"`
	HasBody      bool          `json:"has_body"`
}

// Structure is the analyzed template: the ordered slides plus metadata.
// It is built once per template and read-only afterwards.
type Structure struct {
	Path        string   `json:"path"`
	Hash        string   `json:"hash"`
	Slides      []Slide  `json:"slides"`
	Layouts     []string `json:"layouts"`
	MasterName  string   `json:"master_name,omitempty"`
	TotalSlides int      `json:"total_slides"`
}
