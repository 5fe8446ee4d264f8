package template

import "errors"

// ErrNoTemplateSlides is returned when resolution is attempted against a
// structure with zero slides. This is fatal to a planning run.
var ErrNoTemplateSlides = errors.New("template structure has no slides")

// typeFallbacks encodes intentional visual-similarity degradation: a missing
// section-header layout degrades to a title layout, not to a content layout.
var typeFallbacks = map[string][]string{
	"title":          {"title", "section_header"},
	"content":        {"content", "two_column"},
	"section_header": {"section_header", "title"},
}

// Resolve picks the best template slide for a requested slide type.
//
// Resolution order: exact slide-type match, then the fallback chain for the
// requested type, then the first "content" slide, then the first slide with a
// body placeholder, then the first slide outright. Only an empty structure
// fails.
func Resolve(s *Structure, slideType string) (*Slide, error) {
	if len(s.Slides) == 0 {
		return nil, ErrNoTemplateSlides
	}

	for i := range s.Slides {
		if s.Slides[i].SlideType == slideType {
			return &s.Slides[i], nil
		}
	}

	for _, alt := range typeFallbacks[slideType] {
		for i := range s.Slides {
			if s.Slides[i].SlideType == alt {
				return &s.Slides[i], nil
			}
		}
	}

	for i := range s.Slides {
		if s.Slides[i].SlideType == "content" {
			return &s.Slides[i], nil
		}
	}

	for i := range s.Slides {
		if s.Slides[i].HasBody {
			return &s.Slides[i], nil
		}
	}

	return &s.Slides[0], nil
}
