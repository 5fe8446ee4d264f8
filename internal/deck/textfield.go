package deck

import (
	"encoding/json"
	"fmt"
)

// TextField is the content of a slide: either a single free-form string
// (a summarization candidate) or an ordered list of pre-split bullets.
// The two cases are distinct: a one-element list is not the same as a
// string, so consumers switch on IsList explicitly.
type TextField struct {
	text  string
	items []string
	list  bool
}

// FreeText wraps a single free-form string.
func FreeText(s string) TextField {
	return TextField{text: s}
}

// BulletList wraps an ordered list of bullet items. The slice is copied.
func BulletList(items []string) TextField {
	out := make([]string, len(items))
	copy(out, items)
	return TextField{items: out, list: true}
}

// IsList reports whether the field holds a bullet list.
func (f TextField) IsList() bool { return f.list }

// Text returns the free-form string; empty for list fields.
func (f TextField) Text() string {
	if f.list {
		return ""
	}
	return f.text
}

// Items returns the bullet items; nil for free-text fields.
func (f TextField) Items() []string {
	if !f.list {
		return nil
	}
	return f.items
}

// IsEmpty reports whether the field carries no content at all.
func (f TextField) IsEmpty() bool {
	if f.list {
		return len(f.items) == 0
	}
	return f.text == ""
}

// MarshalJSON encodes free text as a JSON string and a bullet list as a
// JSON array, matching the input document format.
func (f TextField) MarshalJSON() ([]byte, error) {
	if f.list {
		if f.items == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(f.items)
	}
	return json.Marshal(f.text)
}

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
func (f *TextField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FreeText(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		*f = BulletList(items)
		return nil
	}
	var null any
	if err := json.Unmarshal(data, &null); err == nil && null == nil {
		*f = TextField{}
		return nil
	}
	return fmt.Errorf("content must be a string or an array of strings")
}
