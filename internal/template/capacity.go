package template

// Character capacity heuristic: ~12 characters per inch of width,
// ~8 lines per inch of height. A closed-form proxy for available text
// area, without real font metrics.
const (
	charsPerInch = 12
	linesPerInch = 8
)

// EstimateCapacity maps a placeholder's size to an approximate character
// budget. Degenerate geometry (zero or negative extents) yields 0.
func EstimateCapacity(widthIn, heightIn float64) int {
	charsPerLine := int(widthIn * charsPerInch)
	lines := int(heightIn * linesPerInch)
	if charsPerLine <= 0 || lines <= 0 {
		return 0
	}
	return charsPerLine * lines
}
