// Package content turns input documents into slide requests. Each supported
// format has its own parser; all of them produce the same request list that
// the allocator consumes.
package content

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/deckplan/internal/deck"
)

// Parser converts raw document bytes into slide requests.
type Parser interface {
	Parse(r io.Reader, filename string) ([]deck.SlideRequest, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".json":     true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".txt":      true,
	".html":     true,
	".htm":      true,
	".docx":     true,
	".pdf":      true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
