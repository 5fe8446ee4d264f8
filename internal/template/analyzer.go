package template

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Analyzer reads a .pptx template and extracts its structure. Results are
// served from the cache when the template content is unchanged.
type Analyzer struct {
	path  string
	cache *Cache // nil disables caching
	log   *slog.Logger
}

func NewAnalyzer(path string, cache *Cache, log *slog.Logger) *Analyzer {
	return &Analyzer{path: path, cache: cache, log: log}
}

// Analyze parses the template (or loads a fresh cached analysis) and returns
// its structure.
func (a *Analyzer) Analyze() (*Structure, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	return a.AnalyzeBytes(data)
}

// AnalyzeBytes is Analyze for in-memory template data (API uploads).
func (a *Analyzer) AnalyzeBytes(data []byte) (*Structure, error) {
	hash := HashHex(data)
	stem := stemOf(a.path)

	if a.cache != nil {
		if st, ok := a.cache.Get(stem, hash); ok {
			a.log.Info("template loaded from cache", "template", a.path, "hash", hash[:12])
			return st, nil
		}
	}

	a.log.Info("analyzing template", "template", a.path)
	st, err := parsePackage(data)
	if err != nil {
		return nil, fmt.Errorf("analyze template %s: %w", a.path, err)
	}
	st.Path = a.path
	st.Hash = hash

	if a.cache != nil {
		if err := a.cache.Put(stem, st); err != nil {
			a.log.Warn("template cache write failed", "error", err)
		} else {
			a.log.Info("template analysis cached", "template", a.path, "slides", len(st.Slides))
		}
	}
	return st, nil
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
