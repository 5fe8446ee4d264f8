package template

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Cache persists analyzed template structures as JSON files keyed by template
// name. Entries carry the content hash of the source file; a hash mismatch is
// a miss, so a modified template is always re-analyzed.
type Cache struct {
	dir string
}

func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

type cacheEntry struct {
	Hash      string     `json:"hash"`
	Structure *Structure `json:"structure"`
}

// Get returns the cached structure for stem if its hash matches.
func (c *Cache) Get(stem, hash string) (*Structure, bool) {
	data, err := os.ReadFile(c.entryPath(stem))
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if entry.Hash != hash || entry.Structure == nil {
		return nil, false
	}
	return entry.Structure, true
}

// Put stores an analyzed structure under stem.
func (c *Cache) Put(stem string, st *Structure) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data, err := json.MarshalIndent(cacheEntry{Hash: st.Hash, Structure: st}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := os.WriteFile(c.entryPath(stem), data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

func (c *Cache) entryPath(stem string) string {
	return filepath.Join(c.dir, stem+"_structure.json")
}

// HashHex computes SHA-256 of content and returns the hex string.
func HashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
