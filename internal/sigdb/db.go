// Package sigdb holds the local 4-byte selector database used to resolve
// call data into candidate function signatures. Selectors are not unique;
// a lookup may return several colliding signatures and callers are expected
// to trial them in listed order.
package sigdb

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

//go:embed signatures.json
var embeddedJSON []byte

// Database is safe for concurrent use: decode requests read candidates
// while signature registration appends through Add.
type Database struct {
	mu      sync.RWMutex
	entries map[string][]string
}

// New loads the signature set embedded in the package.
func New() (*Database, error) {
	return NewWithFile("")
}

// NewWithFile loads the embedded signature set and, when path is non-empty,
// merges a custom JSON file of the same selector -> signatures shape on top.
// Custom signatures rank after embedded ones for the same selector.
func NewWithFile(path string) (*Database, error) {
	db := &Database{entries: make(map[string][]string)}
	if err := json.Unmarshal(embeddedJSON, &db.entries); err != nil {
		return nil, fmt.Errorf("embedded signature set: %w", err)
	}
	for selector, sigs := range db.entries {
		normalized := normalizeSelector(selector)
		if normalized != selector {
			db.entries[normalized] = sigs
			delete(db.entries, selector)
		}
	}
	if path == "" {
		return db, nil
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	custom := make(map[string][]string)
	if err := json.Unmarshal(blob, &custom); err != nil {
		return nil, fmt.Errorf("custom signature file %s: %w", path, err)
	}
	for selector, sigs := range custom {
		for _, sig := range sigs {
			db.Add(selector, sig)
		}
	}
	return db, nil
}

// NewFromEntries builds a database from an in-memory mapping. Used by tests
// and by callers that assemble entries from other stores.
func NewFromEntries(entries map[string][]string) *Database {
	db := &Database{entries: make(map[string][]string, len(entries))}
	for selector, sigs := range entries {
		for _, sig := range sigs {
			db.Add(selector, sig)
		}
	}
	return db
}

// Add appends a signature to a selector's candidate list, preserving
// insertion order and skipping exact duplicates.
func (db *Database) Add(selector, signature string) {
	selector = normalizeSelector(selector)
	signature = strings.TrimSpace(signature)
	if len(selector) != 10 || signature == "" {
		return
	}
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, existing := range db.entries[selector] {
		if existing == signature {
			return
		}
	}
	db.entries[selector] = append(db.entries[selector], signature)
}

// Candidates returns the ordered candidate signatures for a selector, or an
// empty list when the selector is unknown. The returned slice is a copy.
func (db *Database) Candidates(selector string) []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	sigs := db.entries[normalizeSelector(selector)]
	out := make([]string, len(sigs))
	copy(out, sigs)
	return out
}

// Selectors returns every known selector in sorted order.
func (db *Database) Selectors() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	out := make([]string, 0, len(db.entries))
	for selector := range db.entries {
		out = append(out, selector)
	}
	sort.Strings(out)
	return out
}

// Size returns the number of distinct selectors.
func (db *Database) Size() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.entries)
}

func normalizeSelector(selector string) string {
	s := strings.ToLower(strings.TrimSpace(selector))
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return s
}
