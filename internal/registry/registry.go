// Package registry aggregates addresses discovered by the disassembler.
// Insertion is idempotent: overlapping decode requests rediscovering the
// same address only bump its stats.
package registry

import (
	"log"
	"sort"
	"strings"
	"sync"
	"time"
)

// Entry is one discovered address with its aggregate stats.
type Entry struct {
	Address   string    `json:"address"`
	Symbol    string    `json:"symbol,omitempty"`
	SeenCount uint64    `json:"seenCount"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

// Publisher receives first-discovery events. The event hub implements it.
type Publisher interface {
	PublishAddress(Entry)
}

type Registry struct {
	mu      sync.Mutex
	entries map[string]*Entry
	pub     Publisher
	logger  *log.Logger
	now     func() time.Time
}

func New(pub Publisher, logger *log.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*Entry),
		pub:     pub,
		logger:  logger,
		now:     time.Now,
	}
}

// Record notes a discovered address and reports whether it was new.
// Addresses are keyed case-insensitively; the checksummed form from the
// first discovery is kept for display.
func (r *Registry) Record(address string) bool {
	key := strings.ToLower(strings.TrimSpace(address))
	if key == "" || key == "0x" {
		return false
	}
	now := r.now()

	r.mu.Lock()
	entry, ok := r.entries[key]
	if ok {
		entry.SeenCount++
		entry.LastSeen = now
		r.mu.Unlock()
		return false
	}
	entry = &Entry{
		Address:   address,
		SeenCount: 1,
		FirstSeen: now,
		LastSeen:  now,
	}
	r.entries[key] = entry
	snapshot := *entry
	r.mu.Unlock()

	if r.pub != nil {
		r.pub.PublishAddress(snapshot)
	}
	r.logf("discovered %s", address)
	return true
}

// SetSymbol attaches an enrichment result to an already-discovered address.
// Unknown addresses are ignored; enrichment never creates entries.
func (r *Registry) SetSymbol(address, symbol string) {
	key := strings.ToLower(strings.TrimSpace(address))
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[key]; ok {
		entry.Symbol = symbol
	}
}

// Snapshot returns all entries sorted by address.
func (r *Registry) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Address) < strings.ToLower(out[j].Address)
	})
	return out
}

// Len returns the number of distinct addresses seen so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *Registry) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}
