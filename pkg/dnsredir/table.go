package dnsredir

import "sync"

// Table holds the current redirection set. A single mutex serializes
// rebuilds and lookups, so a reader sees either the fully-old or the
// fully-new set, never a mix.
type Table struct {
	mu      sync.Mutex
	entries map[string]Addr
}

// NewTable creates an empty redirection table.
func NewTable() *Table {
	return &Table{
		entries: make(map[string]Addr),
	}
}

// Replace discards the current entries and installs a copy of the given set.
func (t *Table) Replace(entries map[string]Addr) {
	fresh := make(map[string]Addr, len(entries))
	for host, addr := range entries {
		fresh[host] = addr
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = fresh
}

// Lookup finds the address for a hostname. Matching is exact and
// case sensitive.
func (t *Table) Lookup(hostname string) (Addr, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	addr, ok := t.entries[hostname]
	return addr, ok
}

// Snapshot returns a copy of the current entries.
func (t *Table) Snapshot() map[string]Addr {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make(map[string]Addr, len(t.entries))
	for host, addr := range t.entries {
		entries[host] = addr
	}
	return entries
}

// Len returns the number of entries.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}
