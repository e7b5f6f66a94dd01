package diag

import "sync"

// Bag collects entries. Safe for concurrent use.
type Bag struct {
	mu    sync.Mutex
	items []Entry
}

func NewBag() *Bag {
	return &Bag{items: make([]Entry, 0, 16)}
}

// Add appends an entry.
func (b *Bag) Add(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, e)
}

// Len returns the number of entries.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// HasErrors возвращает true, если есть хотя бы одна запись с Severity >= Error
func (b *Bag) HasErrors() bool {
	return b.Count(SevError) > 0
}

// Count returns how many entries have at least severity min.
func (b *Bag) Count(min Severity) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= min {
			n++
		}
	}
	return n
}

// Items returns a copy of the entries in report order.
func (b *Bag) Items() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.items))
	copy(out, b.items)
	return out
}

// Filter returns the entries that satisfy keep.
func (b *Bag) Filter(keep func(Entry) bool) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, 0, len(b.items))
	for _, e := range b.items {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
