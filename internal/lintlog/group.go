package lintlog

// Group maps each source file to its records in log order.
// Files keep the order of their first header line.
type Group struct {
	order  []string
	byFile map[string][]Record
}

// NewGroup returns an empty Group.
func NewGroup() *Group {
	return &Group{byFile: make(map[string][]Record)}
}

// Open makes sure path has an entry. A header without records still yields
// an empty entry so reporting covers every file the log mentions.
func (g *Group) Open(path string) {
	if _, ok := g.byFile[path]; ok {
		return
	}
	g.order = append(g.order, path)
	g.byFile[path] = make([]Record, 0)
}

// Append adds rec to the entry of path, opening it if needed.
func (g *Group) Append(path string, rec Record) {
	g.Open(path)
	rec.Source = path
	g.byFile[path] = append(g.byFile[path], rec)
}

// Files returns the files in header order.
func (g *Group) Files() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Records returns a copy of the records of path.
func (g *Group) Records(path string) []Record {
	recs := g.byFile[path]
	out := make([]Record, len(recs))
	copy(out, recs)
	return out
}

// Has reports whether path has an entry.
func (g *Group) Has(path string) bool {
	_, ok := g.byFile[path]
	return ok
}

// Len returns the number of files.
func (g *Group) Len() int { return len(g.order) }

// Total returns the number of records across all files.
func (g *Group) Total() int {
	n := 0
	for _, recs := range g.byFile {
		n += len(recs)
	}
	return n
}

// Each calls fn for every file in order and stops at the first error.
func (g *Group) Each(fn func(path string, records []Record) error) error {
	for _, path := range g.order {
		if err := fn(path, g.Records(path)); err != nil {
			return err
		}
	}
	return nil
}
