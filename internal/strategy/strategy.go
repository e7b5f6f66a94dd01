// Package strategy holds the automated corrections, one per lint rule category.
//
// A strategy is a pure function of the flagged line and the record message. It
// never sees the rest of the file, so applying it is deterministic and cheap.
// Registry maps a category (or one of its aliases) to a strategy; anything it
// does not know resolves to Identity.
package strategy

import (
	"fmt"
	"sort"
	"strings"
)

// Func rewrites a single line. The result may contain embedded newlines when a
// strategy inserts or splits lines; the line index of the record does not move.
type Func func(line, message string) string

// Strategy is a named correction.
type Strategy struct {
	Category string
	Fix      Func
	// Automated is false for categories that need human judgement.
	Automated bool
}

// Apply runs the strategy on line.
func (s Strategy) Apply(line, message string) string {
	if s.Fix == nil {
		return line
	}
	return s.Fix(line, message)
}

// Identity leaves the line as it is.
var Identity = Strategy{Category: "identity", Fix: identity}

func identity(line, _ string) string { return line }

// Registry resolves categories to strategies.
type Registry struct {
	byCategory map[string]Strategy
	aliases    map[string]string
	disabled   map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byCategory: make(map[string]Strategy),
		aliases:    make(map[string]string),
		disabled:   make(map[string]bool),
	}
}

// Register adds s under its category. Registering a category twice is an error:
// exactly one strategy exists per category.
func (r *Registry) Register(s Strategy) error {
	if s.Category == "" {
		return fmt.Errorf("strategy: empty category")
	}
	if _, dup := r.byCategory[s.Category]; dup {
		return fmt.Errorf("strategy: category %q already registered", s.Category)
	}
	if s.Fix == nil {
		s.Fix = identity
	}
	r.byCategory[s.Category] = s
	return nil
}

// Alias makes name resolve to the strategy of category.
func (r *Registry) Alias(name, category string) error {
	if _, ok := r.byCategory[category]; !ok {
		return fmt.Errorf("strategy: alias %q points to unknown category %q", name, category)
	}
	if _, clash := r.byCategory[name]; clash {
		return fmt.Errorf("strategy: alias %q shadows a category", name)
	}
	r.aliases[name] = category
	return nil
}

// Disable makes category (or an alias of it) resolve to Identity.
func (r *Registry) Disable(name string) error {
	category, ok := r.canonical(name)
	if !ok {
		return fmt.Errorf("strategy: cannot disable unknown category %q", name)
	}
	r.disabled[category] = true
	return nil
}

// Resolve returns the strategy for category, or Identity.
func (r *Registry) Resolve(category string) Strategy {
	name, ok := r.canonical(category)
	if !ok || r.disabled[name] {
		return Identity
	}
	return r.byCategory[name]
}

// Known reports whether category resolves to a registered strategy.
func (r *Registry) Known(category string) bool {
	_, ok := r.canonical(category)
	return ok
}

// Categories returns the registered category names sorted.
func (r *Registry) Categories() []string {
	out := make([]string, 0, len(r.byCategory))
	for name := range r.byCategory {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Aliases returns alias -> category pairs.
func (r *Registry) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

func (r *Registry) canonical(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if _, ok := r.byCategory[name]; ok {
		return name, true
	}
	if target, ok := r.aliases[name]; ok {
		return target, true
	}
	return "", false
}
