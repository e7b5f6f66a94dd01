// Package stats aggregates lint logs: per-category counts and a CSV export
// for tracking the remaining work in a spreadsheet.
package stats

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"lintfix/internal/lintlog"
)

// Counts maps a category to the number of records carrying it.
type Counts map[string]int

// CategoryCount is one row of a sorted Counts.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Count tallies the records of one group by category.
func Count(group *lintlog.Group) Counts {
	out := make(Counts)
	_ = group.Each(func(_ string, records []lintlog.Record) error {
		for _, r := range records {
			out[r.Category]++
		}
		return nil
	})
	return out
}

// Merge adds other into c.
func (c Counts) Merge(other Counts) {
	for k, v := range other {
		c[k] += v
	}
}

// Total returns the sum of all counts.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Sorted returns the rows by descending count, ties by category name.
func (c Counts) Sorted() []CategoryCount {
	rows := make([]CategoryCount, 0, len(c))
	for k, v := range c {
		rows = append(rows, CategoryCount{Category: k, Count: v})
	}
	slices.SortFunc(rows, func(a, b CategoryCount) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		if a.Category < b.Category {
			return -1
		}
		if a.Category > b.Category {
			return 1
		}
		return 0
	})
	return rows
}

// CountLogs parses every log concurrently and merges their counts.
// The first failing log cancels the others and its error is returned.
func CountLogs(ctx context.Context, parser *lintlog.Parser, paths []string, jobs int) (Counts, error) {
	if len(paths) == 0 {
		return Counts{}, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]Counts, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			group, err := parser.ParseFile(path)
			if err != nil {
				return err
			}
			results[i] = Count(group)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := make(Counts)
	for _, c := range results {
		total.Merge(c)
	}
	return total, nil
}
