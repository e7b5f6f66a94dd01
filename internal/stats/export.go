package stats

import (
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"lintfix/internal/lintlog"
	"lintfix/internal/strategy"
)

// ErrNoRecords is returned by Export when the log holds no error lines.
var ErrNoRecords = errors.New("log contains no error records")

// Columns is the CSV header row.
var Columns = []string{"File", "Feature", "Category", "Line", "Message", "Owner", "Recorded", "Status", "Notes"}

// Resolver reports whether a category has an automated fix.
type Resolver interface {
	Resolve(category string) strategy.Strategy
}

// ExportOptions fills the bookkeeping columns.
type ExportOptions struct {
	Owner    string
	Recorded time.Time // zero leaves the column empty
	// Resolver, when set, marks rows "auto" or "manual" in the Status column.
	Resolver Resolver
}

// Export writes one CSV row per record of group.
func Export(w io.Writer, group *lintlog.Group, opts ExportOptions) error {
	if group.Total() == 0 {
		return ErrNoRecords
	}
	recorded := ""
	if !opts.Recorded.IsZero() {
		recorded = opts.Recorded.Format(time.DateOnly)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	err := group.Each(func(path string, records []lintlog.Record) error {
		feature := FeatureName(path)
		for _, r := range records {
			row := []string{
				path,
				feature,
				r.Category,
				strconv.Itoa(r.Line),
				r.Message,
				opts.Owner,
				recorded,
				status(opts.Resolver, r.Category),
				"",
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func status(r Resolver, category string) string {
	if r == nil {
		return ""
	}
	if r.Resolve(category).Automated {
		return "auto"
	}
	return "manual"
}

// FeatureName turns a source path into a readable feature name:
// "src/userProfileCard.js" -> "User Profile Card".
func FeatureName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = norm.NFC.String(base)

	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range base {
		switch {
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()

	titler := cases.Title(language.Und)
	for i, w := range words {
		words[i] = titler.String(w)
	}
	return strings.Join(words, " ")
}
