package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Filter returns the items whose name contains term, ignoring case.
// Order is preserved. A blank term matches everything.
func Filter(items []Item, term string) []Item {
	term = strings.TrimSpace(term)
	if term == "" {
		out := make([]Item, len(items))
		copy(out, items)
		return out
	}

	// cases.Caser is stateful, so each call gets its own.
	folder := cases.Fold()
	needle := folder.String(norm.NFC.String(term))

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(folder.String(norm.NFC.String(it.Name)), needle) {
			out = append(out, it)
		}
	}
	return out
}
