// Package catalog implements the browse-page logic: sold exclusion, text and
// category filtering, and fixed-size pagination with a windowed page display.
package catalog

import (
	"strings"

	"github.com/etown-exchange/api/internal/models"
)

// Filter holds the browse-page selection. An empty Query matches everything;
// Category "All" (or empty) matches every category.
type Filter struct {
	Query    string
	Category string
}

// Matches reports whether a listing belongs in the filtered set: it is not
// sold, its title or description contains the query as a case-insensitive
// substring, and its category equals the selection.
func (f Filter) Matches(l *models.Listing) bool {
	if l.Sold {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		title := strings.ToLower(l.Title)
		desc := strings.ToLower(l.Description)
		if !strings.Contains(title, q) && !strings.Contains(desc, q) {
			return false
		}
	}
	if f.Category != "" && f.Category != models.CategoryAll {
		if l.Category == nil || string(*l.Category) != f.Category {
			return false
		}
	}
	return true
}

// Apply returns the listings matching the filter, preserving input order.
func (f Filter) Apply(listings []*models.Listing) []*models.Listing {
	matched := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		if f.Matches(l) {
			matched = append(matched, l)
		}
	}
	return matched
}
