package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/etown-exchange/api/internal/models"
)

func newListing(title, desc string, category models.Category, sold bool) *models.Listing {
	return &models.Listing{
		ID:          uuid.New(),
		Title:       title,
		Description: desc,
		Category:    &category,
		Sold:        sold,
	}
}

func TestFilterMatches_ExcludesSold(t *testing.T) {
	sold := newListing("Desk Lamp", "LED lamp, barely used.", models.CategoryDormEssentials, true)
	active := newListing("Desk Lamp", "LED lamp, barely used.", models.CategoryDormEssentials, false)

	f := Filter{}
	assert.False(t, f.Matches(sold))
	assert.True(t, f.Matches(active))
}

func TestFilterMatches_Query(t *testing.T) {
	l := newListing("Used Textbook", "Lightly used Calculus book.", models.CategoryTextbooks, false)

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty query matches", "", true},
		{"title substring", "textbook", true},
		{"title case-insensitive", "TEXTBOOK", true},
		{"description substring", "calculus", true},
		{"whitespace trimmed", "  calculus  ", true},
		{"no match", "fridge", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Filter{Query: tt.query}
			assert.Equal(t, tt.want, f.Matches(l))
		})
	}
}

func TestFilterMatches_Category(t *testing.T) {
	l := newListing("Dorm Fridge", "Mini fridge in great condition.", models.CategoryDormEssentials, false)

	assert.True(t, Filter{Category: "All"}.Matches(l))
	assert.True(t, Filter{Category: ""}.Matches(l))
	assert.True(t, Filter{Category: "Dorm Essentials"}.Matches(l))
	assert.False(t, Filter{Category: "Textbooks"}.Matches(l))

	// Listing without a category only matches the All selection.
	noCat := &models.Listing{ID: uuid.New(), Title: "Mystery Box", Description: "???"}
	assert.True(t, Filter{Category: "All"}.Matches(noCat))
	assert.False(t, Filter{Category: "Other"}.Matches(noCat))
}

func TestFilterApply_Intersection(t *testing.T) {
	listings := []*models.Listing{
		newListing("Used Textbook", "Lightly used Calculus book.", models.CategoryTextbooks, false),
		newListing("Dorm Fridge", "Mini fridge in great condition.", models.CategoryDormEssentials, false),
		newListing("Desk Lamp", "LED lamp, barely used.", models.CategoryDormEssentials, false),
		newListing("Sold Lamp", "Another lamp.", models.CategoryDormEssentials, true),
	}

	got := Filter{Query: "lamp", Category: "Dorm Essentials"}.Apply(listings)
	assert.Len(t, got, 1)
	assert.Equal(t, "Desk Lamp", got[0].Title)

	// Order is preserved.
	all := Filter{Category: "Dorm Essentials"}.Apply(listings)
	assert.Len(t, all, 2)
	assert.Equal(t, "Dorm Fridge", all[0].Title)
	assert.Equal(t, "Desk Lamp", all[1].Title)
}
