package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingPriceValue(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  float64
	}{
		{"dollar prefix", "$10", 10},
		{"decimal", "$45.50", 45.50},
		{"no prefix", "10", 10},
		{"comma formatted", "$1,250.50", 1250.50},
		{"surrounding whitespace", " $10 ", 10},
		{"space after prefix", "$ 10", 10},
		{"trailing words", "10 dollars", 0},
		{"foreign currency", "€10", 0},
		{"empty", "", 0},
		{"just the prefix", "$", 0},
		{"negative", "$-5", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Listing{Price: tt.price}
			assert.Equal(t, tt.want, l.PriceValue())
		})
	}
}

func TestTotalValue(t *testing.T) {
	t.Run("sums unsold listings only", func(t *testing.T) {
		listings := []*Listing{
			{Price: "$10"},
			{Price: "$45"},
			{Price: "$100", Sold: true},
		}
		assert.Equal(t, 55.0, TotalValue(listings))
	})

	t.Run("unparseable prices contribute zero", func(t *testing.T) {
		listings := []*Listing{
			{Price: "$20"},
			{Price: "twenty bucks"},
			{Price: ""},
		}
		assert.Equal(t, 20.0, TotalValue(listings))
	})

	t.Run("empty slice", func(t *testing.T) {
		assert.Equal(t, 0.0, TotalValue(nil))
	})
}
