package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Condition describes the wear state of an item.
type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionGood    Condition = "Good"
	ConditionFair    Condition = "Fair"
	ConditionPoor    Condition = "Poor"
)

// Valid returns true if the condition is a known value.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	default:
		return false
	}
}

// Category groups listings on the browse page.
type Category string

const (
	CategoryTextbooks      Category = "Textbooks"
	CategoryFurniture      Category = "Furniture"
	CategoryElectronics    Category = "Electronics"
	CategoryClothing       Category = "Clothing"
	CategorySports         Category = "Sports"
	CategoryDormEssentials Category = "Dorm Essentials"
	CategoryStationaries   Category = "Stationaries"
	CategoryOther          Category = "Other"
)

// CategoryAll is the browse filter sentinel matching every category.
const CategoryAll = "All"

// Valid returns true if the category is a known value.
func (c Category) Valid() bool {
	switch c {
	case CategoryTextbooks, CategoryFurniture, CategoryElectronics, CategoryClothing,
		CategorySports, CategoryDormEssentials, CategoryStationaries, CategoryOther:
		return true
	default:
		return false
	}
}

// Listing represents an item posted for sale.
// Price is an opaque currency-formatted string ("$10"), not a number.
type Listing struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Price       string     `json:"price" db:"price"`
	ImageURL    *string    `json:"image,omitempty" db:"image_url"`
	ImageKey    *string    `json:"-" db:"image_key"` // object store key, internal
	Condition   *Condition `json:"condition,omitempty" db:"condition"`
	Category    *Category  `json:"category,omitempty" db:"category"`
	Seller      *string    `json:"seller,omitempty" db:"seller"`
	Sold        bool       `json:"sold" db:"sold"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// PriceValue parses the currency string by stripping a leading "$".
// A price that fails to parse counts as zero rather than poisoning sums.
func (l *Listing) PriceValue() float64 {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l.Price), "$"))
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// TotalValue sums the prices of all listings that are not sold.
func TotalValue(listings []*Listing) float64 {
	var total float64
	for _, l := range listings {
		if l.Sold {
			continue
		}
		total += l.PriceValue()
	}
	return total
}
