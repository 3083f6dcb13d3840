package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is a user-specific bookmark on a listing. At most one exists per
// (user, listing) pair; the service checks existence before inserting.
type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	ListingID uuid.UUID `json:"listing_id" db:"listing_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Listing is populated on favorites list responses.
	Listing *Listing `json:"listing,omitempty" db:"-"`
}
