package models

import (
	"time"

	"github.com/google/uuid"
)

// MeetingLocation is a campus meeting spot a seller prefers for handoffs.
type MeetingLocation string

const (
	MeetingLocationBSC     MeetingLocation = "BSC"
	MeetingLocationLibrary MeetingLocation = "Library"
	MeetingLocationBowers  MeetingLocation = "Bowers"
	MeetingLocationOther   MeetingLocation = "Other"
)

// Valid returns true if the meeting location is a known campus spot.
func (m MeetingLocation) Valid() bool {
	switch m {
	case MeetingLocationBSC, MeetingLocationLibrary, MeetingLocationBowers, MeetingLocationOther:
		return true
	default:
		return false
	}
}

// Profile is the public-facing seller metadata for a user. At most one
// profile exists per user; it is created on first save and never deleted.
type Profile struct {
	UserID                   uuid.UUID        `json:"user_id" db:"user_id"`
	Email                    string           `json:"email" db:"email"`
	FirstName                string           `json:"first_name" db:"first_name"`
	LastName                 *string          `json:"last_name,omitempty" db:"last_name"`
	ProfilePicture           *string          `json:"profile_picture,omitempty" db:"profile_picture"`
	Bio                      *string          `json:"bio,omitempty" db:"bio"`
	InstagramHandle          *string          `json:"instagram_handle,omitempty" db:"instagram_handle"`
	SnapchatHandle           *string          `json:"snapchat_handle,omitempty" db:"snapchat_handle"`
	PreferredMeetingLocation *MeetingLocation `json:"preferred_meeting_location,omitempty" db:"preferred_meeting_location"`
	CustomMeetingLocation    *string          `json:"custom_meeting_location,omitempty" db:"custom_meeting_location"`
	ShowLastName             bool             `json:"show_last_name" db:"show_last_name"`
	ShowInstagram            bool             `json:"show_instagram" db:"show_instagram"`
	ShowSnapchat             bool             `json:"show_snapchat" db:"show_snapchat"`
	CreatedAt                time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time        `json:"updated_at" db:"updated_at"`
}

// DisplayName returns the seller's public name with the last name applied
// only when the visibility flag allows it.
func (p *Profile) DisplayName() string {
	if p.ShowLastName && p.LastName != nil && *p.LastName != "" {
		return p.FirstName + " " + *p.LastName
	}
	return p.FirstName
}

// SellerCard is the public view of a profile. Each visibility flag gates its
// field independently of whether the field is populated.
type SellerCard struct {
	UserID                   uuid.UUID        `json:"user_id"`
	Email                    string           `json:"email"`
	Name                     string           `json:"name"`
	ProfilePicture           *string          `json:"profile_picture,omitempty"`
	Bio                      *string          `json:"bio,omitempty"`
	InstagramHandle          *string          `json:"instagram_handle,omitempty"`
	SnapchatHandle           *string          `json:"snapchat_handle,omitempty"`
	PreferredMeetingLocation *MeetingLocation `json:"preferred_meeting_location,omitempty"`
	CustomMeetingLocation    *string          `json:"custom_meeting_location,omitempty"`
	MemberSince              time.Time        `json:"member_since"`
}

// PublicCard applies the visibility flags and returns the seller card shown
// on item detail and profile views.
func (p *Profile) PublicCard() *SellerCard {
	card := &SellerCard{
		UserID:                   p.UserID,
		Email:                    p.Email,
		Name:                     p.DisplayName(),
		ProfilePicture:           p.ProfilePicture,
		Bio:                      p.Bio,
		PreferredMeetingLocation: p.PreferredMeetingLocation,
		CustomMeetingLocation:    p.CustomMeetingLocation,
		MemberSince:              p.CreatedAt,
	}
	if p.ShowInstagram {
		card.InstagramHandle = p.InstagramHandle
	}
	if p.ShowSnapchat {
		card.SnapchatHandle = p.SnapchatHandle
	}
	return card
}
