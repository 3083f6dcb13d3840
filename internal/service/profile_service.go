package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/etown-exchange/api/internal/models"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/repository"
)

// ProfileService manages seller profiles.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	Save(ctx context.Context, userID uuid.UUID, req SaveProfileRequest) (*models.Profile, error)
	PublicCard(ctx context.Context, userID uuid.UUID) (*models.SellerCard, error)
}

// SaveProfileRequest carries every editable profile field. A save replaces
// the whole profile, so omitted optional fields clear their stored values.
type SaveProfileRequest struct {
	FirstName                string `validate:"required,min=1,max=100"`
	LastName                 string `validate:"max=100"`
	ProfilePicture           string
	Bio                      string `validate:"max=1000"`
	InstagramHandle          string `validate:"max=100"`
	SnapchatHandle           string `validate:"max=100"`
	PreferredMeetingLocation string
	CustomMeetingLocation    string `validate:"max=200"`
	ShowLastName             bool
	ShowInstagram            bool
	ShowSnapchat             bool
}

type profileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// Get returns the user's own profile, or nil if none has been saved yet.
func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.profileRepo.Get(ctx, userID)
}

// Save creates the profile on first write and fully replaces it afterwards.
// Social handles are normalized by stripping a leading "@" and whitespace.
func (s *profileService) Save(ctx context.Context, userID uuid.UUID, req SaveProfileRequest) (*models.Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apierrors.ErrUnauthorized
	}

	profile := &models.Profile{
		UserID:        userID,
		Email:         user.Email,
		FirstName:     strings.TrimSpace(req.FirstName),
		ShowLastName:  req.ShowLastName,
		ShowInstagram: req.ShowInstagram,
		ShowSnapchat:  req.ShowSnapchat,
	}
	if profile.FirstName == "" {
		return nil, apierrors.NewValidationError("first_name", "First name is required")
	}

	if v := strings.TrimSpace(req.LastName); v != "" {
		profile.LastName = &v
	}
	if v := strings.TrimSpace(req.ProfilePicture); v != "" {
		profile.ProfilePicture = &v
	}
	if v := strings.TrimSpace(req.Bio); v != "" {
		profile.Bio = &v
	}
	if v := normalizeHandle(req.InstagramHandle); v != "" {
		profile.InstagramHandle = &v
	}
	if v := normalizeHandle(req.SnapchatHandle); v != "" {
		profile.SnapchatHandle = &v
	}

	if v := strings.TrimSpace(req.PreferredMeetingLocation); v != "" {
		loc := models.MeetingLocation(v)
		if !loc.Valid() {
			return nil, apierrors.NewValidationError("preferred_meeting_location", "Unknown meeting location")
		}
		profile.PreferredMeetingLocation = &loc
		if loc == models.MeetingLocationOther {
			if custom := strings.TrimSpace(req.CustomMeetingLocation); custom != "" {
				profile.CustomMeetingLocation = &custom
			}
		}
	}

	existing, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
	} else {
		profile.CreatedAt = existing.CreatedAt
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return nil, err
		}
	}
	return profile, nil
}

// PublicCard returns the visibility-filtered view of another user's profile.
func (s *profileService) PublicCard(ctx context.Context, userID uuid.UUID) (*models.SellerCard, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apierrors.NewNotFoundError("Profile")
	}
	return profile.PublicCard(), nil
}

func normalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}
