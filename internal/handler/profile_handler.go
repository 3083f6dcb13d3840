package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/etown-exchange/api/internal/middleware"
	apierrors "github.com/etown-exchange/api/internal/pkg/errors"
	"github.com/etown-exchange/api/internal/pkg/response"
	"github.com/etown-exchange/api/internal/service"
)

// ProfileHandler handles profile HTTP requests.
type ProfileHandler struct {
	profileService service.ProfileService
	validate       *validator.Validate
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validate:       validator.New(),
	}
}

// Get handles GET /v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	profile, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if profile == nil {
		response.NotFound(w, "Profile")
		return
	}
	response.OK(w, profile)
}

// SaveProfileHTTPRequest is the HTTP request body for saving a profile.
type SaveProfileHTTPRequest struct {
	FirstName                string `json:"first_name" validate:"required"`
	LastName                 string `json:"last_name"`
	ProfilePicture           string `json:"profile_picture"`
	Bio                      string `json:"bio"`
	InstagramHandle          string `json:"instagram_handle"`
	SnapchatHandle           string `json:"snapchat_handle"`
	PreferredMeetingLocation string `json:"preferred_meeting_location"`
	CustomMeetingLocation    string `json:"custom_meeting_location"`
	ShowLastName             bool   `json:"show_last_name"`
	ShowInstagram            bool   `json:"show_instagram"`
	ShowSnapchat             bool   `json:"show_snapchat"`
}

// Save handles PUT /v1/profile
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var req SaveProfileHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierrors.ErrBadRequest.WithMessage("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		response.Error(w, apierrors.NewValidationError("first_name", "First name is required"))
		return
	}

	profile, err := h.profileService.Save(r.Context(), userID, service.SaveProfileRequest{
		FirstName:                req.FirstName,
		LastName:                 req.LastName,
		ProfilePicture:           req.ProfilePicture,
		Bio:                      req.Bio,
		InstagramHandle:          req.InstagramHandle,
		SnapchatHandle:           req.SnapchatHandle,
		PreferredMeetingLocation: req.PreferredMeetingLocation,
		CustomMeetingLocation:    req.CustomMeetingLocation,
		ShowLastName:             req.ShowLastName,
		ShowInstagram:            req.ShowInstagram,
		ShowSnapchat:             req.ShowSnapchat,
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, profile)
}

// PublicCard handles GET /v1/users/{id}/profile
func (h *ProfileHandler) PublicCard(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, apierrors.NewValidationError("id", "Invalid user id"))
		return
	}

	card, err := h.profileService.PublicCard(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, card)
}
